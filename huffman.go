package s1isp

// Huffman decoding of one FDBAQ (format D) sample magnitude code.
//
// Each BRC (Block Reconstruction Code, 0-4) has its own prefix-code
// table with BRC_SIZE[brc] magnitude codes. A sample is coded as a
// sign bit followed by a variable-length prefix code for the
// magnitude bucket. DecodeHuffmanSample returns an index into the
// 2*BRC_SIZE[brc]-entry reconstruction LUT built by GetFdbaqLut: index
// < n is a positive-branch magnitude, index >= n is the mirrored
// negative-branch magnitude, exactly the layout GetFdbaqLut produces.
//
// The exact bit sequences below are pinned against the reference
// decoder's own Huffman test vectors.

type huffmanNode struct {
	children [2]*huffmanNode
	value    int
	isLeaf   bool
}

type huffmanTrie struct {
	root *huffmanNode
	n    int
}

func newHuffmanNode() *huffmanNode {
	return &huffmanNode{}
}

func (t *huffmanTrie) insert(bits []int, value int) {
	node := t.root
	for _, b := range bits {
		if node.children[b] == nil {
			node.children[b] = newHuffmanNode()
		}
		node = node.children[b]
	}
	node.isLeaf = true
	node.value = value
}

// huffmanPositiveCodes[brc] are the magnitude codes for the positive branch
// (sign bit 0), in index order 0..n-1. huffmanNegativeCodes[brc] mirror them
// for the negative branch (sign bit 1); their index order also maps
// to 0..n-1, offset by n when stored in the trie.
var huffmanPositiveCodes = map[EBrcCode][][]int{
	BRC0: {
		{0, 0},
		{0, 1, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 1},
	},
	BRC1: {
		{0, 0},
		{0, 1, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 1},
	},
	BRC2: {
		{0, 0},
		{0, 1, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1},
	},
	BRC3: {
		{0, 0, 0},
		{0, 0, 1},
		{0, 1, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1},
	},
	BRC4: {
		{0, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 1, 1},
		{0, 1, 0, 0},
		{0, 1, 0, 1},
		{0, 1, 1, 0, 0},
		{0, 1, 1, 0, 1},
		{0, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 0, 1},
		{0, 1, 1, 1, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 0, 1},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	},
}

var huffmanNegativeCodes = map[EBrcCode][][]int{
	BRC0: {
		{1, 0},
		{1, 1, 0},
		{1, 1, 1, 0},
		{1, 1, 1, 1},
	},
	BRC1: {
		{1, 0},
		{1, 1, 0},
		{1, 1, 1, 0},
		{1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1},
	},
	BRC2: {
		{1, 0},
		{1, 1, 0},
		{1, 1, 1, 0},
		{1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1},
	},
	BRC3: {
		{1, 0, 0},
		{1, 0, 1},
		{1, 1, 0},
		{1, 1, 1, 0},
		{1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
	},
	BRC4: {
		{1, 0, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 1},
		{1, 1, 0, 0},
		{1, 1, 0, 1},
		{1, 1, 1, 0, 0},
		{1, 1, 1, 0, 1},
		{1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 0, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 0, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	},
}

var huffmanTries map[EBrcCode]*huffmanTrie

func init() {
	huffmanTries = make(map[EBrcCode]*huffmanTrie, 5)
	for _, brc := range []EBrcCode{BRC0, BRC1, BRC2, BRC3, BRC4} {
		n := BRC_SIZE[brc]
		trie := &huffmanTrie{root: newHuffmanNode(), n: n}
		for i, bits := range huffmanPositiveCodes[brc] {
			trie.insert(bits, i)
		}
		for i, bits := range huffmanNegativeCodes[brc] {
			trie.insert(bits, n+i)
		}
		huffmanTries[brc] = trie
	}
}

// DecodeHuffmanSample reads one Huffman-coded FDBAQ magnitude code for
// the given BRC from r, returning an index into the 2n-entry
// reconstruction LUT produced by GetFdbaqLut.
func DecodeHuffmanSample(r *BitReader, brc EBrcCode) (int, error) {
	if err := brc.Validate(); err != nil {
		return 0, err
	}
	trie := huffmanTries[brc]
	node := trie.root
	for {
		bit, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		idx := 0
		if bit {
			idx = 1
		}
		next := node.children[idx]
		if next == nil {
			return 0, ErrInvalidHuffman
		}
		node = next
		if node.isLeaf {
			return node.value, nil
		}
	}
}
