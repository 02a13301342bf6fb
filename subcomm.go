package s1isp

import "github.com/samber/lo"

// SubCommFragment is one packet's contribution to the sub-commutated
// ancillary data stream: a (word_index, word_data) pair plus the
// packet count it was observed in, used to detect cycle breaks caused
// by dropped packets.
type SubCommFragment struct {
	PacketCount int
	Word        SubCommWord
}

// subcomRecordInfo pins one reassembled record's first word index and
// word span within a 64-word cycle.
type subcomRecordInfo struct {
	firstWordIndex int
	nWords         int
}

func (i subcomRecordInfo) lastWordIndex() int {
	return i.firstWordIndex + i.nWords - 1
}

var (
	pvtRecordInfo = subcomRecordInfo{firstWordIndex: PVT_FIRST_WORD_INDEX, nWords: PVT_RECORD_SIZE / 2}
	attRecordInfo = subcomRecordInfo{firstWordIndex: ATTITUDE_FIRST_WORD_INDEX, nWords: ATTITUDE_RECORD_SIZE / 2}
	hkRecordInfo  = subcomRecordInfo{firstWordIndex: HK_FIRST_WORD_INDEX, nWords: HK_TEMPERATURE_SIZE / 2}
)

// SubCommCycle collects the words of one 64-word sub-commutated data
// cycle in packet-arrival order.
type SubCommCycle struct {
	words []SubCommWord
}

// IsComplete reports whether this cycle holds exactly 64 words; the
// word indices themselves are not checked here.
func (c *SubCommCycle) IsComplete() bool {
	return len(c.words) == MAX_WORD_INDEX
}

// Decode reassembles the PVT, Attitude, and HKTemperature records from
// a complete cycle's words. Returns ErrIncompleteCycle if the cycle is
// not exactly 64 words, or if any record's expected word run is not
// found at its declared position.
func (c *SubCommCycle) Decode() (PVT, Attitude, HKTemperature, error) {
	var pvt PVT
	var att Attitude
	var hk HKTemperature

	if !c.IsComplete() {
		return pvt, att, hk, ErrIncompleteCycle
	}

	indexes := make([]int, len(c.words))
	for i, w := range c.words {
		indexes[i] = int(w.Word_Index)
	}

	pvtBytes, err := extractRecordBytes(c.words, indexes, pvtRecordInfo)
	if err != nil {
		return pvt, att, hk, err
	}
	pvt, err = DecodePVT(pvtBytes)
	if err != nil {
		return pvt, att, hk, err
	}

	attBytes, err := extractRecordBytes(c.words, indexes, attRecordInfo)
	if err != nil {
		return pvt, att, hk, err
	}
	att, err = DecodeAttitude(attBytes)
	if err != nil {
		return pvt, att, hk, err
	}

	hkBytes, err := extractRecordBytes(c.words, indexes, hkRecordInfo)
	if err != nil {
		return pvt, att, hk, err
	}
	hk, err = DecodeHKTemperature(hkBytes)
	if err != nil {
		return pvt, att, hk, err
	}

	return pvt, att, hk, nil
}

func extractRecordBytes(words []SubCommWord, indexes []int, info subcomRecordInfo) ([]byte, error) {
	firstIdx := lo.IndexOf(indexes, info.firstWordIndex)
	if firstIdx < 0 {
		return nil, ErrIncompleteCycle
	}
	lastIdx := firstIdx + info.nWords - 1
	if lastIdx >= len(indexes) || indexes[lastIdx] != info.lastWordIndex() {
		return nil, ErrIncompleteCycle
	}

	out := make([]byte, 0, info.nWords*2)
	for _, w := range words[firstIdx : lastIdx+1] {
		out = append(out, w.Word_Data[0], w.Word_Data[1])
	}
	return out, nil
}

// SubCommReassembler is a streaming state machine that consumes one
// SubCommFragment per packet and accumulates completed 64-word cycles,
// following the same gap-detection rules as the reference decoder:
// a cycle restarts whenever a word index goes backwards, or whenever
// the packet count jumps by more than one between consecutive
// fragments.
type SubCommReassembler struct {
	cycles            []*SubCommCycle
	current           *SubCommCycle
	lastPacketCount   int
	havePacketCount   bool
}

// NewSubCommReassembler returns an empty reassembler ready to accept
// fragments via Feed.
func NewSubCommReassembler() *SubCommReassembler {
	return &SubCommReassembler{}
}

func (d *SubCommReassembler) finalizeCycle() {
	if d.current != nil {
		d.cycles = append(d.cycles, d.current)
		d.current = nil
	}
}

func (d *SubCommReassembler) newCycle() {
	d.finalizeCycle()
	d.current = &SubCommCycle{}
}

// Feed consumes one fragment. A word index of 0 means "no data this
// packet" and is ignored.
func (d *SubCommReassembler) Feed(frag SubCommFragment) error {
	if frag.Word.Word_Index == 0 {
		return nil
	}
	if int(frag.Word.Word_Index) > MAX_WORD_INDEX {
		return &InvalidIndexError{Table: "sub-commutated word index", Index: int(frag.Word.Word_Index)}
	}

	if d.current == nil {
		d.newCycle()
		d.current.words = append(d.current.words, frag.Word)
	} else {
		prev := d.current.words[len(d.current.words)-1]
		step := int(frag.Word.Word_Index) - int(prev.Word_Index)
		if step < 0 {
			d.newCycle()
		} else if d.havePacketCount && frag.PacketCount-d.lastPacketCount > 1 {
			d.newCycle()
		}
		d.current.words = append(d.current.words, frag.Word)
	}

	d.lastPacketCount = frag.PacketCount
	d.havePacketCount = true

	if int(frag.Word.Word_Index) == MAX_WORD_INDEX {
		d.finalizeCycle()
	}
	return nil
}

// Finalize flushes any in-progress cycle (complete or not) and returns
// every cycle observed, in arrival order.
func (d *SubCommReassembler) Finalize() []*SubCommCycle {
	d.finalizeCycle()
	return d.cycles
}

// DecodedSubCommCycle is one fully reassembled sub-commutated data
// cycle.
type DecodedSubCommCycle struct {
	PVT      PVT
	Attitude Attitude
	HK       HKTemperature
}

// DecodeCycles decodes every complete cycle produced by Finalize,
// silently dropping incomplete ones (mirroring the reference
// decoder's incomplete-cycle accounting).
func DecodeCycles(cycles []*SubCommCycle) ([]DecodedSubCommCycle, int) {
	complete := lo.Filter(cycles, func(c *SubCommCycle, _ int) bool {
		return c.IsComplete()
	})
	incomplete := len(cycles) - len(complete)

	out := make([]DecodedSubCommCycle, 0, len(complete))
	for _, c := range complete {
		pvt, att, hk, err := c.Decode()
		if err != nil {
			incomplete++
			continue
		}
		out = append(out, DecodedSubCommCycle{PVT: pvt, Attitude: att, HK: hk})
	}
	return out, incomplete
}
