package s1isp

import "math"

// DecodeFDBAQ decodes UDF data for format D (decimation + Flexible
// Dynamic BAQ, section 4.4). Each channel is a concatenation of Nb
// variable-length Huffman-coded blocks; Ie carries a 3-bit BRC header
// per block and Qe carries an additional 8-bit THIDX header. Io and
// Qo reuse Ie's per-block BRC sequence. There is exactly one THIDX per
// block (carried in Qe), shared by all four channels of that block:
// Huffman magnitude indices are decoded first (bit consumption depends
// only on BRC), then every channel's indices for block b are
// reconstructed through the same (BRC[b], THIDX[b]) LUT.
func DecodeFDBAQ(data []byte, nq int) (ComplexSamples, error) {
	const blocksize = 128
	nb := int(math.Ceil(float64(nq) / blocksize))

	r := NewBitReader(data)

	brcs := make([]EBrcCode, nb)
	ieIdx := make([]int, 0, nq)
	for b := 0; b < nb; b++ {
		v, err := r.ReadUint(3)
		if err != nil {
			return ComplexSamples{}, err
		}
		brc := EBrcCode(v)
		if err := brc.Validate(); err != nil {
			return ComplexSamples{}, err
		}
		brcs[b] = brc

		n := blockSampleCount(b, nb, nq, blocksize)
		idxs, err := decodeFdbaqBlockIndices(r, brc, n)
		if err != nil {
			return ComplexSamples{}, err
		}
		ieIdx = append(ieIdx, idxs...)
	}
	alignToWordBoundary(r)

	ioIdx, err := decodeFdbaqChannelIndices(r, brcs, nb, nq, blocksize)
	if err != nil {
		return ComplexSamples{}, err
	}
	alignToWordBoundary(r)

	thidx := make([]int, nb)
	qeIdx := make([]int, 0, nq)
	for b := 0; b < nb; b++ {
		v, err := r.ReadUint(8)
		if err != nil {
			return ComplexSamples{}, err
		}
		thidx[b] = int(v)

		n := blockSampleCount(b, nb, nq, blocksize)
		idxs, err := decodeFdbaqBlockIndices(r, brcs[b], n)
		if err != nil {
			return ComplexSamples{}, err
		}
		qeIdx = append(qeIdx, idxs...)
	}
	alignToWordBoundary(r)

	qoIdx, err := decodeFdbaqChannelIndices(r, brcs, nb, nq, blocksize)
	if err != nil {
		return ComplexSamples{}, err
	}

	ie := make([]float64, nq)
	io := make([]float64, nq)
	qe := make([]float64, nq)
	qo := make([]float64, nq)
	for b := 0; b < nb; b++ {
		lo := b * blocksize
		hi := lo + blockSampleCount(b, nb, nq, blocksize)

		lut, err := GetFdbaqLut(brcs[b], thidx[b])
		if err != nil {
			return ComplexSamples{}, err
		}
		if err := applyFdbaqLut(lut, ieIdx[lo:hi], ie[lo:hi]); err != nil {
			return ComplexSamples{}, err
		}
		if err := applyFdbaqLut(lut, ioIdx[lo:hi], io[lo:hi]); err != nil {
			return ComplexSamples{}, err
		}
		if err := applyFdbaqLut(lut, qeIdx[lo:hi], qe[lo:hi]); err != nil {
			return ComplexSamples{}, err
		}
		if err := applyFdbaqLut(lut, qoIdx[lo:hi], qo[lo:hi]); err != nil {
			return ComplexSamples{}, err
		}
	}

	ieF := toFloat32(ie)
	ioF := toFloat32(io)
	qeF := toFloat32(qe)
	qoF := toFloat32(qo)

	return alignQuads(ieF, ioF, qeF, qoF, nq), nil
}

// blockSampleCount returns the number of samples in block b out of nb
// blocks covering nq total samples of blocksize each (the last block
// may be short).
func blockSampleCount(b, nb, nq, blocksize int) int {
	lo := b * blocksize
	hi := lo + blocksize
	if hi > nq {
		hi = nq
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}

// decodeFdbaqBlockIndices reads n Huffman-coded magnitude indices for
// one block. Indices are resolved against a reconstruction LUT later,
// once the block's THIDX (carried only on Qe) is known.
func decodeFdbaqBlockIndices(r *BitReader, brc EBrcCode, n int) ([]int, error) {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		idx, err := DecodeHuffmanSample(r, brc)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// decodeFdbaqChannelIndices decodes Io/Qo: Nb blocks with no per-block
// header, each using the BRC recorded for the same block index on the
// Ie channel.
func decodeFdbaqChannelIndices(r *BitReader, brcs []EBrcCode, nb, nq, blocksize int) ([]int, error) {
	out := make([]int, 0, nq)
	for b := 0; b < nb; b++ {
		n := blockSampleCount(b, nb, nq, blocksize)
		idxs, err := decodeFdbaqBlockIndices(r, brcs[b], n)
		if err != nil {
			return nil, err
		}
		out = append(out, idxs...)
	}
	return out, nil
}

// applyFdbaqLut resolves each magnitude index in idxs through lut,
// writing the reconstructed values into out (same length as idxs).
func applyFdbaqLut(lut []float64, idxs []int, out []float64) error {
	for i, idx := range idxs {
		if idx < 0 || idx >= len(lut) {
			return &InvalidIndexError{Table: "FDBAQ reconstruction LUT", Index: idx}
		}
		out[i] = lut[idx]
	}
	return nil
}

// alignToWordBoundary advances r to the next 16-bit word boundary, as
// required between channels in format D (section 4.4.3).
func alignToWordBoundary(r *BitReader) {
	consumed := r.BitsConsumed()
	rem := consumed % 16
	if rem != 0 {
		r.SeekBits(consumed + (16 - rem))
	}
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
