package s1isp

import "math"

// DecodeBAQ decodes UDF data for format C (decimation + BAQ 3/4/5-bit
// block-adaptive quantization, section 4.3). Samples are grouped into
// 128-sample blocks; the Qe channel carries an 8-bit THIDX prefix
// before each block.
func DecodeBAQ(data []byte, nq int, mode EBaqMode) (ComplexSamples, error) {
	nbits, ok := mode.BitsPerSample()
	if !ok || mode == BaqModeBypass {
		return ComplexSamples{}, &InvalidEnumError{Enum: "EBaqMode (not BAQ)", Value: uint64(mode)}
	}

	const blocksize = 128
	nb := int(math.Ceil(float64(nq) / blocksize))

	nwIe := int(math.Ceil(float64(nbits*nq) / 16.0))
	nwIo := nwIe
	nwQe := int(math.Ceil(float64(nbits*nq+8*nb) / 16.0))
	nwQo := nwIe

	nbytesIe := 2 * nwIe
	nbytesIo := 2 * nwIo
	nbytesQe := 2 * nwQe
	nbytesQo := 2 * nwQo

	total := nbytesIe + nbytesIo + nbytesQe + nbytesQo
	if len(data) < total {
		return ComplexSamples{}, ErrTruncated
	}

	offset := 0
	ieRaw, err := unpackBaqSamples(data[offset:offset+nbytesIe], nbits, nq)
	if err != nil {
		return ComplexSamples{}, err
	}

	offset += nbytesIe
	ioRaw, err := unpackBaqSamples(data[offset:offset+nbytesIo], nbits, nq)
	if err != nil {
		return ComplexSamples{}, err
	}

	offset += nbytesIo
	qeChunk := data[offset : offset+nbytesQe]
	thidx := extractThidx(qeChunk, nbits, blocksize, nb)
	qeRaw, err := unpackBaqBlockSamples(qeChunk, nbits, blocksize, nb, nq)
	if err != nil {
		return ComplexSamples{}, err
	}

	offset += nbytesQe
	qoRaw, err := unpackBaqSamples(data[offset:offset+nbytesQo], nbits, nq)
	if err != nil {
		return ComplexSamples{}, err
	}

	ie := make([]float32, nq)
	io := make([]float32, nq)
	qe := make([]float32, nq)
	qo := make([]float32, nq)

	for b := 0; b < nb; b++ {
		lut, err := GetBaqLut(mode, thidx[b])
		if err != nil {
			return ComplexSamples{}, err
		}
		lo := b * blocksize
		hi := lo + blocksize
		if hi > nq {
			hi = nq
		}
		for k := lo; k < hi; k++ {
			ie[k] = float32(lut[ieRaw[k]])
			io[k] = float32(lut[ioRaw[k]])
			qe[k] = float32(lut[qeRaw[k]])
			qo[k] = float32(lut[qoRaw[k]])
		}
	}

	return alignQuads(ie, io, qe, qo, nq), nil
}

// unpackBaqSamples reads nq consecutive nbits-wide unsigned codes,
// with no block header to skip (used for Ie/Io/Qo).
func unpackBaqSamples(data []byte, nbits, nq int) ([]int, error) {
	r := NewBitReader(data)
	out := make([]int, nq)
	for i := 0; i < nq; i++ {
		v, err := r.ReadUint(nbits)
		if err != nil {
			return nil, err
		}
		out[i] = int(v)
	}
	return out, nil
}

// unpackBaqBlockSamples reads nq unsigned codes from data, where data
// is organized as nb blocks each prefixed by an 8-bit THIDX header
// (the Qe channel layout).
func unpackBaqBlockSamples(data []byte, nbits, blocksize, nb, nq int) ([]int, error) {
	r := NewBitReader(data)
	out := make([]int, 0, nq)
	for b := 0; b < nb && len(out) < nq; b++ {
		if _, err := r.ReadUint(8); err != nil {
			return nil, err
		}
		remaining := blocksize
		if nq-len(out) < remaining {
			remaining = nq - len(out)
		}
		for i := 0; i < remaining; i++ {
			v, err := r.ReadUint(nbits)
			if err != nil {
				return nil, err
			}
			out = append(out, int(v))
		}
	}
	return out, nil
}

// extractThidx reads the nb 8-bit threshold indices, one per block,
// at byte stride (nbits*blocksize+8)/8 inside the Qe byte region.
func extractThidx(data []byte, nbits, blocksize, nb int) []int {
	blockstride := nbits*blocksize + 8
	step := blockstride / 8
	out := make([]int, nb)
	for b := 0; b < nb; b++ {
		pos := b * step
		if pos < len(data) {
			out[b] = int(data[pos])
		}
	}
	return out
}
