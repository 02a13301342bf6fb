package s1isp

import "math"

// ComplexSamples holds the decoded UDF as parallel real/imaginary
// slices of length 2*N_q, interleaved as Ie/Io (real) and Qe/Qo
// (imag) per S1-IF-ASD-PL-0007 section 4.
type ComplexSamples struct {
	Real []float32
	Imag []float32
}

// NumQuads returns N_q, the number of complex-sample quads these
// samples were decoded from.
func (c ComplexSamples) NumQuads() int {
	return len(c.Real) / 2
}

// alignQuads interleaves four decoded channels into a ComplexSamples
// buffer of nq quads (2*nq complex samples), mirroring the reference
// decoder's align_quads.
func alignQuads(ie, io, qe, qo []float32, nq int) ComplexSamples {
	out := ComplexSamples{
		Real: make([]float32, 2*nq),
		Imag: make([]float32, 2*nq),
	}
	for k := 0; k < nq; k++ {
		out.Real[2*k] = ie[k]
		out.Real[2*k+1] = io[k]
		out.Imag[2*k] = qe[k]
		out.Imag[2*k+1] = qo[k]
	}
	return out
}

// bypassWordCount returns N_w = ceil(10*nq/16), the 16-bit word count
// of one bypass-decoded channel.
func bypassWordCount(nq int) int {
	return int(math.Ceil(10.0 * float64(nq) / 16.0))
}

// DecodeBypass decodes UDF data for format A/B (section 4.2): four
// channels of 10-bit sign-and-magnitude samples, no compression.
func DecodeBypass(data []byte, nq int) (ComplexSamples, error) {
	nw := bypassWordCount(nq)
	nbytes := nw * 2
	if len(data) < 4*nbytes {
		return ComplexSamples{}, ErrTruncated
	}

	channels := make([][]float32, 4)
	for i := 0; i < 4; i++ {
		chunk := data[i*nbytes : (i+1)*nbytes]
		r := NewBitReader(chunk)
		ch := make([]float32, nq)
		for k := 0; k < nq; k++ {
			v, err := r.ReadSignMagnitude(10)
			if err != nil {
				return ComplexSamples{}, err
			}
			ch[k] = float32(v)
		}
		channels[i] = ch
	}

	return alignQuads(channels[0], channels[1], channels[2], channels[3], nq), nil
}

// DecodeUDF dispatches to the appropriate channel decoder based on the
// secondary header's baq_mode/test_mode combination.
func DecodeUDF[C CalTypeValidator](data []byte, nq int, h SecondaryHeader[C]) (ComplexSamples, error) {
	format, err := h.DataFormatType()
	if err != nil {
		return ComplexSamples{}, err
	}

	switch format {
	case DataFormatTypeA, DataFormatTypeB:
		return DecodeBypass(data, nq)
	case DataFormatTypeC:
		return DecodeBAQ(data, nq, h.Radar_Configuration_Support.Baq_Mode)
	case DataFormatTypeD:
		return DecodeFDBAQ(data, nq)
	default:
		return ComplexSamples{}, ErrInvalidFormat
	}
}
