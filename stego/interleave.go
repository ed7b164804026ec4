// Package stego implements interleaved LSB steganography over raw PCM
// frame bytes.
//
// The first 32 carrier bytes hold a 32-bit payload length header, one
// bit per byte LSB, most-significant bit first. The payload bits follow
// from index 32, spaced at a fixed step so the changes spread across
// the whole recording instead of clustering at the start.
package stego

const (
	// HeaderSize is the number of carrier bytes whose LSBs encode the
	// payload bit count.
	HeaderSize = 32

	// DefaultStealthStep is the minimum interleave step treated as
	// inaudible for typical material.
	DefaultStealthStep = 180
)

// Capacity reports how many payload bytes a carrier can hold.
type Capacity struct {
	// AbsoluteBytes uses every carrier byte after the header, one
	// payload bit per byte.
	AbsoluteBytes int

	// StealthBytes is the largest payload that keeps the interleave
	// step at or above the configured stealth threshold.
	StealthBytes int
}

// Codec embeds and extracts payloads. It holds no buffer state; the
// caller owns the carrier and the codec only reads or mutates it for
// the duration of a call.
type Codec struct {
	stealthStep int
}

// NewCodec returns a codec using stealthStep as the minimum step for
// stealth capacity. Values below 1 fall back to DefaultStealthStep.
func NewCodec(stealthStep int) *Codec {
	if stealthStep < 1 {
		stealthStep = DefaultStealthStep
	}
	return &Codec{stealthStep: stealthStep}
}

// StealthStep returns the configured stealth step threshold.
func (c *Codec) StealthStep() int { return c.stealthStep }

// Capacity computes the embeddable payload sizes for a carrier of
// totalBytes raw frame bytes.
func (c *Codec) Capacity(totalBytes int) (Capacity, error) {
	available := totalBytes - HeaderSize
	if available <= 0 {
		return Capacity{}, ErrInsufficientCapacity
	}
	return Capacity{
		AbsoluteBytes: available / 8,
		StealthBytes:  available / (8 * c.stealthStep),
	}, nil
}

// Embed hides payload in frames in place and returns the interleave
// step it used. Only the LSB of each touched byte changes. The size
// checks run before any write, so a rejected call leaves frames
// untouched.
func (c *Codec) Embed(frames, payload []byte) (int, error) {
	payloadBits := len(payload) * 8
	if payloadBits == 0 {
		return 0, ErrEmptyPayload
	}
	if HeaderSize+payloadBits > len(frames) {
		return 0, ErrPayloadTooLarge
	}

	putHeader(frames, uint32(payloadBits))

	step := (len(frames) - HeaderSize) / payloadBits
	idx := HeaderSize
	for _, b := range payload {
		for bit := 7; bit >= 0; bit-- {
			if b>>bit&1 == 1 {
				frames[idx] |= 1
			} else {
				frames[idx] &^= 1
			}
			idx += step
		}
	}
	return step, nil
}

// Extract recovers the payload hidden in frames. A nil payload with a
// nil error means the header declared an empty message.
func (c *Codec) Extract(frames []byte) ([]byte, error) {
	if len(frames) < HeaderSize {
		return nil, ErrBufferTooShort
	}

	// The header is a full uint32; compare in int64 space so a hostile
	// value cannot wrap before the body check.
	bits64 := int64(header(frames))
	body := int64(len(frames) - HeaderSize)
	if bits64 == 0 {
		return nil, nil
	}
	if bits64 > body {
		return nil, ErrCorruptHeader
	}

	payloadBits := int(bits64)
	step := (len(frames) - HeaderSize) / payloadBits
	if step == 0 {
		return nil, ErrInvalidStride
	}

	payload := make([]byte, 0, payloadBits/8)
	idx := HeaderSize
	var cur byte
	n := 0
	for i := 0; i < payloadBits; i++ {
		cur = cur<<1 | frames[idx]&1
		if n++; n == 8 {
			payload = append(payload, cur)
			cur, n = 0, 0
		}
		idx += step
	}
	return payload, nil
}

// putHeader writes v MSB-first into the LSBs of the first HeaderSize
// bytes.
func putHeader(frames []byte, v uint32) {
	for i := 0; i < HeaderSize; i++ {
		if v>>(31-i)&1 == 1 {
			frames[i] |= 1
		} else {
			frames[i] &^= 1
		}
	}
}

// header is the inverse of putHeader.
func header(frames []byte) uint32 {
	var v uint32
	for i := 0; i < HeaderSize; i++ {
		v = v<<1 | uint32(frames[i]&1)
	}
	return v
}
