package stego

import (
	"bytes"
	"errors"
	"testing"
)

// carrier returns a buffer with non-trivial sample bytes so LSB
// preservation failures are visible.
func carrier(n int) []byte {
	frames := make([]byte, n)
	for i := range frames {
		frames[i] = byte(i*7 + 3)
	}
	return frames
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	codec := NewCodec(DefaultStealthStep)

	payloads := [][]byte{
		[]byte("A"),
		[]byte("meet at dawn"),
		{0x00, 0xFF, 0x80, 0x01},
		bytes.Repeat([]byte{0xAA}, 100),
	}

	for _, payload := range payloads {
		frames := carrier(10000)
		step, err := codec.Embed(frames, payload)
		if err != nil {
			t.Fatalf("Embed(%d bytes): %v", len(payload), err)
		}
		if want := (len(frames) - HeaderSize) / (len(payload) * 8); step != want {
			t.Errorf("step = %d, want %d", step, want)
		}

		got, err := codec.Extract(frames)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("round trip mismatch: got %q, want %q", got, payload)
		}
	}
}

func TestEmbedDensePacking(t *testing.T) {
	// payload bits exactly fill the body: step 1, still recoverable
	codec := NewCodec(DefaultStealthStep)
	payload := bytes.Repeat([]byte{0x5C}, 12)
	frames := carrier(HeaderSize + len(payload)*8)

	step, err := codec.Embed(frames, payload)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if step != 1 {
		t.Errorf("step = %d, want 1", step)
	}

	got, err := codec.Extract(frames)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip mismatch: got %x, want %x", got, payload)
	}
}

func TestEmbedPreservesNonLSBBits(t *testing.T) {
	codec := NewCodec(DefaultStealthStep)
	frames := carrier(5000)
	original := make([]byte, len(frames))
	copy(original, frames)

	if _, err := codec.Embed(frames, []byte("the quick brown fox")); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	for i := range frames {
		if frames[i]&0xFE != original[i]&0xFE {
			t.Fatalf("byte %d: non-LSB bits changed from %08b to %08b", i, original[i], frames[i])
		}
	}
}

func TestEmbedOversizedPayload(t *testing.T) {
	codec := NewCodec(DefaultStealthStep)
	frames := carrier(1000)
	original := make([]byte, len(frames))
	copy(original, frames)

	// 122 bytes need 976 bits; only 968 carrier bytes remain after the header
	payload := bytes.Repeat([]byte{0x42}, 122)
	if _, err := codec.Embed(frames, payload); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("Embed = %v, want ErrPayloadTooLarge", err)
	}
	if !bytes.Equal(frames, original) {
		t.Error("rejected Embed modified the carrier")
	}

	// 121 bytes need 968 bits and fit exactly
	if _, err := codec.Embed(frames, payload[:121]); err != nil {
		t.Fatalf("Embed at exact capacity: %v", err)
	}
}

func TestEmbedEmptyPayload(t *testing.T) {
	codec := NewCodec(DefaultStealthStep)
	frames := carrier(1000)
	if _, err := codec.Embed(frames, nil); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("Embed(nil) = %v, want ErrEmptyPayload", err)
	}
}

func TestExtractEmptyMessage(t *testing.T) {
	codec := NewCodec(DefaultStealthStep)

	// all-even bytes decode to a zero header
	frames := make([]byte, 1000)
	payload, err := codec.Extract(frames)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if payload != nil {
		t.Errorf("payload = %v, want nil for the no-message case", payload)
	}
}

func TestExtractBufferTooShort(t *testing.T) {
	codec := NewCodec(DefaultStealthStep)
	if _, err := codec.Extract(make([]byte, HeaderSize-1)); !errors.Is(err, ErrBufferTooShort) {
		t.Fatalf("Extract = %v, want ErrBufferTooShort", err)
	}
}

func TestExtractCorruptHeader(t *testing.T) {
	codec := NewCodec(DefaultStealthStep)

	// header claims more bits than the 68-byte body holds
	frames := make([]byte, HeaderSize+68)
	putHeader(frames, 69)
	if _, err := codec.Extract(frames); !errors.Is(err, ErrCorruptHeader) {
		t.Fatalf("Extract = %v, want ErrCorruptHeader", err)
	}

	// a hostile all-ones header must not wrap into a small value
	putHeader(frames, 0xFFFFFFFF)
	if _, err := codec.Extract(frames); !errors.Is(err, ErrCorruptHeader) {
		t.Fatalf("Extract with max header = %v, want ErrCorruptHeader", err)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 8, 4096, 0xFFFFFFFF} {
		frames := carrier(HeaderSize)
		putHeader(frames, v)
		if got := header(frames); got != v {
			t.Errorf("header round trip: got %d, want %d", got, v)
		}
		// header writes only touch LSBs
		for i := range frames {
			if frames[i]&0xFE != byte(i*7+3)&0xFE {
				t.Fatalf("header write changed non-LSB bits at %d", i)
			}
		}
	}
}

func TestCapacity(t *testing.T) {
	codec := NewCodec(180)

	for _, n := range []int{0, 1, HeaderSize, HeaderSize - 1} {
		if _, err := codec.Capacity(n); !errors.Is(err, ErrInsufficientCapacity) {
			t.Errorf("Capacity(%d) = %v, want ErrInsufficientCapacity", n, err)
		}
	}

	c, err := codec.Capacity(10032)
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if c.AbsoluteBytes != 1250 {
		t.Errorf("AbsoluteBytes = %d, want 1250", c.AbsoluteBytes)
	}
	if c.StealthBytes != 6 {
		t.Errorf("StealthBytes = %d, want 6", c.StealthBytes)
	}
}

func TestCapacityMonotonic(t *testing.T) {
	codec := NewCodec(180)

	prev := Capacity{}
	for n := HeaderSize + 1; n < 20000; n += 97 {
		c, err := codec.Capacity(n)
		if err != nil {
			t.Fatalf("Capacity(%d): %v", n, err)
		}
		if c.StealthBytes > c.AbsoluteBytes {
			t.Fatalf("Capacity(%d): stealth %d > absolute %d", n, c.StealthBytes, c.AbsoluteBytes)
		}
		if c.AbsoluteBytes < prev.AbsoluteBytes || c.StealthBytes < prev.StealthBytes {
			t.Fatalf("Capacity(%d) decreased: %+v after %+v", n, c, prev)
		}
		prev = c
	}
}

func TestInterleavePositions(t *testing.T) {
	// the documented reference scenario: 10032 zero bytes, payload 'A'
	codec := NewCodec(DefaultStealthStep)
	frames := make([]byte, 10032)

	step, err := codec.Embed(frames, []byte{0x41})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if step != 1250 {
		t.Fatalf("step = %d, want 1250", step)
	}

	if got := header(frames); got != 8 {
		t.Fatalf("header = %d, want 8", got)
	}

	// 'A' is 01000001: set LSBs at offsets 32+1250 and 32+1250*7 only
	for i := 0; i < 8; i++ {
		idx := HeaderSize + step*i
		want := byte(0)
		if i == 1 || i == 7 {
			want = 1
		}
		if frames[idx]&1 != want {
			t.Errorf("bit %d at index %d = %d, want %d", i, idx, frames[idx]&1, want)
		}
	}

	payload, err := codec.Extract(frames)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(payload) != "A" {
		t.Errorf("payload = %q, want %q", payload, "A")
	}
}

func TestNewCodecThresholdFallback(t *testing.T) {
	if got := NewCodec(0).StealthStep(); got != DefaultStealthStep {
		t.Errorf("StealthStep = %d, want %d", got, DefaultStealthStep)
	}
	if got := NewCodec(50).StealthStep(); got != 50 {
		t.Errorf("StealthStep = %d, want 50", got)
	}
}

func TestDecodeTextLenient(t *testing.T) {
	if got := DecodeText([]byte("hello")); got != "hello" {
		t.Errorf("DecodeText = %q, want %q", got, "hello")
	}

	// malformed UTF-8 is dropped, never an error
	if got := DecodeText([]byte{'h', 0xFF, 'i', 0xC0}); got != "hi" {
		t.Errorf("DecodeText = %q, want %q", got, "hi")
	}
	if got := DecodeText([]byte{0xFF, 0xFE}); got != "" {
		t.Errorf("DecodeText = %q, want empty", got)
	}
}
