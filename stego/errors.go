package stego

import "errors"

var (
	// ErrInsufficientCapacity means the carrier cannot even hold the
	// 32-byte length header.
	ErrInsufficientCapacity = errors.New("carrier too short to hold the length header")

	// ErrEmptyPayload means Embed was called with nothing to hide.
	ErrEmptyPayload = errors.New("payload is empty")

	// ErrPayloadTooLarge means the payload bits plus the header do not
	// fit in the carrier.
	ErrPayloadTooLarge = errors.New("payload too large for this carrier")

	// ErrBufferTooShort means the carrier is shorter than the header.
	ErrBufferTooShort = errors.New("carrier shorter than the length header")

	// ErrCorruptHeader means the decoded length header claims more bits
	// than the carrier body holds.
	ErrCorruptHeader = errors.New("length header larger than the carrier body")

	// ErrInvalidStride means extraction computed a zero interleave step.
	ErrInvalidStride = errors.New("interleave step is zero")
)
