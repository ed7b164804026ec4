package audio

import "errors"

var (
	// ErrInvalidContainer means the input is not a parseable audio file.
	ErrInvalidContainer = errors.New("not a parseable audio container")

	// ErrUnsupportedBitDepth means the PCM bit depth is not 8, 16 or 24.
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

	// ErrUnsupportedFormat means the carrier file extension is not
	// .wav or .mp3.
	ErrUnsupportedFormat = errors.New("unsupported carrier format")
)
