// Package audio is the container collaborator around the stego codec:
// it turns carrier files into raw PCM frame bytes and persists mutated
// frame bytes back as PCM WAV.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aler9/writerseeker"
	"github.com/bogem/id3v2"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tosone/minimp3"

	"github.com/EdTheDev254/audio-steganography/models"
)

const BitsInByte = 8

type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeCarrier picks the container decoder from the file extension.
// MP3 is accepted as carrier input only; stego output is always WAV,
// since a lossy re-encode would destroy the embedded LSBs.
func (d *Decoder) DecodeCarrier(filename string, data []byte) ([]byte, *models.AudioMetadata, *models.CarrierTags, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		frames, meta, err := d.DecodeWAV(data)
		return frames, meta, nil, err
	case ".mp3":
		frames, meta, err := d.DecodeMP3(data)
		if err != nil {
			return nil, nil, nil, err
		}
		return frames, meta, d.ReadTags(data), nil
	default:
		return nil, nil, nil, ErrUnsupportedFormat
	}
}

// DecodeWAV parses a PCM WAV file into its raw interleaved frame bytes,
// little-endian, exactly as they sit in the data chunk.
func (d *Decoder) DecodeWAV(data []byte) ([]byte, *models.AudioMetadata, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, nil, ErrInvalidContainer
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24:
	default:
		return nil, nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, bitDepth)
	}
	width := bitDepth / BitsInByte

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, nil, ErrInvalidContainer
	}

	frames := make([]byte, len(buf.Data)*width)
	for i, s := range buf.Data {
		putSample(frames[i*width:(i+1)*width], s, width)
	}

	frameCount := len(buf.Data) / channels
	meta := &models.AudioMetadata{
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Frames:     frameCount,
		Duration:   float64(frameCount) / float64(buf.Format.SampleRate),
		TotalBytes: len(frames),
	}
	return frames, meta, nil
}

// DecodeMP3 decodes an MP3 carrier to 16-bit PCM frame bytes.
func (d *Decoder) DecodeMP3(data []byte) ([]byte, *models.AudioMetadata, error) {
	dec, pcm, err := minimp3.DecodeFull(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	defer dec.Close()

	// minimp3 always emits 16-bit samples
	frameCount := len(pcm) / 2 / dec.Channels
	meta := &models.AudioMetadata{
		SampleRate: dec.SampleRate,
		Channels:   dec.Channels,
		BitDepth:   16,
		Frames:     frameCount,
		Duration:   float64(frameCount) / float64(dec.SampleRate),
		TotalBytes: len(pcm),
	}
	return pcm, meta, nil
}

// EncodeWAV writes raw frame bytes back out as a PCM WAV file. The
// sample bytes round-trip exactly, so LSB changes survive the
// re-encode.
func (d *Decoder) EncodeWAV(frames []byte, meta *models.AudioMetadata) ([]byte, error) {
	width := meta.BitDepth / BitsInByte
	switch meta.BitDepth {
	case 8, 16, 24:
	default:
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, meta.BitDepth)
	}
	if len(frames)%width != 0 {
		return nil, fmt.Errorf("frame buffer of %d bytes not aligned to %d-byte samples", len(frames), width)
	}

	samples := make([]int, len(frames)/width)
	for i := range samples {
		samples[i] = getSample(frames[i*width:(i+1)*width], width)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: meta.Channels,
			SampleRate:  meta.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: meta.BitDepth,
	}

	ws := &writerseeker.WriterSeeker{}
	enc := wav.NewEncoder(ws, meta.SampleRate, meta.BitDepth, meta.Channels, 1)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to encode WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close WAV encoder: %w", err)
	}

	out, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %w", err)
	}
	return out, nil
}

// ReadTags reads ID3 metadata from an MP3 carrier for the analysis
// report. Missing or unparseable tags are not an error.
func (d *Decoder) ReadTags(data []byte) *models.CarrierTags {
	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil || tag == nil {
		return nil
	}

	tags := &models.CarrierTags{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
	}
	if tags.Title == "" && tags.Artist == "" && tags.Album == "" {
		return nil
	}
	return tags
}

// putSample stores a sample little-endian. 8-bit WAV samples are
// unsigned; wider depths are two's complement, which the plain byte
// split already encodes.
func putSample(b []byte, s, width int) {
	for i := 0; i < width; i++ {
		b[i] = byte(s >> (BitsInByte * i))
	}
}

// getSample is the inverse of putSample, sign-extending widths above
// one byte.
func getSample(b []byte, width int) int {
	var v int64
	for i := 0; i < width; i++ {
		v |= int64(b[i]) << (BitsInByte * i)
	}
	if width > 1 {
		shift := 64 - BitsInByte*width
		v = v << shift >> shift
	}
	return int(v)
}
