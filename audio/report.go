package audio

import (
	"fmt"

	"github.com/EdTheDev254/audio-steganography/models"
	"github.com/EdTheDev254/audio-steganography/stego"
)

// BuildReport assembles the operator-facing capacity report for a
// decoded carrier.
func BuildReport(meta *models.AudioMetadata, tags *models.CarrierTags, capacity stego.Capacity, stealthStep int) models.AnalysisReport {
	layout := "Mono"
	if meta.Channels == 2 {
		layout = "Stereo"
	} else if meta.Channels > 2 {
		layout = fmt.Sprintf("%d channels", meta.Channels)
	}

	return models.AnalysisReport{
		Channels:              meta.Channels,
		ChannelLayout:         layout,
		SampleRate:            meta.SampleRate,
		BitDepth:              meta.BitDepth,
		DurationSeconds:       meta.Duration,
		RawAudioBytes:         meta.TotalBytes,
		AbsoluteCapacityBytes: capacity.AbsoluteBytes,
		StealthCapacityBytes:  capacity.StealthBytes,
		StealthStepThreshold:  stealthStep,
		ReadableCapacity:      HumanSize(capacity.AbsoluteBytes),
		Tags:                  tags,
	}
}

// HumanSize formats a byte count the way the capacity report shows it.
func HumanSize(n int) string {
	switch {
	case n > 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n > 1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
