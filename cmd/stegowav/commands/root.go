// Package commands implements the stegowav CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EdTheDev254/audio-steganography/audio"
	"github.com/EdTheDev254/audio-steganography/models"
	"github.com/EdTheDev254/audio-steganography/stego"
)

var (
	// Global flags
	stepThreshold int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stegowav",
	Short: "Hide and recover messages in WAV audio via interleaved LSB embedding",
	Long: `stegowav hides an arbitrary payload in the least-significant bits of a
PCM WAV file's sample bytes and recovers it later.

A 32-byte header carries the payload bit count; the payload bits are then
spread across the rest of the recording at a fixed step, so the changes
never cluster at the start of the file.

Examples:
  # Inspect a carrier before hiding anything
  stegowav analyze carrier.wav

  # Hide a message, refusing anything louder than the stealth threshold
  stegowav encode carrier.wav -o output.wav -m "meet at dawn" --stealth

  # Recover it
  stegowav decode output.wav
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVar(&stepThreshold, "step-threshold", stego.DefaultStealthStep,
		"minimum interleave step counted as stealth-safe")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

func newCodec() *stego.Codec {
	return stego.NewCodec(stepThreshold)
}

// loadCarrier reads and decodes a carrier file, returning its frame
// bytes, metadata, optional MP3 tags and capacity report.
func loadCarrier(path string, codec *stego.Codec) ([]byte, *models.AudioMetadata, models.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, models.AnalysisReport{}, fmt.Errorf("cannot open carrier: %w", err)
	}

	decoder := audio.NewDecoder()
	frames, meta, tags, err := decoder.DecodeCarrier(path, data)
	if err != nil {
		return nil, nil, models.AnalysisReport{}, fmt.Errorf("cannot decode %s: %w", path, err)
	}

	capacity, err := codec.Capacity(meta.TotalBytes)
	if err != nil {
		return nil, nil, models.AnalysisReport{}, fmt.Errorf("%s: %w", path, err)
	}

	return frames, meta, audio.BuildReport(meta, tags, capacity, codec.StealthStep()), nil
}

// printReport mirrors the analysis layout operators see before choosing
// a payload size.
func printReport(path string, r models.AnalysisReport) {
	line := "----------------------------------------"
	fmt.Println(line)
	fmt.Printf("Analysis Report for: '%s'\n", path)
	fmt.Printf("  - Channels: %d (%s)\n", r.Channels, r.ChannelLayout)
	fmt.Printf("  - Sample Rate: %d Hz\n", r.SampleRate)
	fmt.Printf("  - Bit Depth: %d-bit\n", r.BitDepth)
	fmt.Printf("  - Duration: %.2f seconds\n", r.DurationSeconds)
	fmt.Printf("  - Raw Audio Size: %d bytes\n", r.RawAudioBytes)
	if r.Tags != nil {
		fmt.Printf("  - Tags: %s / %s\n", r.Tags.Artist, r.Tags.Title)
	}
	fmt.Println(line)
	fmt.Printf("Maximum Storage Capacity: %d bytes (%s)\n", r.AbsoluteCapacityBytes, r.ReadableCapacity)
	fmt.Printf("Stealth Capacity (step >= %d): %d bytes (%s)\n",
		r.StealthStepThreshold, r.StealthCapacityBytes, audio.HumanSize(r.StealthCapacityBytes))
	fmt.Println(line)
}
