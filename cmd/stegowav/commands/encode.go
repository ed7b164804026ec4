package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EdTheDev254/audio-steganography/audio"
)

var (
	encodeOutput      string
	encodeMessage     string
	encodeMessageFile string
	requireStealth    bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <carrier>",
	Short: "Hide a message in a carrier and write the stego WAV",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "output WAV path (required)")
	encodeCmd.Flags().StringVarP(&encodeMessage, "message", "m", "", "message text to hide")
	encodeCmd.Flags().StringVarP(&encodeMessageFile, "message-file", "f", "", "file whose bytes are hidden instead of -m")
	encodeCmd.Flags().BoolVar(&requireStealth, "stealth", false, "refuse payloads above the stealth capacity")
	_ = encodeCmd.MarkFlagRequired("output")
}

func runEncode(cmd *cobra.Command, args []string) error {
	payload, err := encodePayload()
	if err != nil {
		return err
	}

	codec := newCodec()
	frames, meta, report, err := loadCarrier(args[0], codec)
	if err != nil {
		return err
	}
	printReport(args[0], report)

	fmt.Printf("\nMessage to encode is %d bytes.\n", len(payload))

	if len(payload) > report.AbsoluteCapacityBytes {
		return fmt.Errorf("message is %d bytes long, but only %d can be hidden",
			len(payload), report.AbsoluteCapacityBytes)
	}
	if len(payload) > report.StealthCapacityBytes {
		if requireStealth {
			return fmt.Errorf("message of %d bytes exceeds the stealth capacity of %d bytes",
				len(payload), report.StealthCapacityBytes)
		}
		fmt.Printf("Warning: message of %d bytes exceeds the stealth capacity of %d bytes.\n",
			len(payload), report.StealthCapacityBytes)
	}

	original := make([]byte, len(frames))
	copy(original, frames)

	fmt.Println("Hiding message...")
	step, err := codec.Embed(frames, payload)
	if err != nil {
		return err
	}
	fmt.Printf("Using a step rate of %d to interleave data.\n", step)

	decoder := audio.NewDecoder()
	stegoWAV, err := decoder.EncodeWAV(frames, meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(encodeOutput, stegoWAV, 0o644); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}

	fmt.Printf("PSNR: %.2f dB\n", audio.CalculatePSNR(original, frames))
	fmt.Printf("Message hidden successfully in '%s'\n", encodeOutput)
	return nil
}

// encodePayload resolves the message from -m or -f; exactly one of the
// two must be given.
func encodePayload() ([]byte, error) {
	switch {
	case encodeMessage != "" && encodeMessageFile != "":
		return nil, fmt.Errorf("use either --message or --message-file, not both")
	case encodeMessage != "":
		return []byte(encodeMessage), nil
	case encodeMessageFile != "":
		payload, err := os.ReadFile(encodeMessageFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read message file: %w", err)
		}
		if len(payload) == 0 {
			return nil, fmt.Errorf("message file is empty")
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("a message is required: pass --message or --message-file")
	}
}
