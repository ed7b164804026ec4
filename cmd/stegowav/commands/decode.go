package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EdTheDev254/audio-steganography/audio"
	"github.com/EdTheDev254/audio-steganography/stego"
)

var decodeOutput string

var decodeCmd = &cobra.Command{
	Use:   "decode <stego.wav>",
	Short: "Recover the hidden message from a stego WAV",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "write the raw payload bytes to a file instead of printing text")
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot open stego file: %w", err)
	}

	decoder := audio.NewDecoder()
	frames, _, err := decoder.DecodeWAV(data)
	if err != nil {
		return fmt.Errorf("cannot decode %s: %w", args[0], err)
	}

	fmt.Println("Extracting message...")
	payload, err := newCodec().Extract(frames)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		fmt.Println("Message length is zero, nothing to extract.")
		return nil
	}

	if decodeOutput != "" {
		if err := os.WriteFile(decodeOutput, payload, 0o644); err != nil {
			return fmt.Errorf("cannot write payload: %w", err)
		}
		fmt.Printf("Wrote %d payload bytes to '%s'\n", len(payload), decodeOutput)
		return nil
	}

	fmt.Println("\nSecret message found:")
	fmt.Println("---")
	fmt.Println(stego.DecodeText(payload))
	fmt.Println("---")
	return nil
}
