package commands

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <carrier>",
	Short: "Show carrier properties and hiding capacity",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, _, report, err := loadCarrier(args[0], newCodec())
	if err != nil {
		return err
	}
	printReport(args[0], report)
	return nil
}
