package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/ledsign/protocol"
)

func init() {
	printCmd.Flags().BoolVarP(&printClearFlag, `clear`, `c`, false, `clear the display first`)
	rootCmd.AddCommand(printCmd)
}

var printClearFlag bool

var printCmd = &cobra.Command{
	Use:   "print <line> <text>...",
	Short: `print text on a line`,
	Long:  `print text on a 1-based text line, arguments are joined with spaces`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := parseByte(args[0])
		if err != nil {
			return err
		}
		frame, err := protocol.EncodePrintLine(line, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if printClearFlag {
			return send(cmd, protocol.EncodeClearDisplay(), frame)
		}
		return send(cmd, frame)
	},
}
