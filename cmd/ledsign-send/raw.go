package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rawCmd)
}

var rawCmd = &cobra.Command{
	Use:   "raw <byte>...",
	Short: `send raw bytes`,
	Long:  `send raw bytes without framing, e.g. "raw 2 4 1 0x48 3"`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := make([]byte, 0, len(args))
		for _, arg := range args {
			b, err := parseByte(arg)
			if err != nil {
				return err
			}
			data = append(data, b)
		}
		return send(cmd, data)
	},
}
