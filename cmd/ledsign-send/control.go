package main

import (
	"github.com/spf13/cobra"

	"github.com/BeatGlow/ledsign/protocol"
)

func init() {
	rootCmd.AddCommand(clearCmd, clearLineCmd, onCmd, offCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: `clear the display`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, protocol.EncodeClearDisplay())
	},
}

var clearLineCmd = &cobra.Command{
	Use:   "clear-line <line>",
	Short: `send a clear line command`,
	Long:  `send a clear line command; signs accept it without changing the display`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := parseByte(args[0])
		if err != nil {
			return err
		}
		frame, err := protocol.EncodeClearLine(line)
		if err != nil {
			return err
		}
		return send(cmd, frame)
	},
}

var onCmd = &cobra.Command{
	Use:   "on",
	Short: `turn the display on`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, protocol.EncodeDisplayOn())
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: `turn the display off`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, protocol.EncodeDisplayOff())
	},
}
