// Command ledsign-send encodes sign commands as frames and writes them to stdout, a serial port
// or an SPI bus.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/BeatGlow/ledsign"
	"github.com/BeatGlow/ledsign/ingest"
)

var rootCmd = &cobra.Command{
	Use:              filepath.Base(os.Args[0]),
	Short:            "send commands to an LED sign",
	Long:             "ledsign-send encodes sign commands as STX/ETX frames and writes them to stdout, a serial port or an SPI bus",
	SilenceUsage:     true,
	SilenceErrors:    true,
	TraverseChildren: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debugFlag {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

var (
	debugFlag  bool
	serialFlag string
	baudFlag   int
	spiFlag    string
	speedFlag  uint32
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, `debug`, `d`, os.Getenv("LEDSIGN_DEBUG") != "", `debug errors`)
	rootCmd.PersistentFlags().StringVarP(&serialFlag, `serial`, `s`, ``, `serial device to write to`)
	rootCmd.PersistentFlags().IntVarP(&baudFlag, `baud`, `b`, ingest.DefaultBaud, `serial baud rate`)
	rootCmd.PersistentFlags().StringVar(&spiFlag, `spi`, ``, `SPI bus and device to write to, as <bus>.<device>`)
	rootCmd.PersistentFlags().Uint32Var(&speedFlag, `spi-speed`, ledsign.DefaultSPIConfig.SpeedHz, `SPI clock in Hz`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
			fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
		} else {
			fmt.Fprintln(os.Stderr, "error: "+err.Error())
		}
		os.Exit(1)
	}
}

// send writes frames to the selected output.
func send(cmd *cobra.Command, frames ...[]byte) error {
	w, err := openOutput(cmd)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		slog.Debug("send", "frame", fmt.Sprintf("% x", frame), "output", w.String())
		if _, err = w.Write(frame); err != nil {
			_ = w.Close()
			return errors.WrapPrefix(err, "write frame", 0)
		}
	}
	return w.Close()
}

type output interface {
	io.WriteCloser
	fmt.Stringer
}

type stdout struct{ io.Writer }

func (stdout) Close() error   { return nil }
func (stdout) String() string { return "stdout" }

func openOutput(cmd *cobra.Command) (output, error) {
	switch {
	case serialFlag != "" && spiFlag != "":
		return nil, errors.New("--serial and --spi are mutually exclusive")
	case serialFlag != "":
		port, err := ingest.OpenSerial(serialFlag, baudFlag)
		if err != nil {
			return nil, err
		}
		return port, nil
	case spiFlag != "":
		bus, dev, err := parseSPI(spiFlag)
		if err != nil {
			return nil, err
		}
		config := ledsign.DefaultSPIConfig
		config.Bus, config.Device, config.SpeedHz = bus, dev, speedFlag
		link, err := ledsign.OpenSPILink(&config)
		if err != nil {
			return nil, errors.WrapPrefix(err, "open SPI "+spiFlag, 0)
		}
		return link, nil
	default:
		return stdout{cmd.OutOrStdout()}, nil
	}
}

func parseSPI(s string) (bus, dev int, err error) {
	busStr, devStr, ok := strings.Cut(s, ".")
	if !ok {
		devStr = "0"
	}
	if bus, err = strconv.Atoi(busStr); err != nil {
		return 0, 0, errors.Errorf("invalid SPI bus %q", busStr)
	}
	if dev, err = strconv.Atoi(devStr); err != nil {
		return 0, 0, errors.Errorf("invalid SPI device %q", devStr)
	}
	return bus, dev, nil
}

// parseByte parses a line number, character index or data byte. Hex needs a 0x prefix.
func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, errors.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}
