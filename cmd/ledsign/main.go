// Command ledsign runs the sign: it refreshes the panels and renders frames received on a serial
// port or stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/ledsign"
	"github.com/BeatGlow/ledsign/ingest"
	"github.com/BeatGlow/ledsign/sim"
)

var debug bool

func main() {
	widthFlag := flag.Int("width", ledsign.DefaultConfig.Width, "Sign width in pixels")
	heightFlag := flag.Int("height", ledsign.DefaultConfig.Height, "Sign height in pixels")
	queueFlag := flag.Int("queue", ledsign.DefaultConfig.QueueSize, "Ingest queue slots")
	intervalFlag := flag.Duration("interval", 0, "Delay between row refreshes (default: as fast as possible)")
	reverseFlag := flag.Bool("reverse", false, "Start with inverted polarity")
	serialFlag := flag.String("serial", "", "Serial device to read frames from")
	baudFlag := flag.Int("baud", ingest.DefaultBaud, "Serial baud rate")
	stdinFlag := flag.Bool("stdin", false, "Read frames from stdin, a terminal is put in raw mode so Ctrl-B and Ctrl-C send STX and ETX")
	simFlag := flag.Bool("sim", false, "Use a simulated panel instead of GPIO")
	headlessFlag := flag.Bool("headless", false, "Do not open a window for the simulated panel")
	messageFlag := flag.String("message", "        Where's my bus?", "Text shown at startup")
	lineFlag := flag.Int("line", 2, "Text line of the startup message")
	testFlag := flag.Bool("test", false, "Show an animated test pattern")
	clkFlag := flag.String("clk", ledsign.DefaultGPIOConfig.CLK, "Clock GPIO pin")
	r1Flag := flag.String("r1", ledsign.DefaultGPIOConfig.R1, "Upper data GPIO pin (R1)")
	r2Flag := flag.String("r2", ledsign.DefaultGPIOConfig.R2, "Lower data GPIO pin (R2)")
	aFlag := flag.String("a", ledsign.DefaultGPIOConfig.A, "Row address A GPIO pin")
	bFlag := flag.String("b", ledsign.DefaultGPIOConfig.B, "Row address B GPIO pin")
	cFlag := flag.String("c", ledsign.DefaultGPIOConfig.C, "Row address C GPIO pin")
	dFlag := flag.String("d", ledsign.DefaultGPIOConfig.D, "Row address D GPIO pin")
	oeFlag := flag.String("oe", ledsign.DefaultGPIOConfig.OE, "Output enable GPIO pin (active low)")
	stbFlag := flag.String("stb", ledsign.DefaultGPIOConfig.STB, "Latch GPIO pin")
	flag.BoolVar(&debug, "debug", os.Getenv("LEDSIGN_DEBUG") != "", "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *serialFlag != "" && *stdinFlag {
		fatal(fmt.Errorf("-serial and -stdin are mutually exclusive"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		conn  ledsign.Conn
		panel *sim.Panel
		err   error
	)
	if *simFlag {
		panel = sim.NewPanel(*widthFlag, *heightFlag)
		conn = panel
	} else {
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
		conn, err = ledsign.OpenGPIO(&ledsign.GPIOConfig{
			CLK: *clkFlag,
			R1:  *r1Flag,
			R2:  *r2Flag,
			A:   *aFlag,
			B:   *bFlag,
			C:   *cFlag,
			D:   *dFlag,
			OE:  *oeFlag,
			STB: *stbFlag,
		})
		if err != nil {
			fatal(err)
		}
	}

	sign, err := ledsign.New(conn, &ledsign.Config{
		Width:        *widthFlag,
		Height:       *heightFlag,
		Reversed:     *reverseFlag,
		QueueSize:    *queueFlag,
		StepInterval: *intervalFlag,
		Logger:       logger,
	})
	if err != nil {
		_ = conn.Close()
		fatal(err)
	}
	defer sign.Close()
	logger.Info("using sign", "sign", sign.String())

	if *testFlag {
		sign.TestPattern(0)
		go animate(ctx, sign)
	} else if *messageFlag != "" {
		line, err := checkLine(*lineFlag, sign.Lines())
		if err != nil {
			fatal(halt(sign, err))
		}
		sign.Print(line, *messageFlag)
	}

	var (
		source  io.Reader
		restore = func() error { return nil }
	)
	switch {
	case *serialFlag != "":
		port, err := ingest.OpenSerial(*serialFlag, *baudFlag)
		if err != nil {
			fatal(halt(sign, err))
		}
		defer port.Close()
		logger.Info("using input", "input", port.String())
		source = port
	case *stdinFlag:
		if source, restore, err = ingest.Stdin(); err != nil {
			fatal(halt(sign, err))
		}
		logger.Info("using input", "input", "stdin")
	}
	defer restore()

	if source != nil {
		producer := ingest.NewProducer(sign.Queue(), sign.Frames(), logger)
		go func() {
			if err := producer.Run(ctx, source); err != nil {
				logger.Error("input failed", "error", err)
			}
		}()
	}

	go dumpOnSignal(ctx, sign)

	if panel != nil && !*headlessFlag {
		step := func() error {
			sign.Service()
			return sign.Poll()
		}
		err = sim.RunWindow(ctx, panel, step, nil)
	} else {
		err = sign.Run(ctx)
	}
	if err != nil {
		_ = restore()
		fatal(halt(sign, err))
	}

	stats := sign.Decoder().Stats()
	logger.Info("stopped",
		"frames", stats.Frames,
		"unknown", stats.Unknown,
		"overflows", stats.Overflows,
		"dropped", sign.Queue().Dropped())
}

// animate shifts the test pattern.
func animate(ctx context.Context, sign *ledsign.Sign) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for offset := 1; ; offset++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := sign.Do(ctx, func() { sign.TestPattern(offset) }); err != nil {
			return
		}
	}
}

// dumpOnSignal prints the framebuffer to stderr on SIGUSR1.
func dumpOnSignal(ctx context.Context, sign *ledsign.Sign) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGUSR1)
	defer signal.Stop(sig)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
		}
		var err error
		if doErr := sign.Do(ctx, func() { err = sign.Framebuffer().Dump(os.Stderr) }); doErr != nil {
			return
		}
		if err != nil {
			slog.Warn("dump failed", "error", err)
		}
	}
}

// checkLine validates a 1-based text line number.
func checkLine(line, lines int) (byte, error) {
	if line < 1 || line > lines {
		return 0, fmt.Errorf("line %d out of range 1-%d", line, lines)
	}
	return byte(line), nil
}

// halt blanks and closes the sign and returns err. Call it before fatal, which skips deferred
// calls.
func halt(sign *ledsign.Sign, err error) error {
	if closeErr := sign.Close(); closeErr != nil {
		slog.Warn("close failed", "error", closeErr)
	}
	return err
}

func fatal(err error) {
	if stackFramer, ok := err.(interface{ ErrorStack() string }); debug && ok {
		fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
	}
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
