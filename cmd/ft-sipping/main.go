package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/ft-sipping/asset"
	"github.com/lixenwraith/ft-sipping/audio"
	"github.com/lixenwraith/ft-sipping/ping"
	"github.com/lixenwraith/ft-sipping/render"
	"github.com/lixenwraith/ft-sipping/sip"
	"github.com/lixenwraith/ft-sipping/terminal"
)

func main() {
	os.Exit(run())
}

// options holds the validated command-line parameters
type options struct {
	host     string
	count    int
	interval float64
	width    int
	noSound  bool
}

// parseArgs accepts options before or after the host, like the classic
// ping CLIs. flag.Parse stops at the first positional, so the remainder
// is re-parsed through the same set.
func parseArgs(fs *flag.FlagSet, args []string) (*options, error) {
	opts := &options{}
	fs.IntVar(&opts.count, "c", 4, "number of sip-pings")
	fs.Float64Var(&opts.interval, "i", 1.0, "interval between sip-pings in seconds")
	fs.IntVar(&opts.width, "width", 18, "animation width in characters")
	fs.BoolVar(&opts.noSound, "no-sound", false, "disable feedback tones")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return nil, fmt.Errorf("host is required")
	}
	opts.host = rest[0]
	if err := fs.Parse(rest[1:]); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	switch {
	case opts.count < 1:
		return nil, fmt.Errorf("count must be at least 1")
	case opts.interval < 0:
		return nil, fmt.Errorf("interval must be non-negative")
	case opts.width < 4:
		return nil, fmt.Errorf("width must be at least 4")
	}
	return opts, nil
}

func run() int {
	fs := flag.NewFlagSet("ft-sipping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts, err := parseArgs(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printUsage(os.Stdout, fs)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ft-sipping: %v\n", err)
		printUsage(os.Stderr, fs)
		return 2
	}

	if !terminal.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "ft-sipping: stdout is not a terminal")
		return 1
	}

	width := opts.width

	// Auto-cap width to terminal size (clink needs 2*width + gap + text)
	if cols, _ := terminal.Size(os.Stdout.Fd()); cols > 0 {
		if maxWidth := (cols - 30) / 2; maxWidth > 0 && width > maxWidth {
			width = max(4, maxWidth)
		}
	}

	colorMode := terminal.DetectColorMode()
	switch os.Getenv("FT_SIPPING_COLOR") {
	case "true", "truecolor", "24":
		colorMode = terminal.ColorModeTrueColor
	case "256", "8":
		colorMode = terminal.ColorMode256
	}

	frames, err := render.DecodeFrames(bytes.NewReader(asset.SipGIF), width, colorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ft-sipping: load animation: %v\n", err)
		return 1
	}

	cfg := sip.LoadConfig()
	cfg.Host = opts.host
	cfg.Count = opts.count
	cfg.Interval = time.Duration(opts.interval * float64(time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := ping.NewProber()
	prober.Timeout = cfg.Timeout
	if err := prober.Detect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ft-sipping: %v\n", err)
		return 1
	}

	audioCfg := audio.LoadConfig()
	if opts.noSound {
		audioCfg.Enabled = false
	}
	feedback := audio.NewFeedback(audioCfg)
	if err := feedback.Init(); err != nil {
		// Non-fatal, the run can proceed without sound
		log.Printf("audio unavailable: %v", err)
	}
	defer feedback.Close()

	display := render.NewDisplay(terminal.NewWriter(os.Stdout, colorMode))
	defer terminal.ResetMode()
	defer display.Close()

	session, err := sip.NewSession(cfg, frames, display, prober, feedback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ft-sipping: %v\n", err)
		return 2
	}

	target := opts.host
	if ip, err := ping.Resolve(opts.host); err == nil && ip != opts.host {
		target = fmt.Sprintf("%s (%s)", opts.host, ip)
	}

	display.Println("")
	display.Println(fmt.Sprintf("Sip-ping %s...", target))
	display.Println("")

	stats := session.Run(ctx)

	// Restore colors and cursor before the summary so an interrupt
	// mid-animation still leaves a sane terminal
	display.Close()

	display.Println("")
	for _, line := range stats.Summary(opts.host) {
		display.Println(line)
	}

	return 0
}

func printUsage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: ft-sipping [options] <host>")
	fmt.Fprintln(out, "\nAnimated sip-ping: pings a host while a cup sips.")
	fmt.Fprintln(out, "\nOptions:")
	fs.SetOutput(out)
	fs.PrintDefaults()
	fmt.Fprintln(out, "\nEnvironment:")
	fmt.Fprintln(out, "  FT_SIPPING_TICK_MS        animation tick in milliseconds (default 30)")
	fmt.Fprintln(out, "  FT_SIPPING_TIMEOUT_MS     per-ping timeout in milliseconds (default 2000)")
	fmt.Fprintln(out, "  FT_SIPPING_COLOR          force color mode: 'true' or '256'")
	fmt.Fprintln(out, "  FT_SIPPING_AUDIO_ENABLED  enable/disable feedback tones")
	fmt.Fprintln(out, "  FT_SIPPING_VOLUME         tone volume 0-100")
}
