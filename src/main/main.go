package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"screen-region-shot/src/config"
	"screen-region-shot/src/eventloop"
	"screen-region-shot/src/logutil"
	"screen-region-shot/src/monitor"
	"screen-region-shot/src/overlay"
	"screen-region-shot/src/runtimeinit"
	"screen-region-shot/src/session"
	"screen-region-shot/src/status"
)

const (
	exitCaptured  = 0
	exitError     = 1
	exitCancelled = 2
)

type mainOptions struct {
	output       string
	minSize      int
	pollMs       int
	opacity      float64
	clipboard    bool
	noStdin      bool
	cancelHotkey string
	verbose      bool
}

// longFlags may also be spelled with a single dash.
var longFlags = []string{
	"output", "min-size", "poll-ms", "opacity", "clipboard", "no-stdin", "cancel-hotkey", "verbose",
}

func main() {
	// Ensure DPI awareness before creating any windows or querying metrics
	enableDPIAwareness()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, normalizeLegacyArgs(os.Args))
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		args = []string{"screen-region-shot"}
	}
	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitCaptured
	case errors.Is(err, session.ErrCancelled):
		return exitCancelled
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
}

func newRootCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen-region-shot",
		Short: "Drag-select a screen region and save it as a PNG",
		Long: `screen-region-shot shows a translucent overlay on the monitor under the
mouse cursor. Drag with the left button to select a region; on release the
region is saved as a PNG and the program exits.

The overlay follows the cursor to other monitors. Escape, closing the
window, or an "exit" line on standard input cancels.

Status lines prefixed with ` + status.DefaultPrefix + ` are written to stdout.
Exit status is 0 after a capture, 2 when cancelled, 1 on error.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelection(cmd.Context(), opts.loadOptions(cmd), opts.verbose)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Output PNG path (default "+config.DefaultOutputFile+")")
	f.IntVar(&opts.minSize, "min-size", 0, fmt.Sprintf("Minimum selection width and height in pixels (default %d)", config.DefaultMinSize))
	f.IntVar(&opts.pollMs, "poll-ms", 0, fmt.Sprintf("Monitor tracking interval in milliseconds (default %d)", config.DefaultPollMs))
	f.Float64Var(&opts.opacity, "opacity", 0, fmt.Sprintf("Overlay opacity in (0,1] (default %.1f)", config.DefaultOpacity))
	f.BoolVar(&opts.clipboard, "clipboard", false, "Also copy the captured PNG to the clipboard")
	f.BoolVar(&opts.noStdin, "no-stdin", false, `Do not listen for "exit" on standard input`)
	f.StringVar(&opts.cancelHotkey, "cancel-hotkey", "", `Global key combination that cancels, "" disables (default "`+config.DefaultCancelHotkey+`")`)
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose diagnostics to stderr")

	return cmd
}

// loadOptions turns the flags the user actually set into config overrides.
func (o *mainOptions) loadOptions(cmd *cobra.Command) config.LoadOptions {
	lo := config.LoadOptions{
		OutputFileOverride:   o.output,
		MinSizeOverride:      o.minSize,
		PollIntervalOverride: time.Duration(o.pollMs) * time.Millisecond,
		OpacityOverride:      o.opacity,
	}
	flags := cmd.Flags()
	if flags.Changed("clipboard") {
		v := o.clipboard
		lo.ClipboardOverride = &v
	}
	if flags.Changed("no-stdin") {
		v := !o.noStdin
		lo.ListenStdinOverride = &v
	}
	if flags.Changed("cancel-hotkey") {
		v := o.cancelHotkey
		lo.CancelHotkeyOverride = &v
	}
	return lo
}

func runSelection(ctx context.Context, loadOptions config.LoadOptions, verbose bool) error {
	rep := status.Stdout()
	rep.Started()

	cfg, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: loadOptions,
		Verbose:     verbose,
	})
	if err != nil {
		return err
	}
	defer logutil.Close()
	logMonitorConfiguration()

	if err := overlay.Init(); err != nil {
		return err
	}
	defer overlay.Terminate()

	win, err := overlay.New(overlay.Options{Opacity: cfg.OverlayOpacity})
	if err != nil {
		return err
	}
	defer win.Destroy()

	loop, err := eventloop.New(eventloop.Options{
		Config: cfg,
		Window: win,
		Status: rep,
	})
	if err != nil {
		return err
	}
	res, err := loop.Run(ctx)
	if err != nil {
		return err
	}
	return res.Err()
}

func logMonitorConfiguration() {
	monitors := monitor.Active()
	log.Info("detected monitors", "count", len(monitors))
	for _, m := range monitors {
		log.Info("monitor", "number", m.Number(), "bounds", m.String())
	}
}

// normalizeLegacyArgs maps single-dash long flags (-output x, -verbose=true)
// to the double-dash form cobra expects.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
			continue
		}
		name, _, _ := strings.Cut(arg[1:], "=")
		for _, long := range longFlags {
			if name == long {
				normalized[i] = "-" + arg
				break
			}
		}
	}

	return normalized
}
