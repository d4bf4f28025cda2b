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

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"
	"github.com/linuxmatters/voiceactor/internal/audio"
	"github.com/linuxmatters/voiceactor/internal/cli"
	"github.com/linuxmatters/voiceactor/internal/config"
	"github.com/linuxmatters/voiceactor/internal/device"
	"github.com/linuxmatters/voiceactor/internal/device/paudio"
	"github.com/linuxmatters/voiceactor/internal/logging"
	"github.com/linuxmatters/voiceactor/internal/playback"
	"github.com/linuxmatters/voiceactor/internal/ui"
	"github.com/mattn/go-isatty"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var log = slog.Disabled

// listAudioDevices prints the device inventory for --list-devices.
var listAudioDevices = listDevices

// Args holds the command line. Nothing is marked required so that
// --list-devices and --version work on their own; playback options are
// validated by config.New.
type Args struct {
	RootAudioPath string `short:"r" help:"Directory holding the audio clips" default:"audios" placeholder:"DIR"`
	File          string `short:"f" help:"Clip to play, relative to the root audio path" placeholder:"FILE"`
	Devices       string `short:"d" help:"Comma-separated output device names" placeholder:"NAMES"`
	ListDevices   bool   `short:"l" help:"List audio devices and exit"`
	NoUI          bool   `name:"no-ui" help:"Disable the progress display and log plain lines instead"`
	LogLevel      string `help:"Log level, optionally per subsystem (info,PLAY=debug)" default:"info" placeholder:"LEVEL"`
	LogFile       string `help:"Also write logs to a rotated file" placeholder:"PATH"`
	ChunkFrames   int    `help:"Frames per blocking stream write" default:"4096"`
	Version       bool   `help:"Show version information"`
}

// Config builds the validated playback configuration.
func (a *Args) Config() (config.Config, error) {
	return config.New(a.RootAudioPath, a.File, a.Devices, a.NoUI, a.LogLevel, a.LogFile, a.ChunkFrames)
}

func newParser(args *Args) (*kong.Kong, error) {
	return kong.New(args,
		kong.Name("voiceactor"),
		kong.Description("Play one clip on several audio devices at once."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var args Args
	parser, err := newParser(&args)
	if err != nil {
		cli.PrintError(err.Error())
		return cli.ExitFailure
	}
	if _, err := parser.Parse(argv); err != nil {
		cli.PrintError(err.Error())
		return cli.ExitCode(err)
	}

	// Handle version flag
	if args.Version {
		cli.PrintVersion(version)
		return cli.ExitOK
	}

	backend, err := logging.New(args.LogFile, args.LogLevel, os.Stderr)
	if err != nil {
		cli.PrintError(err.Error())
		return cli.ExitUsage
	}
	defer backend.Close()
	useLoggers(backend)

	// Listing happens before any playback option is validated
	if args.ListDevices {
		return exit(listAudioDevices())
	}

	cfg, err := args.Config()
	if err != nil {
		return exit(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return exit(playClip(ctx, stop, cfg, backend))
}

func useLoggers(b *logging.Backend) {
	log = b.Logger(logging.SubsysMain)
	audio.UseLogger(b.Logger(logging.SubsysAudio))
	device.UseLogger(b.Logger(logging.SubsysDevice))
	playback.UseLogger(b.Logger(logging.SubsysPlayback))
	paudio.UseLogger(b.Logger(logging.SubsysPortAudio))
}

func exit(err error) int {
	if err == nil {
		return cli.ExitOK
	}
	if errors.Is(err, context.Canceled) {
		cli.PrintWarning("interrupted")
	} else {
		cli.PrintError(err.Error())
	}
	return cli.ExitCode(err)
}

func listDevices() error {
	host, err := paudio.Open(0)
	if err != nil {
		return err
	}
	defer host.Close()

	log.Debugf("Listing audio devices")
	devices, err := device.Snapshot(host)
	if err != nil {
		return err
	}

	cli.PrintDevices(os.Stdout, devices)
	return nil
}

// playClip runs the setup phase under ctx, then hands off to playback. stop
// restores default signal handling once streams are playing.
func playClip(ctx context.Context, stop context.CancelFunc, cfg config.Config, backend *logging.Backend) error {
	path := cfg.AudioPath()

	log.Infof("Loading %s", path)
	buf, err := audio.Decode(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	format := buf.Format()
	log.Infof("Decoded %s: %s, %s", cfg.File, format, cli.FormatDuration(buf.Duration()))

	host, err := paudio.Open(cfg.ChunkFrames)
	if err != nil {
		return err
	}
	defer host.Close()

	log.Infof("Resolving devices %q", cfg.Devices)
	indexes, err := device.Resolve(cfg.Devices, format, host)
	if err != nil {
		return err
	}

	log.Infof("Opening %d device streams", len(indexes))
	outputs, err := device.OpenStreams(ctx, indexes, format, host)
	if err != nil {
		return err
	}

	// Streams are owned by playback from here and always run to completion
	stop()

	log.Infof("Playing %s to %d streams", path, len(outputs))
	if cfg.NoUI || !isatty.IsTerminal(os.Stdout.Fd()) {
		err = playPlain(cfg, buf, outputs)
	} else {
		err = playWithUI(cfg, buf, outputs, backend)
	}
	if err != nil {
		return err
	}

	cli.PrintSuccess(fmt.Sprintf("Done: %s played on %d %s", cfg.File, len(outputs), plural(len(outputs), "device", "devices")))
	return nil
}

func deviceNames(outputs []device.Output) []string {
	names := make([]string, len(outputs))
	for i, out := range outputs {
		names[i] = out.Device.Name
	}
	return names
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func playPlain(cfg config.Config, buf *audio.Buffer, outputs []device.Output) error {
	cli.PrintBanner()
	cli.PrintInfo("Clip", cfg.AudioPath())
	cli.PrintInfo("Format", buf.Format().String())
	cli.PrintInfo("Length", cli.FormatDuration(buf.Duration()))
	cli.PrintInfo("Devices", strings.Join(deviceNames(outputs), ", "))
	cli.PrintSection("Playback")

	// Each slot is only touched by its own stream's goroutine
	next := make([]int, len(outputs))
	progress := func(stream, written, total int) {
		pct := written * 100 / max(total, 1)
		if pct >= next[stream] {
			log.Infof("%s: %d%%", outputs[stream].Device.Name, pct)
			next[stream] = pct - pct%25 + 25
		}
	}

	results, err := playback.Play(buf, outputs,
		playback.WithChunkFrames(cfg.ChunkFrames),
		playback.WithProgress(progress),
	)
	printSummary(cfg, buf, results)
	return err
}

func playWithUI(cfg config.Config, buf *audio.Buffer, outputs []device.Output, backend *logging.Backend) error {
	model := ui.NewModel(ui.Session{
		Clip:    cfg.File,
		Format:  buf.Format(),
		Profile: audio.Analyze(buf),
		Devices: deviceNames(outputs),
		Spectrum: func(frame int) []float64 {
			return audio.Spectrum(buf, frame)
		},
	})
	p := tea.NewProgram(model)

	// The display owns the terminal while it runs
	backend.SetStdout(nil)

	var (
		results []playback.Result
		playErr error
		done    = make(chan struct{})
	)
	go func() {
		defer close(done)
		start := time.Now()
		results, playErr = playback.Play(buf, outputs,
			playback.WithChunkFrames(cfg.ChunkFrames),
			playback.WithProgress(func(stream, written, total int) {
				p.Send(ui.StreamProgress{Stream: stream, Written: written, Total: total})
			}),
		)
		p.Send(ui.PlaybackComplete{Results: results, Elapsed: time.Since(start), Err: playErr})
	}()

	if _, err := p.Run(); err != nil {
		log.Warnf("Progress display failed: %v", err)
	}
	if model.Interrupted() {
		fmt.Println(cli.KeyStyle.Render("Display closed; waiting for playback to finish..."))
	}

	// Join barrier: every stream finishes and is released before exit
	<-done
	backend.SetStdout(os.Stderr)

	if model.CompletionSummary() == "" {
		printSummary(cfg, buf, results)
	}
	return playErr
}

func printSummary(cfg config.Config, buf *audio.Buffer, results []playback.Result) {
	lines := make([]cli.SummaryLine, len(results))
	for i, r := range results {
		lines[i] = cli.SummaryLine{
			Device:  r.Output.Device.Name,
			Played:  cli.FormatBytes(int64(r.Written)),
			Elapsed: cli.FormatDuration(r.Elapsed),
		}
		if r.Err != nil {
			lines[i].Err = r.Err.Error()
		}
	}
	cli.PrintPlaybackSummary(cfg.File, cli.FormatDuration(buf.Duration()), lines)
}
