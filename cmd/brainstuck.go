package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/cihandeniz/mouseless.art/internal/bf"
	"github.com/cihandeniz/mouseless.art/internal/catalog"
	"github.com/cihandeniz/mouseless.art/internal/sound"
	"github.com/cihandeniz/mouseless.art/internal/tape"
	"github.com/cihandeniz/mouseless.art/internal/textout"
	"github.com/cihandeniz/mouseless.art/internal/ui"
)

type options struct {
	id          int
	file        string
	catalogFile string
	tapeSize    int
	speed       time.Duration
	animate     bool
	encoding    string
	tui         bool
	list        bool
	wavFile     string
	logFile     string
	trace       bool
	dump        bool
	verbose     bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("brainstuck", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.IntVar(&opts.id, "id", 0, "catalog id of the program to run")
	fs.StringVar(&opts.file, "file", "", "run a program from a source file instead of the catalog")
	fs.StringVar(&opts.catalogFile, "catalog", "", "program catalog (yaml), the built in catalog when empty")
	fs.IntVar(&opts.tapeSize, "tape", tape.DefaultSize, "number of tape cells")
	fs.DurationVar(&opts.speed, "speed", bf.DefaultInterval, "delay between steps when auto running")
	fs.BoolVar(&opts.animate, "animate", false, "step at -speed instead of as fast as possible")
	fs.StringVar(&opts.encoding, "encoding", "utf-8", "how output bytes are shown: utf-8, latin1 or cp437")
	fs.BoolVar(&opts.tui, "tui", false, "step through the program in the terminal ui")
	fs.BoolVar(&opts.list, "list", false, "print the program listing and exit")
	fs.StringVar(&opts.wavFile, "wav", "", "write the command tones of the run to a wav file (under -tui, the run since the last reset)")
	fs.StringVar(&opts.logFile, "log", "", "log file, stderr when headless and discarded under -tui when empty")
	fs.BoolVar(&opts.trace, "trace", false, "print every step")
	fs.BoolVar(&opts.dump, "dump", false, "print the tape when the program ends")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func newLogger(opts options, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	var w io.Writer
	closer := func() {}
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = func() { f.Close() }
	case opts.tui:
		// the ui owns the terminal
		return slog.New(slog.DiscardHandler), closer, nil
	default:
		w = stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

func selectProgram(opts options) (catalog.Program, error) {
	if opts.file != "" {
		return catalog.LoadSource(opts.file)
	}

	var c *catalog.Catalog
	var err error
	if opts.catalogFile != "" {
		c, err = catalog.Load(opts.catalogFile)
	} else {
		c, err = catalog.Default()
	}
	if err != nil {
		return catalog.Program{}, err
	}
	return c.Lookup(opts.id)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(opts, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	decoder, err := textout.New(opts.encoding)
	if err != nil {
		return err
	}

	program, err := selectProgram(opts)
	if err != nil {
		return err
	}
	logger.Debug("program selected", "id", program.ID, "name", program.Name)

	if opts.list {
		fmt.Fprint(stdout, bf.FormatListing(bf.Listing(program.Source)))
		return nil
	}

	var track *sound.Track
	if opts.wavFile != "" {
		track = sound.NewTrack()
	}

	if opts.tui {
		err = ui.StartUI(ui.Config{
			Program:  program,
			TapeSize: opts.tapeSize,
			Speed:    opts.speed,
			Decoder:  decoder,
			Track:    track,
			Logger:   logger,
		})
	} else {
		err = runHeadless(ctx, opts, program, decoder, track, logger, stdout)
	}

	if track != nil {
		if werr := writeWAV(opts.wavFile, track); werr != nil {
			return errors.Join(err, werr)
		}
		logger.Info("wav written", "file", opts.wavFile, "tones", track.Len())
	}
	return err
}

func runHeadless(ctx context.Context, opts options, program catalog.Program, decoder textout.Decoder, track *sound.Track, logger *slog.Logger, stdout io.Writer) error {
	in, err := bf.NewInterpreter(program.Source, opts.tapeSize)
	if err != nil {
		return err
	}

	observe := func(res bf.StepResult) {
		if !res.Executed {
			return
		}
		if track != nil {
			track.Cue(res.Command)
		}
		if opts.trace {
			fmt.Fprintf(stdout, "%5d %c ptr=%d cells=%v\n", res.Index, res.Command, res.Pointer, res.Cells)
		}
	}

	if opts.animate {
		err = bf.AutoRun(ctx, in, opts.speed, observe)
	} else {
		err = stepAll(ctx, in, observe)
	}

	fmt.Fprint(stdout, decoder.Decode(in.Output()))
	if opts.dump {
		fmt.Fprintln(stdout)
		in.PrintTapeState(stdout)
	}

	if err != nil {
		logger.Error("program stopped execution", "error", err, "index", in.Index())
		return err
	}
	logger.Info("program finished", "steps", in.Steps(), "status", in.Status())
	return nil
}

func stepAll(ctx context.Context, in *bf.Interpreter, observe func(bf.StepResult)) error {
	for !in.IsHalted() {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := in.Step()
		observe(res)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeWAV(filename string, track *sound.Track) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := track.WriteWAV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("brainstuck: %v", err)
	}
}
