package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/docker/go-units"
	"github.com/dustin/go-humanize"
	"github.com/mxk/go-flowrate/flowrate"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/trim21/errgo"
	_ "go.uber.org/automaxprocs"

	"throughput/internal/config"
	"throughput/internal/pkg/as"
	"throughput/internal/pkg/gfs"
	"throughput/internal/pkg/global"
	"throughput/rater"
)

const (
	modeRead  = "read"
	modeWrite = "write"
)

func main() {
	var configFilePath = pflag.String("config-file", "", "path to config file")
	var interval = pflag.Duration("interval", 0, "report interval (default 1s)")
	var output = pflag.String("output", "", "report output, stdout or stderr (default stdout)")
	var bufferSize = pflag.String("buffer-size", "", "copy buffer size (default 32KiB)")
	var dest = pflag.String("dest", "", "copy destination, a path or '-' for stdout (default discard)")
	var mode = pflag.String("mode", modeRead, "measure reads from input or writes to dest, 'read' or 'write'")
	var limit = pflag.String("limit", "", "stop after copying this many bytes, e.g. 10GiB")
	var logLevel = pflag.String("log-level", defaultLogLevel(), "log level")
	var version = pflag.Bool("version", false, "print version and exit")

	var profiling = pflag.Bool("profile", false, "enable profiling for CPU and Memory")
	var profileCpu = pflag.Bool("profile-cpu", false, "enable CPU profiling only")
	var profileMem = pflag.Bool("profile-memory", false, "enable Memory profiling only")

	// this avoids 'pflag: help requested' error when calling for help message.
	if slices.Contains(os.Args[1:], "--help") || slices.Contains(os.Args[1:], "-h") {
		fmt.Println("Usage: throughput [flags] [input]")
		fmt.Println("\ninput is a path or '-' for stdin, endless zero bytes if omitted.")
		pflag.PrintDefaults()
		fmt.Println("\nNote: options override config file and THROUGHPUT_* environment variables.")
		return
	}

	pflag.Parse()

	if *version {
		fmt.Println(global.Version)
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if *profileCpu || *profileMem || *profiling {
		var opt = make([]func(*profile.Profile), 0, 2)
		if *profileCpu || *profiling {
			opt = append(opt, profile.CPUProfile)
		}
		if *profileMem || *profiling {
			opt = append(opt, profile.MemProfile)
		}
		defer profile.Start(opt...).Stop()
	}

	cfg, err := config.LoadFromFile(*configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if *interval != 0 {
		cfg.Report.Interval = *interval
	}
	if *output != "" {
		cfg.Report.Output = *output
	}
	if *bufferSize != "" {
		cfg.Copy.BufferSize = *bufferSize
	}

	if err = cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid options")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, job{
		input: pflag.Arg(0),
		dest:  *dest,
		mode:  *mode,
		limit: *limit,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("copy failed")
	}
}

func defaultLogLevel() string {
	if global.Dev {
		return zerolog.LevelDebugValue
	}

	return zerolog.LevelInfoValue
}

type job struct {
	input string
	dest  string
	mode  string
	limit string
}

type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

func openInput(path string) (io.ReadCloser, error) {
	switch path {
	case "":
		return io.NopCloser(zeros{}), nil
	case "-":
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errgo.Wrap(err, "failed to open input")
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func openDest(path string) (io.WriteCloser, error) {
	switch path {
	case "":
		return nopWriteCloser{io.Discard}, nil
	case "-":
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errgo.Wrap(err, "failed to create destination")
	}

	return f, nil
}

func reportOutput(cfg config.Config, dest string) io.Writer {
	if cfg.Report.Output == config.OutputStderr || dest == "-" {
		return os.Stderr
	}

	return os.Stdout
}

func run(ctx context.Context, cfg config.Config, j job) error {
	bufSize, err := cfg.BufferBytes()
	if err != nil {
		return err
	}

	src, err := openInput(j.input)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := openDest(j.dest)
	if err != nil {
		return err
	}

	var r io.Reader = src
	var w io.Writer = dst

	opts := []rater.Option{
		rater.WithInterval(cfg.Report.Interval),
		rater.WithOutput(reportOutput(cfg, j.dest)),
		rater.WithLogger(log.With().Str("component", "rater").Str("mode", j.mode).Logger()),
	}

	switch j.mode {
	case modeRead:
		r, err = rater.NewReader(src, opts...)
	case modeWrite:
		w, err = rater.NewWriter(dst, opts...)
	default:
		err = fmt.Errorf("unknown mode %q", j.mode)
	}
	if err != nil {
		dst.Close()
		return errgo.Wrap(err, "failed to create rater")
	}

	if j.limit != "" {
		n, err := units.RAMInBytes(j.limit)
		if err != nil {
			dst.Close()
			return errgo.Wrap(err, "failed to parse limit")
		}
		r = io.LimitReader(r, n)
	}

	log.Debug().Msgf("copy %s to %s with %s buffer", describe(j.input, "zeros"), describe(j.dest, "discard"),
		humanize.IBytes(as.Uint64(bufSize)))

	m := flowrate.New(time.Second, time.Second)
	_, err = gfs.Copy(ctx, w, r, make([]byte, bufSize), m)
	m.Done()

	if cerr := dst.Close(); cerr != nil && err == nil {
		err = errgo.Wrap(cerr, "failed to close destination")
	}

	st := m.Status()
	log.Info().
		Str("total", humanize.IBytes(as.Uint64(st.Bytes))).
		Dur("duration", st.Duration).
		Stringer("average", rater.Bps(st.AvgRate)).
		Msg("copy finished")

	return err
}

func describe(path, empty string) string {
	switch path {
	case "":
		return empty
	case "-":
		return "stdio"
	}

	return path
}
