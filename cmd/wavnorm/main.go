// This command line tool peak normalizes wav files in batch and rewrites them
// as 32-bit float files.
// Results are stored in a "normalized" folder next to the original files
// unless an output directory is configured.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/rawwave"
)

const defaultOutputDir = "normalized"

var errNothingToDo = errors.New("you need to pass -file, -dir or -config to indicate what to normalize")

// Config describes a normalization batch.
type Config struct {
	Files []string `yaml:"files"`
	Dirs  []string `yaml:"dirs"`
	// OutputDir is used as is when absolute, relative to each source file's
	// folder otherwise.
	OutputDir string `yaml:"output_dir"`
	// Mono mixes every file down to a single channel.
	Mono    bool `yaml:"mono"`
	Workers int  `yaml:"workers"`
}

// result is the outcome of one normalized file.
type result struct {
	source string
	target string
	info   rawwave.Info
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out, logOut io.Writer) error {
	flagSet := flag.NewFlagSet("wavnorm", flag.ContinueOnError)

	configPath := flagSet.String("config", "", "YAML batch description")
	file := flagSet.String("file", "", "Path to the wave file to normalize")
	dir := flagSet.String("dir", "", "Directory containing all the wav files to normalize")
	outputDir := flagSet.String("out", "", "Output directory (default \""+defaultOutputDir+"\" next to each file)")
	mono := flagSet.Bool("mono", false, "mix every file down to mono")
	workers := flagSet.Int("workers", 0, "files processed concurrently (default: number of CPUs)")
	verbose := flagSet.Bool("v", false, "log debug details")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	cfg := &Config{}

	if *configPath != "" {
		cfg, err = loadConfig(*configPath)
		if err != nil {
			return err
		}
	}

	if *file != "" {
		cfg.Files = append(cfg.Files, *file)
	}

	if *dir != "" {
		cfg.Dirs = append(cfg.Dirs, *dir)
	}

	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if *mono {
		cfg.Mono = true
	}

	if *workers > 0 {
		cfg.Workers = *workers
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	results, err := normalizeAll(ctx, cfg, rawwave.NewCodec(&rawwave.FileStore{Logger: logger}), logger)

	for _, r := range results {
		fmt.Fprintf(out, "%s -> %s (%s)\n", r.source, r.target, r.info.Duration())
	}

	frames := lo.SumBy(results, func(r result) int { return r.info.Frames })
	fmt.Fprintf(out, "%d file(s) normalized, %d frames\n", len(results), frames)

	return err
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := decodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return cfg, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("config: workers must not be negative, got %d", cfg.Workers)
	}

	return cfg, nil
}

// collectFiles lists the explicit files and the wav files found directly in
// the configured directories, without duplicates.
func collectFiles(cfg *Config) ([]string, error) {
	files := append([]string(nil), cfg.Files...)

	for _, dir := range cfg.Dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}

		wavs := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
			return !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".wav")
		})

		files = append(files, lo.Map(wavs, func(e os.DirEntry, _ int) string {
			return filepath.Join(dir, e.Name())
		})...)
	}

	return lo.Uniq(lo.Map(files, func(f string, _ int) string { return filepath.Clean(f) })), nil
}

func outputPath(cfg *Config, source string) string {
	dir := cfg.OutputDir
	if dir == "" {
		dir = defaultOutputDir
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(source), dir)
	}

	return filepath.Join(dir, filepath.Base(source))
}

// normalizeAll processes every file of the batch. A failing file doesn't stop
// the others; all failures are returned joined.
func normalizeAll(ctx context.Context, cfg *Config, codec *rawwave.Codec, logger *slog.Logger) ([]result, error) {
	files, err := collectFiles(cfg)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, errNothingToDo
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		results = make([]*result, len(files))
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, source := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			r, err := normalizeFile(codec, source, outputPath(cfg, source), cfg.Mono, logger)
			if err != nil {
				logger.Error("normalization failed", "path", source, "err", err)

				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()

				return nil
			}

			results[i] = r

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		errs = append(errs, err)
	}

	return lo.FromSlicePtr(lo.Compact(results)), errors.Join(errs...)
}

func normalizeFile(codec *rawwave.Codec, source, target string, mono bool, logger *slog.Logger) (*result, error) {
	info, err := codec.Load(source, nil, nil)
	if err != nil {
		return nil, err
	}

	left := make([]float32, info.Frames)

	var right []float32
	if !mono {
		right = make([]float32, info.Frames)
	}

	_, err = codec.Load(source, left, right)
	if err != nil && !mono && errors.Is(err, rawwave.ErrUnsupportedFormat) {
		// layouts without a usable speaker mask can still be summed to mono
		logger.Debug("falling back to mono", "path", source, "err", err)

		right = nil
		_, err = codec.Load(source, left, nil)
	}

	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(filepath.Dir(target), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", filepath.Dir(target), err)
	}

	err = codec.Store(target, info.SampleRate, left, right)
	if err != nil {
		return nil, err
	}

	logger.Debug("normalized", "path", source, "target", target, "frames", info.Frames, "rate", info.SampleRate)

	return &result{source: source, target: target, info: info}, nil
}
