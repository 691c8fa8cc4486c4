// Command rowvec-replay replays operation traces against rowvec.Vec and a
// reference list, or generates random traces until one diverges.
//
//	rowvec-replay [flags] [trace files or directories...]
//	rowvec-replay version [--json]
//
// Exit status is 0 when every trace agrees, 1 on a divergence and 2 on a usage
// or I/O error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/orizon-lang/rowvec/internal/cli"
	"github.com/orizon-lang/rowvec/internal/watch"
	"github.com/orizon-lang/rowvec/internal/workload"
)

const toolName = "rowvec-replay"

type options struct {
	seed    int64
	trials  int
	size    int
	width   int
	jobs    int
	out     string
	watch   bool
	timeout time.Duration
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		cli.PrintVersion(os.Stdout, toolName, workload.FormatVersion, wantJSON(os.Args[2:]))
		return
	}
	os.Exit(run())
}

// wantJSON reports whether the version subcommand was asked for JSON.
func wantJSON(args []string) bool {
	for _, arg := range args {
		if arg == "--json" || arg == "-json" {
			return true
		}
	}
	return false
}

func run() int {
	var (
		opts       options
		configPath string
		verbose    bool
		debug      bool
	)
	flag.StringVar(&configPath, "config", "", "optional JSON config file")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed (0=time)")
	flag.IntVar(&opts.trials, "trials", 200, "number of random traces to check")
	flag.IntVar(&opts.size, "size", 30, "size hint for generated traces")
	flag.IntVar(&opts.width, "width", 0, "force a row width (0=per trace)")
	flag.IntVar(&opts.jobs, "j", 0, "concurrent trace files (0=GOMAXPROCS)")
	flag.StringVar(&opts.out, "out", "", "directory to write the shrunk failing trace to")
	flag.BoolVar(&opts.watch, "watch", false, "replay trace files again whenever they change")
	flag.DurationVar(&opts.timeout, "timeout", 0, "optional overall timeout (e.g., 30s)")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.BoolVar(&debug, "debug", false, "debug output")
	flag.Parse()

	cfg, err := cli.LoadConfig(configPath)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	applyConfig(cfg, &opts, &verbose, &debug)
	log := cli.NewLogger(verbose, debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	if flag.NArg() == 0 {
		if opts.watch {
			log.Error("-watch needs trace files or directories")
			return 2
		}
		return runCheck(ctx, log, opts)
	}

	paths, err := expand(flag.Args())
	if err != nil {
		log.Error("%v", err)
		return 2
	}
	code := runFiles(ctx, log, paths, opts.jobs)
	if opts.watch {
		code = watchFiles(ctx, log, flag.Args(), opts.jobs)
	}
	return code
}

// applyConfig copies config values into flags the user did not set.
func applyConfig(cfg *cli.Config, opts *options, verbose, debug *bool) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["trials"] && cfg.Trials > 0 {
		opts.trials = cfg.Trials
	}
	if !set["size"] && cfg.Size > 0 {
		opts.size = cfg.Size
	}
	if !set["width"] && cfg.Width > 0 {
		opts.width = cfg.Width
	}
	if !set["j"] && cfg.Concurrency > 0 {
		opts.jobs = cfg.Concurrency
	}
	if !set["out"] && cfg.OutDir != "" {
		opts.out = cfg.OutDir
	}
	if !set["v"] {
		*verbose = *verbose || cfg.Verbose
	}
	if !set["debug"] {
		*debug = *debug || cfg.Debug
	}
}

// expand replaces directories with the *.trace files they contain.
func expand(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		st, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			out = append(out, a)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(a, "*.trace"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func runFiles(ctx context.Context, log *cli.Logger, paths []string, jobs int) int {
	log.Debug("replaying %d trace files", len(paths))
	results, err := workload.ReplayFiles(ctx, paths, jobs)
	if err != nil {
		log.Error("%v", err)
		return 2
	}
	code := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("FAIL %s: %v\n", r.Path, r.Err)
			code = 1
			continue
		}
		log.Info("ok %s: %d steps, max len %d, %d rejected", r.Path, r.Report.Steps, r.Report.MaxLen, r.Report.Rejected)
	}
	if code == 0 {
		fmt.Printf("ok: %d traces\n", len(results))
	}
	return code
}

func runCheck(ctx context.Context, log *cli.Logger, opts options) int {
	log.Debug("checking %d traces, size %d, width %d", opts.trials, opts.size, opts.width)
	res := workload.Check(ctx, workload.Options{
		Trials:        opts.trials,
		Seed:          opts.seed,
		Size:          opts.size,
		Width:         opts.width,
		MaxShrinkTime: 5 * time.Second,
	})
	if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
		log.Warn("stopped after %d traces: %v", res.PassedTrials, res.Err)
		return 2
	}
	if !res.Failed {
		fmt.Printf("ok: %d traces (seed %d, %s)\n", res.PassedTrials, res.Seed, res.Duration.Round(time.Millisecond))
		return 0
	}

	fmt.Printf("FAIL after %d traces (seed %d): %v\n", res.PassedTrials, res.Seed, res.Err)
	log.Info("shrunk %d ops to %d in %d rounds", len(res.Failing.Ops), len(res.Shrunk.Ops), res.ShrinkRounds)
	if opts.out == "" {
		fmt.Print(res.Shrunk)
		return 1
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		log.Error("%v", err)
		return 2
	}
	p := filepath.Join(opts.out, fmt.Sprintf("seed-%d.trace", res.Seed))
	if err := workload.SaveFile(p, res.Shrunk); err != nil {
		log.Error("%v", err)
		return 2
	}
	fmt.Printf("wrote %s\n", p)
	return 1
}

// watchFiles replays a trace file each time it changes until ctx is done.
// Bursts of events for the same file within the settle delay collapse into
// one replay.
func watchFiles(ctx context.Context, log *cli.Logger, args []string, jobs int) int {
	const settle = 150 * time.Millisecond

	w, err := watch.New("*.trace")
	if err != nil {
		log.Error("watch: %v", err)
		return 2
	}
	defer w.Close()

	for _, a := range args {
		dir := a
		if st, err := os.Stat(a); err == nil && !st.IsDir() {
			dir = filepath.Dir(a)
		}
		if err := w.Add(dir); err != nil {
			log.Error("watch %s: %v", dir, err)
			return 2
		}
		log.Info("watching %s", dir)
	}

	errs := w.Errors()
	pending := map[string]bool{}
	timer := time.NewTimer(settle)
	timer.Stop()
	code := 0
	for {
		select {
		case <-ctx.Done():
			return code
		case ev, ok := <-w.Events():
			if !ok {
				return code
			}
			if !ev.Changed() {
				continue
			}
			log.Debug("change %s", ev.Path)
			pending[ev.Path] = true
			timer.Reset(settle)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warn("watch: %v", err)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			code = runFiles(ctx, log, paths, jobs)
		}
	}
}
