// Command sudoku-stats solves, rates, and generates puzzles from the
// command line and collects insight-pattern statistics over batches.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"svw.info/sudoku-insight/internal/domain"
	"svw.info/sudoku-insight/internal/generator"
	"svw.info/sudoku-insight/internal/infrastructure/storage"
	"svw.info/sudoku-insight/internal/insight"
	"svw.info/sudoku-insight/internal/ports"
	"svw.info/sudoku-insight/internal/usecase"
)

var log = logrus.New()

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd {
	case "solve":
		err = runSolve(ctx, args)
	case "rate":
		err = runRate(ctx, args)
	case "generate":
		err = runGenerate(ctx, args)
	case "list":
		err = runList(ctx, args)
	case "stats":
		err = runStats(ctx, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.WithError(err).Fatal(cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sudoku-stats solve|rate|generate|list|stats [flags]")
}

// common registers the flags every subcommand shares and returns their
// destinations. Environment variables provide the defaults.
func common(fs *flag.FlagSet) (seed *int64, dataDir, logLevel, prof *string) {
	seed = fs.Int64("seed", envInt64("SUDOKU_SEED", 0), "random seed")
	dataDir = fs.String("data", envString("SUDOKU_DATA", "./data"), "puzzle store directory")
	logLevel = fs.String("log-level", envString("SUDOKU_LOG_LEVEL", "info"), "debug|info|warn|error")
	prof = fs.String("profile", "", "write a cpu or mem profile")
	return
}

func setup(logLevel, prof string) func() {
	if lvl, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", logLevel).Warn("unknown log level")
	}
	switch prof {
	case "cpu":
		return profile.Start(profile.CPUProfile).Stop
	case "mem":
		return profile.Start(profile.MemProfile).Stop
	default:
		return func() {}
	}
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func service(seed int64, dataDir string) *usecase.Service {
	return usecase.NewService(
		&usecase.SolverEngine{Seed: seed},
		&usecase.AnalyzerEngine{},
		&usecase.RaterEngine{Seed: seed, Estimates: estimateLogger{}},
		&usecase.GeneratorEngine{Seed: seed},
		storage.NewFS(dataDir),
	)
}

// estimateLogger surfaces the evaluator's running estimate at debug level.
type estimateLogger struct{}

func (estimateLogger) UpdateEstimate(minutes float64) {
	log.WithField("minutes", fmt.Sprintf("%.2f", minutes)).Debug("estimate")
}

func (estimateLogger) DisproofsRequired() {
	log.Debug("disproofs required")
}

func parseGridArg(fs *flag.FlagSet) (domain.Grid, error) {
	if fs.NArg() != 1 {
		return domain.Grid{}, fmt.Errorf("expected one grid argument, got %d", fs.NArg())
	}
	return domain.ParseGrid(fs.Arg(0))
}

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	seed, dataDir, logLevel, prof := common(fs)
	max := fs.Int("max", 2, "maximum solutions to search for")
	fs.Parse(args)
	defer setup(*logLevel, *prof)()

	g, err := parseGridArg(fs)
	if err != nil {
		return err
	}
	svc := service(*seed, *dataDir)
	res, stats, err := svc.Solve(ctx, g, *max)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"steps": stats.Steps, "dur": stats.Duration}).Info("solved")
	switch {
	case res.NumSolutions == 0:
		fmt.Println("no solutions")
	case res.Solution != nil:
		fmt.Println(res.Solution)
	case res.NumSolutions > *max:
		fmt.Printf("more than %d solutions\n", *max)
	default:
		fmt.Printf("%d solutions\n", res.NumSolutions)
	}
	return nil
}

func runRate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	seed, dataDir, logLevel, prof := common(fs)
	fs.Parse(args)
	defer setup(*logLevel, *prof)()

	g, err := parseGridArg(fs)
	if err != nil {
		return err
	}
	svc := service(*seed, *dataDir)
	r, stats, err := svc.Rate(ctx, g)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"trials": stats.Steps, "dur": stats.Duration}).Info("rated")
	fmt.Println(r)
	return nil
}

func runGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	seed, dataDir, logLevel, prof := common(fs)
	symName := fs.String("symmetry", "classic", "clue symmetry")
	count := fs.Int("count", 1, "puzzles to generate")
	rate := fs.Bool("rate", true, "rate each puzzle")
	save := fs.Bool("save", false, "save puzzles to the store")
	fs.Parse(args)
	defer setup(*logLevel, *prof)()

	sym, err := generator.SymmetryByName(*symName)
	if err != nil {
		return err
	}
	for i := 0; i < *count; i++ {
		svc := service(*seed+int64(i), *dataDir)
		g, stats, err := svc.Generate(ctx, sym)
		if err != nil {
			return err
		}
		entry := log.WithFields(logrus.Fields{"clues": g.Size(), "dur": stats.Duration})
		p := &ports.Puzzle{Grid: g, Symmetry: sym.Name()}
		if *rate {
			r, _, err := svc.Rate(ctx, g)
			if err != nil {
				return err
			}
			p.Rating = &r
			entry = entry.WithFields(logrus.Fields{"score": fmt.Sprintf("%.1f", r.Score), "difficulty": r.Difficulty})
		}
		if *save {
			if err := svc.Save(ctx, p); err != nil {
				return err
			}
			entry = entry.WithField("id", p.ID)
		}
		entry.Info("generated")
		fmt.Println(g.Flat())
		if p.Rating != nil {
			fmt.Println(p.Rating)
		}
	}
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_, dataDir, logLevel, prof := common(fs)
	fs.Parse(args)
	defer setup(*logLevel, *prof)()

	svc := service(0, *dataDir)
	metas, err := svc.List(ctx)
	if err != nil {
		return err
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Created.Before(metas[j].Created) })
	for _, m := range metas {
		if m.Rated {
			fmt.Printf("%s\t%s\t%.1f\t%s\n", m.ID, m.Difficulty, m.Score, m.Created.Format("2006-01-02"))
		} else {
			fmt.Printf("%s\tunrated\t\t%s\n", m.ID, m.Created.Format("2006-01-02"))
		}
	}
	return nil
}

// runStats generates a batch of puzzles and tallies the insight patterns
// visible in each starting grid.
func runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	seed, dataDir, logLevel, prof := common(fs)
	symName := fs.String("symmetry", "none", "clue symmetry")
	count := fs.Int("count", 10, "puzzles to sample")
	fs.Parse(args)
	defer setup(*logLevel, *prof)()

	sym, err := generator.SymmetryByName(*symName)
	if err != nil {
		return err
	}
	tally := map[string]int{}
	for i := 0; i < *count; i++ {
		svc := service(*seed+int64(i), *dataDir)
		g, _, err := svc.Generate(ctx, sym)
		if err != nil {
			return err
		}
		_, err = svc.Analyze(ctx, g, func(ins insight.Insight) bool {
			for _, p := range insight.Patterns(&g, ins) {
				tally[p.String()]++
			}
			return true
		})
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"puzzle": i + 1, "patterns": len(tally)}).Debug("sampled")
	}

	keys := make([]string, 0, len(tally))
	for k := range tally {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if tally[keys[i]] != tally[keys[j]] {
			return tally[keys[i]] > tally[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Printf("%6d  %s\n", tally[k], k)
	}
	return nil
}
