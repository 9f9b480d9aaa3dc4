package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/logrusorgru/aurora"

	"github.com/pandaypr/ReinforcementLearning/gridworld"
	"github.com/pandaypr/ReinforcementLearning/internal/archive"
	"github.com/pandaypr/ReinforcementLearning/internal/config"
	"github.com/pandaypr/ReinforcementLearning/internal/plot"
	"github.com/pandaypr/ReinforcementLearning/mdp"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "solve":
		return runSolve(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config path (default $"+config.EnvConfigPath+" or built-in board)")
	storeKind := fs.String("store", "memory", "archive backend: memory|sqlite")
	dbPath := fs.String("db-path", "policyiteration.db", "sqlite database path")
	chartPath := fs.String("chart", "", "write an HTML convergence report to this path")
	serveAddr := fs.String("serve", "", "serve the report directory on this address after solving")
	start := fs.Int("start", 0, "start state of the sample episode")
	seed := fs.Int64("seed", 1, "seed for the sample episode")
	color := fs.Bool("color", true, "colour the grid output")
	quiet := fs.Bool("quiet", false, "suppress solver progress logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	grid := cfg.GridWorld()
	env, err := grid.MDP()
	if err != nil {
		return err
	}

	opts := cfg.Options()
	opts.Logger = newLogger(*quiet)
	sol, solveErr := mdp.Solve(ctx, env, opts)
	if sol == nil {
		return solveErr
	}

	au := aurora.NewAurora(*color)
	if err := render(grid, au, sol.Values, sol.Policy); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "iterations=%d sweeps=%d\n", sol.Iterations, sol.Sweeps())

	if solveErr == nil {
		rng := rand.New(rand.NewSource(*seed))
		episode, err := mdp.GenerateEpisode(env, sol.Policy, mdp.State(*start), rng, 4*grid.Size())
		if err != nil {
			return err
		}
		if err := grid.RenderEpisode(stdout, au, episode); err != nil {
			return err
		}
	}

	store, err := archive.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = archive.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}
	record := archive.NewRun(cfg, sol, solveErr)
	if err := store.SaveRun(ctx, record); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "archived run %s store=%s\n", record.ID, *storeKind)

	if *chartPath != "" {
		if err := plot.WriteFile(*chartPath, grid, sol); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", *chartPath)
		if *serveAddr != "" && solveErr == nil {
			return plot.Serve(filepath.Dir(*chartPath), *serveAddr)
		}
	}
	return solveErr
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db-path", "policyiteration.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openArchive(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = archive.CloseIfSupported(store)
	}()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(stdout, "%s\t%s\t%dx%d\titerations=%d\tconverged=%t\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Config.Rows, r.Config.Cols, r.Iterations, r.Converged)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db-path", "policyiteration.db", "sqlite database path")
	id := fs.String("id", "", "run id")
	color := fs.Bool("color", true, "colour the grid output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("show requires --id")
	}

	store, err := openArchive(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = archive.CloseIfSupported(store)
	}()

	r, ok, err := store.GetRun(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run not found: %s", *id)
	}
	if r.Error != "" {
		fmt.Fprintf(stdout, "run stopped early: %s\n", r.Error)
	}
	return render(r.Config.GridWorld(), aurora.NewAurora(*color), r.Values, r.Policy)
}

func openArchive(ctx context.Context, dbPath string) (archive.Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	store, err := archive.NewStore("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func render(grid gridworld.GridWorld, au aurora.Aurora, V mdp.ValueFunction, policy mdp.Policy) error {
	if err := grid.RenderValues(stdout, au, V); err != nil {
		return err
	}
	fmt.Fprint(stdout, "\n----------------------------------------------\n\n")
	return grid.RenderPolicy(stdout, au, policy)
}

func newLogger(quiet bool) *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "policyiteration: ", log.LstdFlags)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: policyiteration <solve|runs|show> [flags]", msg)
}
