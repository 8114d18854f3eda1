package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/ramonehamilton/amulet-titan-search/internal/config"
	"github.com/ramonehamilton/amulet-titan-search/internal/deckfile"
	"github.com/ramonehamilton/amulet-titan-search/internal/mana"
	"github.com/ramonehamilton/amulet-titan-search/internal/meter"
	"github.com/ramonehamilton/amulet-titan-search/internal/oracle"
	"github.com/ramonehamilton/amulet-titan-search/internal/report"
	"github.com/ramonehamilton/amulet-titan-search/internal/search"
	"github.com/ramonehamilton/amulet-titan-search/internal/storage"
	"github.com/ramonehamilton/amulet-titan-search/internal/transitions"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrateCommand()
		return
	}
	if len(os.Args) > 1 && os.Args[1] == "report" {
		runReportCommand()
		return
	}
	if len(os.Args) > 1 && os.Args[1] == "run" {
		runRunCommand()
		return
	}
	printUsage()
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: amulet-search <run|report|migrate> [flags]")
}

func newLogger(jsonLogs, addSource bool, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl, AddSource: addSource}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// runRunCommand implements `amulet-search run -deck <path> -trials N
// -max-turns T [-json-logs]`: runs N independent trials of simulate
// against a deck file, persisting each trial's Result record and printing
// one status line per trial ("turn 2: success (on the play)").
func runRunCommand() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	deckPath := fs.String("deck", "", "path to a deck file")
	trials := fs.Int("trials", 1, "number of independent trials to run")
	maxTurns := fs.Int("max-turns", 0, "turn budget per trial (0 uses the configured default)")
	jsonLogs := fs.Bool("json-logs", false, "emit structured JSON logs instead of text")
	dbPath := fs.String("db", "", "sqlite database path for trial results (default: config db_path)")
	fs.Parse(os.Args[2:])

	if *deckPath == "" {
		fmt.Fprintln(os.Stderr, "run: -deck is required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "run: invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(*jsonLogs || cfg.Log.JSON, cfg.Log.AddSource, cfg.Log.Level)
	turns := *maxTurns
	if turns == 0 {
		turns = cfg.Search.DefaultMaxTurns
	}

	var o *oracle.Oracle
	if cfg.Data.CardDataPath != "" {
		o, err = oracle.Load(cfg.Data.CardDataPath, logger)
	} else {
		o, err = oracle.Default()
	}
	if err != nil {
		logger.Error("load card oracle", "error", err)
		os.Exit(1)
	}
	deck, err := deckfile.Load(*deckPath, rand.New(rand.NewSource(1)), logger)
	if err != nil {
		logger.Error("load deck file", "error", err)
		os.Exit(1)
	}

	colors := cfg.Search.TrackedColors
	if deckColors, ok := deck.Options["colors"]; ok {
		colors = deckColors
	}
	tracked := make([]mana.Color, 0, len(colors))
	for _, r := range strings.ToUpper(colors) {
		tracked = append(tracked, mana.Color(r))
	}
	mana.SetTrackedColors(tracked)

	wall, err := cfg.MaxWallDuration()
	if err != nil {
		logger.Error("parse max_wall", "error", err)
		os.Exit(1)
	}
	budget := meter.Budget{MaxStates: cfg.Search.MaxStates, MaxWall: wall}
	engine := transitions.New(o, logger)

	path := *dbPath
	if path == "" {
		path = cfg.Data.DBPath
	}
	if path == "" {
		path, err = config.DefaultDBPath()
		if err != nil {
			logger.Error("resolve default db path", "error", err)
			os.Exit(1)
		}
	}
	storeConfig := storage.DefaultConfig(path)
	storeConfig.AutoMigrate = true
	db, err := storage.Open(storeConfig)
	if err != nil {
		logger.Error("open results database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := storage.NewResultsRepo(db)
	ctx := context.Background()

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < *trials; i++ {
		trial := search.Simulate(engine, deck.Cards, turns, budget, rnd, logger)
		record := toStorageTrial(deck.Name, trial)
		if _, err := repo.Save(ctx, record); err != nil {
			logger.Error("save trial", "error", err)
			continue
		}
		fmt.Println(report.Summarize([]storage.Trial{record}))
	}
}

func toStorageTrial(deckName string, t search.Trial) storage.Trial {
	turns := make([]storage.TurnOutcome, len(t.Turns))
	for i, o := range t.Turns {
		turns[i] = storage.TurnOutcome{Turn: o.Turn, Status: storage.TurnStatus(o.Status.String())}
	}
	return storage.Trial{
		DeckName:     deckName,
		OnThePlay:    t.OnThePlay,
		MaxTurns:     t.MaxTurns,
		GoalTurn:     t.GoalTurn,
		OverflowTurn: t.OverflowTurn,
		Trace:        t.Trace,
		Turns:        turns,
	}
}

// runReportCommand implements `amulet-search report -deck <name>
// [-chart <path>]`: loads every stored trial for a deck and prints a
// summary, optionally rendering a turn-histogram chart.
func runReportCommand() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	deckName := fs.String("deck", "", "deck name to report on")
	chartPath := fs.String("chart", "", "optional output path for a turn-histogram HTML chart")
	maxTurns := fs.Int("max-turns", 10, "turn axis length for the histogram")
	fs.Parse(os.Args[2:])

	if *deckName == "" {
		fmt.Fprintln(os.Stderr, "report: -deck is required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: load config: %v\n", err)
		os.Exit(1)
	}
	path := cfg.Data.DBPath
	if path == "" {
		path, err = config.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "report: resolve default db path: %v\n", err)
			os.Exit(1)
		}
	}
	db, err := storage.Open(storage.DefaultConfig(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: open results database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := storage.NewResultsRepo(db)
	trials, err := repo.ByDeck(context.Background(), *deckName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "report: query trials: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.Summarize(trials))
	if *chartPath != "" {
		if err := report.RenderTurnHistogram(trials, *maxTurns, *chartPath); err != nil {
			fmt.Fprintf(os.Stderr, "report: render histogram: %v\n", err)
			os.Exit(1)
		}
	}
}

// runMigrateCommand implements `amulet-search migrate <up|down|version>`.
func runMigrateCommand() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: amulet-search migrate <up|down|version>")
		os.Exit(1)
	}

	path, err := config.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: resolve default db path: %v\n", err)
		os.Exit(1)
	}
	mgr, err := storage.NewMigrationManager(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: create migration manager: %v\n", err)
		os.Exit(1)
	}
	defer mgr.Close()

	switch os.Args[2] {
	case "up":
		if err := mgr.Up(); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: up: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migrations applied")
	case "down":
		if err := mgr.Down(); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: down: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("last migration rolled back")
	case "version":
		version, dirty, err := mgr.Version()
		if err != nil {
			fmt.Fprintf(os.Stderr, "migrate: version: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
	default:
		fmt.Fprintln(os.Stderr, "usage: amulet-search migrate <up|down|version>")
		os.Exit(1)
	}
}
