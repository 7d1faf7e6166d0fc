// Command netgen synthesizes an age-structured contact network for one
// location: households, long-term-care facilities with residents and staff,
// optional school/workplace layers, and the per-person contact graph.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/talgya/synthnet/internal/demos"
	"github.com/talgya/synthnet/internal/engine"
	"github.com/talgya/synthnet/internal/household"
	"github.com/talgya/synthnet/internal/ltcf"
	"github.com/talgya/synthnet/internal/roster"
)

func main() {
	var (
		seed         = flag.Int64("seed", 42, "seed for the shared random stream")
		popSize      = flag.Int("n", 20000, "synthetic population size")
		locationPath = flag.String("location", "", "location data YAML (required)")
		calibPath    = flag.String("calibration", "", "calibration override YAML (optional)")
		outDir       = flag.String("out", "data", "directory for roster files")
		dbPath       = flag.String("db", "", "SQLite output path (optional)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *locationPath == "" {
		fmt.Fprintln(os.Stderr, "netgen: -location is required")
		flag.Usage()
		os.Exit(2)
	}

	location, err := demos.LoadLocationData(*locationPath)
	if err != nil {
		slog.Error("failed to load location data", "error", err)
		os.Exit(1)
	}

	calibration := ltcf.DefaultCalibration()
	if *calibPath != "" {
		if err := cleanenv.ReadConfig(*calibPath, &calibration); err != nil {
			slog.Error("failed to load calibration overrides", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("generating population",
		"location", location.Name,
		"size", humanize.Comma(int64(*popSize)),
		"seed", *seed,
	)

	pipeline := &engine.Pipeline{
		Location:    location,
		Calibration: calibration,
		Tuning:      household.DefaultTuning(),
		RNG:         rand.New(rand.NewSource(*seed)),
	}

	result, err := pipeline.Generate(*popSize)
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("population generated",
		"people", humanize.Comma(int64(len(result.Population))),
		"households", humanize.Comma(int64(len(result.HomesByUID)-len(result.Facilities))),
		"facilities", len(result.Facilities),
		"residents", ltcf.ResidentCount(result.Facilities),
	)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := writeRosters(*outDir, location.Name, result); err != nil {
		slog.Error("failed to write rosters", "error", err)
		os.Exit(1)
	}
	slog.Info("rosters written", "dir", *outDir)

	if *dbPath != "" {
		if err := saveStore(*dbPath, result); err != nil {
			slog.Error("failed to save population store", "error", err)
			os.Exit(1)
		}
		slog.Info("population stored", "path", *dbPath)
	}
}

func writeRosters(dir, location string, result *engine.Result) error {
	n := len(result.AgeByUID)
	if err := roster.WriteAgeByUID(dir, location, result.AgeByUID); err != nil {
		return err
	}
	groupSets := []struct {
		name   string
		groups [][]string
	}{
		{"households", result.HomesByUID},
		{"facilities", result.FacilitiesByUID},
		{"facilities_staff", result.StaffByUID()},
		{"schools", result.SchoolsByUID},
		{"workplaces", result.WorkplacesByUID},
	}
	for _, gs := range groupSets {
		if err := roster.WriteGroups(dir, location, n, gs.name, gs.groups, result.AgeByUID); err != nil {
			return err
		}
	}
	return nil
}

func saveStore(path string, result *engine.Result) error {
	store, err := roster.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SavePopulation(result.Population); err != nil {
		return err
	}
	groupSets := []struct {
		name   string
		groups [][]string
	}{
		{"households", result.HomesByUID},
		{"facilities", result.FacilitiesByUID},
		{"facilities_staff", result.StaffByUID()},
		{"schools", result.SchoolsByUID},
		{"workplaces", result.WorkplacesByUID},
	}
	for _, gs := range groupSets {
		if err := store.SaveGroups(gs.name, gs.groups); err != nil {
			return err
		}
	}
	return nil
}
