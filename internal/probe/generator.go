package probe

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/adapters/dataset"
	"github.com/okian/podium/internal/domain/medal"
	"github.com/okian/podium/pkg/logger"
)

// ErrInvalidGenerate is returned for unusable generation settings.
var ErrInvalidGenerate = errors.New("invalid generate config")

// Share of athlete rows that win a medal, in percent.
const medalRate = 15

var (
	sportNames = []string{
		"Athletics", "Swimming", "Gymnastics", "Rowing", "Fencing", "Judo",
		"Wrestling", "Cycling", "Boxing", "Sailing", "Shooting", "Hockey",
		"Football", "Basketball", "Volleyball", "Weightlifting", "Canoeing",
		"Archery", "Tennis", "Diving", "Curling", "Softball",
	}
	teamNames = []string{
		"United States", "Soviet Union", "Germany", "Great Britain", "France",
		"Italy", "Sweden", "China", "Australia", "Hungary", "Japan", "Russia",
		"Canada", "Netherlands", "Romania", "Norway", "South Korea", "Cuba",
		"Finland", "Poland",
	}
	medalNames = []string{"Gold", "Silver", "Bronze"}
)

// olympicYears lists the Summer Games years, skipping the cancelled ones.
func olympicYears() []int {
	var years []int
	for y := 1896; y <= 2016; y += 4 {
		if y == 1916 || y == 1940 || y == 1944 {
			continue
		}
		years = append(years, y)
	}
	return years
}

func (c *GenerateConfig) validate() error {
	switch {
	case c.Rows < 1:
		return fmt.Errorf("%w: rows must be positive", ErrInvalidGenerate)
	case c.Sports < 1:
		return fmt.Errorf("%w: sports must be positive", ErrInvalidGenerate)
	case c.Format != FormatCSV && c.Format != FormatSQLite:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidGenerate, c.Format)
	case c.Path == "":
		return fmt.Errorf("%w: missing output path", ErrInvalidGenerate)
	}
	return nil
}

// GenerateRecords creates cfg.Rows athlete rows. Rows are split into
// contiguous chunks, one per worker, each with its own seeded source, so
// the result depends only on the seed and worker count.
func GenerateRecords(ctx context.Context, cfg GenerateConfig) ([]medal.Record, error) {
	sports := sportNames[:min(cfg.Sports, len(sportNames))]
	years := olympicYears()
	workers := max(1, min(cfg.Workers, cfg.Rows))
	perWorker := cfg.Rows / workers

	rows := make([]medal.Record, cfg.Rows)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workers-1 {
			end = cfg.Rows // Last worker gets remaining rows
		}
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(w)))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				rows[i] = generateRow(rng, sports, years)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate rows: %w", err)
	}
	return rows, nil
}

// generateRow draws one athlete row. Teams early in the list win more often.
func generateRow(rng *rand.Rand, sports []string, years []int) medal.Record {
	team := teamNames[min(rng.IntN(len(teamNames)), rng.IntN(len(teamNames)))]
	sex := "M"
	if rng.IntN(3) == 0 {
		sex = "F"
	}
	rec := medal.Record{
		Year:  years[rng.IntN(len(years))],
		Sport: sports[rng.IntN(len(sports))],
		Team:  team,
		Sex:   sex,
	}
	if rng.IntN(100) < medalRate {
		rec.Medal = medalNames[rng.IntN(len(medalNames))]
	}
	return rec
}

// Generate writes a synthetic dataset to cfg.Path and returns the number of
// rows that carry a medal.
func Generate(ctx context.Context, cfg GenerateConfig) (int, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	log := logger.Get()
	log.Info(ctx, "generating dataset",
		logger.Int("rows", cfg.Rows),
		logger.Int("sports", cfg.Sports),
		logger.String("format", cfg.Format),
		logger.String("path", cfg.Path),
	)

	rows, err := GenerateRecords(ctx, cfg)
	if err != nil {
		return 0, err
	}

	switch cfg.Format {
	case FormatSQLite:
		err = dataset.WriteSQLite(ctx, cfg.Path, cfg.Table, rows)
	default:
		err = writeCSVFile(cfg.Path, rows)
	}
	if err != nil {
		return 0, err
	}

	medals := medal.NewDataset(rows).Len()
	log.Info(ctx, "dataset written", logger.Int("medals", medals))
	return medals, nil
}

func writeCSVFile(path string, rows []medal.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := dataset.WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
