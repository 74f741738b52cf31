package seeder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/Rana718/certseed/internal/wordsource"
	"github.com/fatih/color"
)

var ErrNoConformingWord = errors.New("no word within length bounds")

type GeneratorOptions struct {
	RetryDelay  time.Duration // pause after a failed fetch
	MaxAttempts int           // 0 retries forever
	Quiet       bool
}

// DataGenerator produces single random field values. Words come from the
// injected source; everything else from its own rand.
type DataGenerator struct {
	rand   *rand.Rand
	source wordsource.Source
	opts   GeneratorOptions
}

func NewDataGenerator(source wordsource.Source, rng *rand.Rand, opts GeneratorOptions) *DataGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DataGenerator{
		rand:   rng,
		source: source,
		opts:   opts,
	}
}

// Word asks the source for candidates until one has between min and max
// characters. Fetch failures are retried after RetryDelay. With MaxAttempts
// at 0 this blocks until ctx is done if the source never yields a fitting word.
func (g *DataGenerator) Word(ctx context.Context, min, max int) (string, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if g.opts.MaxAttempts > 0 && attempt > g.opts.MaxAttempts {
			return "", fmt.Errorf("%w [%d, %d] after %d attempts", ErrNoConformingWord, min, max, g.opts.MaxAttempts)
		}

		word, err := g.source.Word(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			if !g.opts.Quiet {
				color.Yellow("  ⚠️  Word source failed: %v (retrying in %s)", err, g.opts.RetryDelay)
			}
			if err := sleep(ctx, g.opts.RetryDelay); err != nil {
				return "", err
			}
			continue
		}

		if n := utf8.RuneCountInString(word); n >= min && n <= max {
			return word, nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (g *DataGenerator) Float(min, max float64) float64 {
	return min + g.rand.Float64()*(max-min)
}

// IntRange returns a value in [min, max). A degenerate range yields min.
func (g *DataGenerator) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rand.Intn(max-min)
}

// Timestamp interpolates between from and to, truncated to whole seconds so
// the value survives the statement's text format unchanged.
func (g *DataGenerator) Timestamp(from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	span := to.Sub(from)
	ts := from.Add(time.Duration(g.rand.Float64() * float64(span)))
	if truncated := ts.Truncate(time.Second); !truncated.Before(from) {
		return truncated
	}
	return ts
}

// Pick returns a 1-based row id in [1, n], or 0 when n is not positive.
func (g *DataGenerator) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rand.Intn(n) + 1
}
