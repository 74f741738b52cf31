package seeder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/certseed/internal/config"
	"github.com/Rana718/certseed/internal/wordsource"
	"github.com/stretchr/testify/require"
)

// counterSource yields a fresh ten-letter word on every call.
type counterSource struct {
	n int
}

func (s *counterSource) Word(ctx context.Context) (string, error) {
	s.n++
	return fmt.Sprintf("word%06d", s.n), nil
}

// cycleSource replays a fixed list of words forever.
type cycleSource struct {
	words []string
	n     int
}

func (s *cycleSource) Word(ctx context.Context) (string, error) {
	w := s.words[s.n%len(s.words)]
	s.n++
	return w, nil
}

// scriptSource replays results in order, then keeps returning the last one.
type scriptSource struct {
	results []scriptResult
	calls   int
}

type scriptResult struct {
	word string
	err  error
}

func (s *scriptSource) Word(ctx context.Context) (string, error) {
	r := s.results[len(s.results)-1]
	if s.calls < len(s.results) {
		r = s.results[s.calls]
	}
	s.calls++
	return r.word, r.err
}

var errUnavailable = errors.New("word API unavailable")

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Words.RetryDelay = 0
	return cfg
}

func newTestSeeder(t *testing.T, cfg *config.Config, source wordsource.Source, seed int64) *Seeder {
	t.Helper()
	generator := NewDataGenerator(source, rand.New(rand.NewSource(seed)), GeneratorOptions{Quiet: true})
	s, err := NewSeeder(cfg, generator)
	require.NoError(t, err)
	return s
}

var insertPattern = regexp.MustCompile(`^INSERT INTO (\w+) \(([^)]*)\) VALUES \((.*)\);$`)

type parsedRow struct {
	table  string
	values map[string]string
}

func parseStatement(t *testing.T, stmt string) parsedRow {
	t.Helper()
	m := insertPattern.FindStringSubmatch(stmt)
	require.NotNil(t, m, "not an insert statement: %s", stmt)

	var columns []string
	for _, col := range strings.Split(m[2], ",") {
		columns = append(columns, strings.TrimSpace(col))
	}

	literals := parseLiterals(t, m[3])
	require.Len(t, literals, len(columns), stmt)

	row := parsedRow{table: m[1], values: make(map[string]string, len(columns))}
	for i, col := range columns {
		row.values[col] = literals[i]
	}
	return row
}

// parseLiterals splits a comma separated list of single-quoted literals.
func parseLiterals(t *testing.T, s string) []string {
	t.Helper()
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ',' || s[i] == ' ') {
			i++
		}
		if i >= len(s) {
			break
		}
		require.Equal(t, byte('\''), s[i], "expected quoted literal in %q", s)
		i++

		var b strings.Builder
		for {
			require.Less(t, i, len(s), "unterminated literal in %q", s)
			if s[i] == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					b.WriteByte('\'')
					i += 2
					continue
				}
				i++
				break
			}
			b.WriteByte(s[i])
			i++
		}
		out = append(out, b.String())
	}
	return out
}

func rowsByTable(t *testing.T, statements []string) map[string][]parsedRow {
	t.Helper()
	rows := make(map[string][]parsedRow)
	for _, stmt := range statements {
		row := parseStatement(t, stmt)
		rows[row.table] = append(rows[row.table], row)
	}
	return rows
}

func parseDate(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(config.DateLayout, value, time.UTC)
	require.NoError(t, err)
	return ts
}
