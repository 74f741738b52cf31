package seeder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/certseed/internal/config"
	"github.com/Rana718/certseed/internal/types"
)

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// Column is one column/value pair of a generated row. Order is preserved in
// the statement.
type Column struct {
	Name  string
	Value interface{}
}

// Insert renders a single-row INSERT with every value inlined as a quoted
// literal. The result is a pure function of its inputs.
func Insert(dialect types.Dialect, table string, columns []Column) (string, error) {
	if !isValidIdentifier(table) {
		return "", fmt.Errorf("invalid table name: %s", table)
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("no columns for table %s", table)
	}

	names := make([]string, 0, len(columns))
	values := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		if !isValidIdentifier(col.Name) {
			return "", fmt.Errorf("invalid column name in table %s: %s", table, col.Name)
		}
		names = append(names, col.Name)
		values = append(values, col.Value)
	}

	query, args, err := squirrel.Insert(table).
		Columns(names...).
		Values(values...).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	return inlineArgs(dialect, query, args) + ";", nil
}

// inlineArgs replaces each '?' placeholder with its literal. Identifiers are
// validated, so every '?' in query is a placeholder.
func inlineArgs(dialect types.Dialect, query string, args []interface{}) string {
	var b strings.Builder
	b.Grow(len(query) + 16*len(args))

	next := 0
	for _, r := range query {
		if r == '?' && next < len(args) {
			b.WriteString(formatValue(dialect, args[next]))
			next++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatValue formats a value for SQL insertion. Values are always quoted.
func formatValue(dialect types.Dialect, val interface{}) string {
	var text string
	switch v := val.(type) {
	case nil:
		return "NULL"
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', 2, 64)
	case float32:
		text = strconv.FormatFloat(float64(v), 'f', 2, 32)
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	case time.Time:
		text = v.Format(config.DateLayout)
	default:
		text = fmt.Sprintf("%v", v)
	}

	escaped := strings.ReplaceAll(text, "'", "''")
	if dialect == types.MySQL {
		escaped = strings.ReplaceAll(escaped, "\\", "\\\\")
	}
	return "'" + escaped + "'"
}

// StatementSet is an insertion-ordered set of statements.
type StatementSet struct {
	index map[string]struct{}
	lines []string
}

func NewStatementSet() *StatementSet {
	return &StatementSet{index: make(map[string]struct{})}
}

// Add appends stmt unless an identical statement is already present and
// reports whether it was added.
func (s *StatementSet) Add(stmt string) bool {
	if _, exists := s.index[stmt]; exists {
		return false
	}
	s.index[stmt] = struct{}{}
	s.lines = append(s.lines, stmt)
	return true
}

func (s *StatementSet) Contains(stmt string) bool {
	_, exists := s.index[stmt]
	return exists
}

func (s *StatementSet) Len() int {
	return len(s.lines)
}

// Lines returns a copy of the statements in first-insertion order.
func (s *StatementSet) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
