package seeder

import "github.com/Rana718/certseed/internal/config"

// TableSummary reports one table of a run. Generated counts only statements
// that survived deduplication; it bounds every id that references the table.
type TableSummary struct {
	Name      string
	Requested int
	Generated int
}

type Result struct {
	Statements []string
	Tables     []TableSummary
}

// Generated returns the deduplicated row count for table, 0 if it was not seeded.
func (r *Result) Generated(table string) int {
	for _, t := range r.Tables {
		if t.Name == table {
			return t.Generated
		}
	}
	return 0
}

// SeedConfig holds the per-run row targets.
type SeedConfig struct {
	Certificates int
	Tags         int
	Users        int
	Orders       int
	Quiet        bool // suppress progress output
}

func SeedConfigFrom(counts config.Counts, quiet bool) SeedConfig {
	return SeedConfig{
		Certificates: counts.Certificates,
		Tags:         counts.Tags,
		Users:        counts.Users,
		Orders:       counts.Orders,
		Quiet:        quiet,
	}
}
