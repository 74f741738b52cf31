package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/certseed/internal/config"
	"github.com/Rana718/certseed/internal/types"
	"github.com/fatih/color"
)

type stageFunc func(ctx context.Context) (requested, generated int, err error)

// Seeder builds the statement set for one run. Tables are generated in
// foreign-key order and every id it emits is bounded by the number of rows
// actually kept for the referenced table.
type Seeder struct {
	config     *config.Config
	generator  *DataGenerator
	graph      *DependencyGraph
	dialect    types.Dialect
	minDate    time.Time
	maxDate    time.Time
	statements *StatementSet
	generated  map[string]int
	seedConfig SeedConfig
}

func NewSeeder(cfg *config.Config, generator *DataGenerator) (*Seeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	minDate, maxDate, err := cfg.DateRange()
	if err != nil {
		return nil, err
	}

	graph := NewDependencyGraph()
	for _, table := range types.GiftCertificateSchema(cfg.User.Table) {
		graph.AddTable(table)
	}
	if _, err := graph.BuildInsertionOrder(); err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}

	return &Seeder{
		config:    cfg,
		generator: generator,
		graph:     graph,
		dialect:   cfg.Dialect(),
		minDate:   minDate,
		maxDate:   maxDate,
	}, nil
}

func (s *Seeder) Seed(ctx context.Context, seedConfig SeedConfig) (*Result, error) {
	if seedConfig.Certificates < 0 || seedConfig.Tags < 0 || seedConfig.Users < 0 || seedConfig.Orders < 0 {
		return nil, fmt.Errorf("row counts cannot be negative: %+v", seedConfig)
	}

	s.seedConfig = seedConfig
	s.statements = NewStatementSet()
	s.generated = make(map[string]int)

	order := s.graph.GetOrder()
	stages := s.stages()

	s.info("🌱 Starting data generation...")
	s.info("📋 Generation order: %s", strings.Join(order, " → "))

	result := &Result{}
	for _, tableName := range order {
		run, exists := stages[tableName]
		if !exists {
			return nil, fmt.Errorf("no generator registered for table %s", tableName)
		}

		s.info("  📝 Generating %s...", tableName)
		requested, generated, err := run(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", tableName, err)
		}

		s.generated[tableName] = generated
		result.Tables = append(result.Tables, TableSummary{
			Name:      tableName,
			Requested: requested,
			Generated: generated,
		})
		s.success("  ✅ %s: %d of %d rows generated", tableName, generated, requested)
	}

	result.Statements = s.statements.Lines()
	s.success("✅ Generated %d statements", len(result.Statements))
	return result, nil
}

func (s *Seeder) stages() map[string]stageFunc {
	return map[string]stageFunc{
		types.TableCertificate:      s.seedCertificates,
		types.TableTag:              s.seedTags,
		s.config.User.Table:         s.seedUsers,
		types.TableOrder:            s.seedOrders,
		types.TableCertificateTag:   s.linkTagsToCertificates,
		types.TableCertificateOrder: s.linkCertificatesToOrders,
	}
}

func (s *Seeder) seedCertificates(ctx context.Context) (int, int, error) {
	b := s.config.Bounds
	total := s.seedConfig.Certificates
	generated := 0

	for i := 0; i < total; i++ {
		name, err := s.generator.Word(ctx, b.MinNameLength, b.MaxNameLength)
		if err != nil {
			return total, generated, fmt.Errorf("certificate name: %w", err)
		}
		description, err := s.generator.Word(ctx, b.MinDescriptionLength, b.MaxDescriptionLength)
		if err != nil {
			return total, generated, fmt.Errorf("certificate description: %w", err)
		}
		createDate := s.generator.Timestamp(s.minDate, s.maxDate)

		added, err := s.insert(types.TableCertificate, []Column{
			{"name", name},
			{"description", description},
			{"price", s.generator.Float(b.MinPrice, b.MaxPrice)},
			{"duration", s.generator.IntRange(b.MinDuration, b.MaxDuration)},
			{"create_date", createDate},
			{"last_update_date", createDate},
		})
		if err != nil {
			return total, generated, err
		}
		if added {
			generated++
			s.progress("Certificates generated: %d", generated)
		}
	}
	return total, generated, nil
}

func (s *Seeder) seedTags(ctx context.Context) (int, int, error) {
	b := s.config.Bounds
	total := s.seedConfig.Tags
	generated := 0

	for i := 0; i < total; i++ {
		name, err := s.generator.Word(ctx, b.MinNameLength, b.MaxNameLength)
		if err != nil {
			return total, generated, fmt.Errorf("tag name: %w", err)
		}

		added, err := s.insert(types.TableTag, []Column{{"name", name}})
		if err != nil {
			return total, generated, err
		}
		if added {
			generated++
			s.progress("Tags generated: %d", generated)
		}
	}
	return total, generated, nil
}

func (s *Seeder) seedUsers(ctx context.Context) (int, int, error) {
	b := s.config.Bounds
	total := s.seedConfig.Users
	generated := 0

	for i := 0; i < total; i++ {
		username, err := s.generator.Word(ctx, b.MinUsernameLength, b.MaxUsernameLength)
		if err != nil {
			return total, generated, fmt.Errorf("username: %w", err)
		}

		added, err := s.insert(s.config.User.Table, []Column{
			{"username", username},
			{"password", s.config.User.PasswordHash},
			{"role", s.config.User.Role},
		})
		if err != nil {
			return total, generated, err
		}
		if added {
			generated++
			s.progress("Users generated: %d", generated)
		}
	}
	return total, generated, nil
}

func (s *Seeder) seedOrders(ctx context.Context) (int, int, error) {
	b := s.config.Bounds
	total := s.seedConfig.Orders
	users := s.generated[s.config.User.Table]
	generated := 0

	if total > 0 && users == 0 {
		s.warn("  ⚠️  No users were generated, skipping %d orders", total)
		return total, 0, nil
	}

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return total, generated, err
		}

		added, err := s.insert(types.TableOrder, []Column{
			{"cost", s.generator.Float(b.MinPrice, b.MaxPrice)},
			{"purchase_date", s.generator.Timestamp(s.minDate, s.maxDate)},
			{"id_user", s.generator.Pick(users)},
		})
		if err != nil {
			return total, generated, err
		}
		if added {
			generated++
		}
	}
	return total, generated, nil
}

func (s *Seeder) linkTagsToCertificates(ctx context.Context) (int, int, error) {
	l := s.config.Links
	return s.link(ctx, linkSpec{
		table:     types.TableCertificateTag,
		parents:   s.generated[types.TableCertificate],
		children:  s.generated[types.TableTag],
		min:       l.MinTagsPerCertificate,
		max:       l.MaxTagsPerCertificate,
		parentCol: "id_certificate",
		childCol:  "id_tag",
	})
}

func (s *Seeder) linkCertificatesToOrders(ctx context.Context) (int, int, error) {
	l := s.config.Links
	return s.link(ctx, linkSpec{
		table:     types.TableCertificateOrder,
		parents:   s.generated[types.TableOrder],
		children:  s.generated[types.TableCertificate],
		min:       l.MinCertificatesPerOrder,
		max:       l.MaxCertificatesPerOrder,
		parentCol: "id_order",
		childCol:  "id_certificate",
	})
}

type linkSpec struct {
	table     string
	parents   int // rows kept for the owning side
	children  int // rows kept for the referenced side
	min, max  int // per-parent link count range, [min, max)
	parentCol string
	childCol  string
}

// link draws, for every parent id, a link count and that many child ids.
// Duplicate pairs collapse in the statement set and are not counted.
func (s *Seeder) link(ctx context.Context, l linkSpec) (int, int, error) {
	if l.parents > 0 && l.children == 0 {
		s.warn("  ⚠️  Nothing to link in %s: referenced table is empty", l.table)
		return 0, 0, nil
	}

	attempted, generated := 0, 0
	for parentID := 1; parentID <= l.parents; parentID++ {
		if err := ctx.Err(); err != nil {
			return attempted, generated, err
		}

		count := s.linkCount(l.min, l.max, l.children)
		for j := 0; j < count; j++ {
			childID := s.generator.Pick(l.children)
			attempted++
			added, err := s.insert(l.table, []Column{
				{l.parentCol, parentID},
				{l.childCol, childID},
			})
			if err != nil {
				return attempted, generated, err
			}
			if added {
				generated++
			}
		}
	}
	return attempted, generated, nil
}

// linkCount draws from [min, min(max, available)). When that range is empty
// the count falls back to min, capped at available.
func (s *Seeder) linkCount(min, max, available int) int {
	if available <= 0 {
		return 0
	}
	upper := max
	if available < upper {
		upper = available
	}
	if upper <= min {
		if min < available {
			return min
		}
		return available
	}
	return s.generator.IntRange(min, upper)
}

func (s *Seeder) insert(table string, columns []Column) (bool, error) {
	stmt, err := Insert(s.dialect, table, columns)
	if err != nil {
		return false, err
	}
	return s.statements.Add(stmt), nil
}

func (s *Seeder) info(format string, args ...interface{}) {
	if !s.seedConfig.Quiet {
		color.Cyan(format, args...)
	}
}

func (s *Seeder) success(format string, args ...interface{}) {
	if !s.seedConfig.Quiet {
		color.Green(format, args...)
	}
}

func (s *Seeder) warn(format string, args ...interface{}) {
	if !s.seedConfig.Quiet {
		color.Yellow(format, args...)
	}
}

func (s *Seeder) progress(format string, args ...interface{}) {
	if !s.seedConfig.Quiet {
		color.White("    "+format, args...)
	}
}
