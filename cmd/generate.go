package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rana718/certseed/internal/config"
	"github.com/Rana718/certseed/internal/export"
	"github.com/Rana718/certseed/internal/seeder"
	"github.com/Rana718/certseed/internal/wordsource"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateQuiet bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate seed SQL",
	Long: `Generate certificates, tags, users, orders and their links, and write
them as INSERT statements (one per line) to the output file.

Words are fetched from the configured word source. The HTTP source retries
forever when the API is unreachable; press Ctrl+C to abort.`,
	Example: `  certseed generate
  certseed generate --certificates 1000 --tags 200 --users 500 --orders 2000 -o db/seed.sql
  certseed generate --words-file words.txt --seed 42 -o - | psql mydb`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("words-file") {
			viper.Set("words.source", "file")
		}
		if cmd.Flags().Changed("word-url") {
			viper.Set("words.source", "http")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		color.Output = consoleWriter(cfg.Output.Path, color.Output)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runGenerate(ctx, cfg, generateQuiet)
	},
}

func runGenerate(ctx context.Context, cfg *config.Config, quiet bool) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	source, err := newWordSource(cfg, rand.New(rand.NewSource(seed+1)))
	if err != nil {
		return err
	}

	generator := seeder.NewDataGenerator(source, rng, seeder.GeneratorOptions{
		RetryDelay:  cfg.Words.RetryDelay,
		MaxAttempts: cfg.Words.MaxAttempts,
		Quiet:       quiet,
	})

	s, err := seeder.NewSeeder(cfg, generator)
	if err != nil {
		return err
	}

	result, err := s.Seed(ctx, seeder.SeedConfigFrom(cfg.Counts, quiet))
	if err != nil {
		return err
	}

	path, err := export.WriteLines(cfg.Output.Path, result.Statements, export.Options{Append: cfg.Output.Append})
	if err != nil {
		color.Red("❌ Failed to write output: %v", err)
		return err
	}

	if !quiet {
		printSummary(result, path)
	}
	return nil
}

// consoleWriter keeps status output off stdout when stdout carries the statements.
func consoleWriter(path string, current io.Writer) io.Writer {
	if path == export.Stdout {
		return os.Stderr
	}
	return current
}

func newWordSource(cfg *config.Config, rng *rand.Rand) (wordsource.Source, error) {
	switch cfg.Words.Source {
	case "file":
		src, err := wordsource.NewFileSource(cfg.Words.File, rng)
		if err != nil {
			return nil, err
		}
		if err := checkWordLengths(src, cfg); err != nil {
			return nil, err
		}
		return src, nil
	default:
		return wordsource.NewHTTPSource(cfg.Words.URL, 10*time.Second), nil
	}
}

// checkWordLengths reports length ranges that no listed word satisfies. An
// unbounded run fails up front, a bounded one only warns.
func checkWordLengths(src *wordsource.FileSource, cfg *config.Config) error {
	b := cfg.Bounds
	ranges := []struct {
		field    string
		min, max int
		used     bool
	}{
		{"name", b.MinNameLength, b.MaxNameLength, cfg.Counts.Certificates > 0 || cfg.Counts.Tags > 0},
		{"description", b.MinDescriptionLength, b.MaxDescriptionLength, cfg.Counts.Certificates > 0},
		{"username", b.MinUsernameLength, b.MaxUsernameLength, cfg.Counts.Users > 0},
	}

	for _, r := range ranges {
		if !r.used || src.CountWithin(r.min, r.max) > 0 {
			continue
		}
		if cfg.Words.MaxAttempts == 0 {
			return fmt.Errorf("no word in %s fits the %s length range [%d, %d]", cfg.Words.File, r.field, r.min, r.max)
		}
		color.Yellow("⚠️  No word in %s fits the %s length range [%d, %d]", cfg.Words.File, r.field, r.min, r.max)
	}
	return nil
}

func printSummary(result *seeder.Result, path string) {
	fmt.Fprintln(color.Output)
	color.Cyan("📊 Summary")
	for _, table := range result.Tables {
		line := fmt.Sprintf("  %-20s %6d of %6d", table.Name, table.Generated, table.Requested)
		if table.Generated < table.Requested {
			color.Yellow("%s (duplicates or missing references dropped)", line)
		} else {
			fmt.Fprintln(color.Output, line)
		}
	}
	color.Green("✅ Wrote %d statements to %s", len(result.Statements), path)
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.Int("certificates", 0, "Number of gift certificates to generate")
	flags.Int("tags", 0, "Number of tags to generate")
	flags.Int("users", 0, "Number of users to generate")
	flags.Int("orders", 0, "Number of orders to generate")
	flags.StringP("output", "o", "", "Output file ('-' for stdout, '.gz' to compress)")
	flags.Bool("append", false, "Append to the output file instead of overwriting it")
	flags.String("dialect", "", "SQL dialect for escaping (postgresql, mysql, sqlite)")
	flags.Int64("seed", 0, "Random seed for reproducible output (0 uses the clock)")
	flags.String("words-file", "", "Read words from a local file, one per line")
	flags.String("word-url", "", "Word API endpoint returning a JSON array")
	flags.BoolVarP(&generateQuiet, "quiet", "q", false, "Only print errors")

	bindings := map[string]string{
		"counts.certificates": "certificates",
		"counts.tags":         "tags",
		"counts.users":        "users",
		"counts.orders":       "orders",
		"output.path":         "output",
		"output.append":       "append",
		"output.dialect":      "dialect",
		"seed":                "seed",
		"words.file":          "words-file",
		"words.url":           "word-url",
	}
	for key, flag := range bindings {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}
