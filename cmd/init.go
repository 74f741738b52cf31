package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/Rana718/certseed/internal/config"
	"github.com/Rana718/certseed/internal/types"
	"github.com/Rana718/certseed/internal/utils"
	"github.com/Rana718/certseed/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
	initForce      bool
	initPrompt     bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a certseed config, reference schema and word list",
	Long: `Write ` + config.ConfigFileName + ` with the default generation parameters,
a reference schema.sql for the chosen database and a sample words.txt for
offline runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dialect := types.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dialect = types.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dialect = types.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dialect = types.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		input := &utils.InputUtils{In: os.Stdin, Out: os.Stdout}
		if flagCount == 0 && initPrompt {
			choice := input.GetUserChoice([]string{"postgresql", "mysql", "sqlite"}, "Database type", false)
			dialect = template.ValidateDatabaseType(choice)
		}

		return initializeProject(dialect, input)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize for SQLite")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize for PostgreSQL")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize for MySQL")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config without asking")
	initCmd.Flags().BoolVarP(&initPrompt, "interactive", "i", false, "Ask for the database type")
}

func initializeProject(dialect types.Dialect, input *utils.InputUtils) error {
	if config.IsInitialized() {
		if !input.AskConfirmation("⚠️  "+config.ConfigFileName+" already exists. Overwrite it?", initForce) {
			return fmt.Errorf("certseed is already initialized in this directory")
		}
	}

	tmpl := template.NewProjectTemplate(dialect, "")

	cfgContent, err := tmpl.GetConfig()
	if err != nil {
		return err
	}

	files := map[string]string{
		config.ConfigFileName: cfgContent,
	}
	var skipped []string
	for name, content := range map[string]string{
		"schema.sql": tmpl.GetSchema(),
		"words.txt":  tmpl.GetWordList(),
	} {
		if _, err := os.Stat(name); err == nil {
			skipped = append(skipped, name)
			continue
		}
		files[name] = content
	}

	created := make([]string, 0, len(files))
	for filePath, content := range files {
		created = append(created, filePath)
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", filePath, err)
		}
	}

	color.Green("✅ Initialized certseed for %s", dialect)
	fmt.Println()
	fmt.Println("📝 Files created:")
	sort.Strings(created)
	for _, filePath := range created {
		fmt.Printf("   %s\n", filePath)
	}
	for _, name := range skipped {
		fmt.Printf("ℹ️  Skipped %s (already exists)\n", name)
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   certseed generate                       # Fetch words from the API\n")
	fmt.Printf("   certseed generate --words-file words.txt  # Offline run\n")

	return nil
}
