package cmd

import (
	"fmt"

	"github.com/Rana718/certseed/internal/config"
	"github.com/Rana718/certseed/internal/types"
	"github.com/Rana718/certseed/template"
	"github.com/spf13/cobra"
)

var schemaDialect string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the reference schema the generated data targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dialect := cfg.Dialect()
		if schemaDialect != "" {
			if dialect, err = types.ParseDialect(schemaDialect); err != nil {
				return err
			}
		}

		fmt.Print(template.NewProjectTemplate(dialect, cfg.User.Table).GetSchema())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVar(&schemaDialect, "dialect", "", "Database dialect (postgresql, mysql, sqlite)")
}
