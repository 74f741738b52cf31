package template

import (
	"fmt"
	"strings"

	"github.com/Rana718/certseed/internal/config"
	"github.com/Rana718/certseed/internal/types"
	"gopkg.in/yaml.v3"
)

type ProjectTemplate struct {
	Dialect   types.Dialect
	UserTable string
}

type dbConfig struct {
	primaryKey    string
	textType      string
	decimalType   string
	integerType   string
	timestampType string
}

var dbConfigs = map[types.Dialect]dbConfig{
	types.SQLite: {
		primaryKey:    "INTEGER PRIMARY KEY AUTOINCREMENT",
		textType:      "TEXT",
		decimalType:   "NUMERIC",
		integerType:   "INTEGER",
		timestampType: "DATETIME",
	},
	types.MySQL: {
		primaryKey:    "INT AUTO_INCREMENT PRIMARY KEY",
		textType:      "VARCHAR(255)",
		decimalType:   "DECIMAL(10, 2)",
		integerType:   "INT",
		timestampType: "DATETIME",
	},
	types.PostgreSQL: {
		primaryKey:    "SERIAL PRIMARY KEY",
		textType:      "VARCHAR(255)",
		decimalType:   "DECIMAL(10, 2)",
		integerType:   "INT",
		timestampType: "TIMESTAMP",
	},
}

func NewProjectTemplate(dialect types.Dialect, userTable string) *ProjectTemplate {
	if userTable == "" {
		userTable = types.DefaultUserTable
	}
	return &ProjectTemplate{Dialect: dialect, UserTable: userTable}
}

// GetSchema renders CREATE TABLE statements for the tables a seed run fills,
// parents before children.
func (pt *ProjectTemplate) GetSchema() string {
	cfg, ok := dbConfigs[pt.Dialect]
	if !ok {
		cfg = dbConfigs[types.PostgreSQL]
	}

	var b strings.Builder
	for i, table := range types.GiftCertificateSchema(pt.UserTable) {
		if i > 0 {
			b.WriteString("\n")
		}

		var lines []string
		for _, col := range table.Columns {
			lines = append(lines, fmt.Sprintf("    %s %s", col.Name, cfg.columnType(col)))
		}
		if len(table.PrimaryKey) > 0 {
			lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", strings.Join(table.PrimaryKey, ", ")))
		}
		for _, col := range table.Columns {
			if col.ForeignKeyTable != "" {
				lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s (%s)", col.Name, col.ForeignKeyTable, col.ForeignKeyColumn))
			}
		}

		fmt.Fprintf(&b, "CREATE TABLE %s (\n%s\n);\n", table.Name, strings.Join(lines, ",\n"))
	}
	return b.String()
}

func (c dbConfig) columnType(col types.SchemaColumn) string {
	var sqlType string
	switch col.Kind {
	case types.KindID:
		return c.primaryKey
	case types.KindText:
		sqlType = c.textType
	case types.KindDecimal:
		sqlType = c.decimalType
	case types.KindInteger:
		sqlType = c.integerType
	case types.KindTimestamp:
		sqlType = c.timestampType
	}
	if col.Unique {
		return sqlType + " UNIQUE NOT NULL"
	}
	return sqlType + " NOT NULL"
}

// GetConfig renders the default configuration for this dialect as YAML.
func (pt *ProjectTemplate) GetConfig() (string, error) {
	cfg := config.Default()
	cfg.Output.Dialect = string(pt.Dialect)
	cfg.User.Table = pt.UserTable

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

func (pt *ProjectTemplate) GetWordList() string {
	return `# One word per line. Used when words.source is "file".
voucher
birthday
anniversary
relaxation
adventure
experience
gourmet
spa
cinema
concert
`
}

func ValidateDatabaseType(dbType string) types.Dialect {
	if dialect, err := types.ParseDialect(dbType); err == nil {
		return dialect
	}
	return types.PostgreSQL
}
