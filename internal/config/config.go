package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Rana718/certseed/internal/types"
	"github.com/spf13/viper"
)

const (
	DateLayout     = "2006-01-02 15:04:05"
	ConfigName     = "certseed.config"
	ConfigFileName = ConfigName + ".yaml"
	EnvPrefix      = "CERTSEED"
)

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type Config struct {
	Counts Counts `json:"counts" yaml:"counts" mapstructure:"counts"`
	Bounds Bounds `json:"bounds" yaml:"bounds" mapstructure:"bounds"`
	Dates  Dates  `json:"dates" yaml:"dates" mapstructure:"dates"`
	Links  Links  `json:"links" yaml:"links" mapstructure:"links"`
	User   User   `json:"user" yaml:"user" mapstructure:"user"`
	Words  Words  `json:"words" yaml:"words" mapstructure:"words"`
	Output Output `json:"output" yaml:"output" mapstructure:"output"`
	Seed   int64  `json:"seed" yaml:"seed" mapstructure:"seed"` // 0 seeds from the clock
}

// Counts holds the number of rows requested per entity.
type Counts struct {
	Certificates int `json:"certificates" yaml:"certificates" mapstructure:"certificates"`
	Tags         int `json:"tags" yaml:"tags" mapstructure:"tags"`
	Users        int `json:"users" yaml:"users" mapstructure:"users"`
	Orders       int `json:"orders" yaml:"orders" mapstructure:"orders"`
}

type Bounds struct {
	MinNameLength        int     `json:"min_name_length" yaml:"min_name_length" mapstructure:"min_name_length"`
	MaxNameLength        int     `json:"max_name_length" yaml:"max_name_length" mapstructure:"max_name_length"`
	MinDescriptionLength int     `json:"min_description_length" yaml:"min_description_length" mapstructure:"min_description_length"`
	MaxDescriptionLength int     `json:"max_description_length" yaml:"max_description_length" mapstructure:"max_description_length"`
	MinUsernameLength    int     `json:"min_username_length" yaml:"min_username_length" mapstructure:"min_username_length"`
	MaxUsernameLength    int     `json:"max_username_length" yaml:"max_username_length" mapstructure:"max_username_length"`
	MinPrice             float64 `json:"min_price" yaml:"min_price" mapstructure:"min_price"`
	MaxPrice             float64 `json:"max_price" yaml:"max_price" mapstructure:"max_price"`
	MinDuration          int     `json:"min_duration" yaml:"min_duration" mapstructure:"min_duration"`
	MaxDuration          int     `json:"max_duration" yaml:"max_duration" mapstructure:"max_duration"`
}

// Dates are absolute timestamps in DateLayout, interpreted as UTC.
type Dates struct {
	Min string `json:"min" yaml:"min" mapstructure:"min"`
	Max string `json:"max" yaml:"max" mapstructure:"max"`
}

type Links struct {
	MinTagsPerCertificate   int `json:"min_tags_per_certificate" yaml:"min_tags_per_certificate" mapstructure:"min_tags_per_certificate"`
	MaxTagsPerCertificate   int `json:"max_tags_per_certificate" yaml:"max_tags_per_certificate" mapstructure:"max_tags_per_certificate"`
	MinCertificatesPerOrder int `json:"min_certificates_per_order" yaml:"min_certificates_per_order" mapstructure:"min_certificates_per_order"`
	MaxCertificatesPerOrder int `json:"max_certificates_per_order" yaml:"max_certificates_per_order" mapstructure:"max_certificates_per_order"`
}

type User struct {
	Table        string `json:"table" yaml:"table" mapstructure:"table"`
	PasswordHash string `json:"password_hash" yaml:"password_hash" mapstructure:"password_hash"`
	Role         int    `json:"role" yaml:"role" mapstructure:"role"`
}

type Words struct {
	Source      string        `json:"source" yaml:"source" mapstructure:"source"` // http or file
	URL         string        `json:"url" yaml:"url" mapstructure:"url"`
	File        string        `json:"file" yaml:"file" mapstructure:"file"`
	RetryDelay  time.Duration `json:"retry_delay" yaml:"retry_delay" mapstructure:"retry_delay"`
	MaxAttempts int           `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"` // 0 retries forever
}

type Output struct {
	Path    string `json:"path" yaml:"path" mapstructure:"path"`
	Append  bool   `json:"append" yaml:"append" mapstructure:"append"`
	Dialect string `json:"dialect" yaml:"dialect" mapstructure:"dialect"`
}

// Default returns the configuration used when no file, env var or flag overrides a key.
func Default() *Config {
	return &Config{
		Counts: Counts{Certificates: 10, Tags: 10, Users: 10, Orders: 10},
		Bounds: Bounds{
			MinNameLength:        3,
			MaxNameLength:        50,
			MinDescriptionLength: 10,
			MaxDescriptionLength: 100,
			MinUsernameLength:    8,
			MaxUsernameLength:    32,
			MinPrice:             1.0,
			MaxPrice:             100.0,
			MinDuration:          1,
			MaxDuration:          60,
		},
		Dates: Dates{Min: "2019-01-01 00:00:00", Max: "2020-12-31 23:59:59"},
		Links: Links{
			MinTagsPerCertificate:   0,
			MaxTagsPerCertificate:   3,
			MinCertificatesPerOrder: 1,
			MaxCertificatesPerOrder: 3,
		},
		User: User{
			Table:        "app_user",
			PasswordHash: "$2a$12$xKPnRQjvcaI7otzmjburzuIRu4kGqSXTkAwckVQBY4l7BI6XP1A8S",
			Role:         0,
		},
		Words: Words{
			Source:     "http",
			URL:        "https://random-word-api.herokuapp.com/word?number=1&swear=0",
			RetryDelay: 2 * time.Second,
		},
		Output: Output{Path: "data.sql", Dialect: "postgresql"},
	}
}

// SetDefaults registers every key of Default on v so that env vars and bound
// flags resolve even when no config file is present.
func SetDefaults(v *viper.Viper) {
	d := Default()
	defaults := map[string]interface{}{
		"counts.certificates":              d.Counts.Certificates,
		"counts.tags":                      d.Counts.Tags,
		"counts.users":                     d.Counts.Users,
		"counts.orders":                    d.Counts.Orders,
		"bounds.min_name_length":           d.Bounds.MinNameLength,
		"bounds.max_name_length":           d.Bounds.MaxNameLength,
		"bounds.min_description_length":    d.Bounds.MinDescriptionLength,
		"bounds.max_description_length":    d.Bounds.MaxDescriptionLength,
		"bounds.min_username_length":       d.Bounds.MinUsernameLength,
		"bounds.max_username_length":       d.Bounds.MaxUsernameLength,
		"bounds.min_price":                 d.Bounds.MinPrice,
		"bounds.max_price":                 d.Bounds.MaxPrice,
		"bounds.min_duration":              d.Bounds.MinDuration,
		"bounds.max_duration":              d.Bounds.MaxDuration,
		"dates.min":                        d.Dates.Min,
		"dates.max":                        d.Dates.Max,
		"links.min_tags_per_certificate":   d.Links.MinTagsPerCertificate,
		"links.max_tags_per_certificate":   d.Links.MaxTagsPerCertificate,
		"links.min_certificates_per_order": d.Links.MinCertificatesPerOrder,
		"links.max_certificates_per_order": d.Links.MaxCertificatesPerOrder,
		"user.table":                       d.User.Table,
		"user.password_hash":               d.User.PasswordHash,
		"user.role":                        d.User.Role,
		"words.source":                     d.Words.Source,
		"words.url":                        d.Words.URL,
		"words.file":                       d.Words.File,
		"words.retry_delay":                d.Words.RetryDelay,
		"words.max_attempts":               d.Words.MaxAttempts,
		"output.path":                      d.Output.Path,
		"output.append":                    d.Output.Append,
		"output.dialect":                   d.Output.Dialect,
		"seed":                             d.Seed,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if dialect, err := types.ParseDialect(cfg.Output.Dialect); err == nil {
		cfg.Output.Dialect = string(dialect)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	counts := map[string]int{
		"certificates": c.Counts.Certificates,
		"tags":         c.Counts.Tags,
		"users":        c.Counts.Users,
		"orders":       c.Counts.Orders,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("counts.%s cannot be negative (got %d)", name, n)
		}
	}

	lengths := []struct {
		name     string
		min, max int
	}{
		{"name length", c.Bounds.MinNameLength, c.Bounds.MaxNameLength},
		{"description length", c.Bounds.MinDescriptionLength, c.Bounds.MaxDescriptionLength},
		{"username length", c.Bounds.MinUsernameLength, c.Bounds.MaxUsernameLength},
	}
	for _, l := range lengths {
		if l.min < 1 {
			return fmt.Errorf("minimum %s must be at least 1 (got %d)", l.name, l.min)
		}
		if l.max < l.min {
			return fmt.Errorf("maximum %s %d is below minimum %d", l.name, l.max, l.min)
		}
	}

	if c.Bounds.MaxPrice < c.Bounds.MinPrice {
		return fmt.Errorf("max_price %.2f is below min_price %.2f", c.Bounds.MaxPrice, c.Bounds.MinPrice)
	}
	if c.Bounds.MaxDuration <= c.Bounds.MinDuration {
		return fmt.Errorf("max_duration must be greater than min_duration (durations are drawn from [min, max))")
	}

	minDate, maxDate, err := c.DateRange()
	if err != nil {
		return err
	}
	if maxDate.Before(minDate) {
		return fmt.Errorf("dates.max %s is before dates.min %s", c.Dates.Max, c.Dates.Min)
	}

	if c.Links.MinTagsPerCertificate < 0 || c.Links.MaxTagsPerCertificate < c.Links.MinTagsPerCertificate {
		return fmt.Errorf("invalid tags per certificate range [%d, %d)", c.Links.MinTagsPerCertificate, c.Links.MaxTagsPerCertificate)
	}
	if c.Links.MinCertificatesPerOrder < 0 || c.Links.MaxCertificatesPerOrder < c.Links.MinCertificatesPerOrder {
		return fmt.Errorf("invalid certificates per order range [%d, %d)", c.Links.MinCertificatesPerOrder, c.Links.MaxCertificatesPerOrder)
	}

	if !validIdentifier.MatchString(c.User.Table) {
		return fmt.Errorf("invalid user table name: %s", c.User.Table)
	}
	for _, table := range []string{
		types.TableCertificate,
		types.TableTag,
		types.TableOrder,
		types.TableCertificateTag,
		types.TableCertificateOrder,
	} {
		if strings.EqualFold(c.User.Table, table) {
			return fmt.Errorf("user table name %s collides with the %s table", c.User.Table, table)
		}
	}

	switch c.Words.Source {
	case "http":
		if c.Words.URL == "" {
			return fmt.Errorf("words.url cannot be empty for the http word source")
		}
	case "file":
		if c.Words.File == "" {
			return fmt.Errorf("words.file cannot be empty for the file word source")
		}
	default:
		return fmt.Errorf("unsupported word source: %s. Supported sources: [http file]", c.Words.Source)
	}
	if c.Words.RetryDelay < 0 {
		return fmt.Errorf("words.retry_delay cannot be negative")
	}
	if c.Words.MaxAttempts < 0 {
		return fmt.Errorf("words.max_attempts cannot be negative")
	}

	if _, err := types.ParseDialect(c.Output.Dialect); err != nil {
		return fmt.Errorf("%w. Supported dialects: [postgresql mysql sqlite]", err)
	}

	if c.Output.Path == "" {
		return fmt.Errorf("output.path cannot be empty")
	}

	return nil
}

// DateRange parses the configured date bounds.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	minDate, err := time.ParseInLocation(DateLayout, c.Dates.Min, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid dates.min %q: %w", c.Dates.Min, err)
	}
	maxDate, err := time.ParseInLocation(DateLayout, c.Dates.Max, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid dates.max %q: %w", c.Dates.Max, err)
	}
	return minDate, maxDate, nil
}

func (c *Config) Dialect() types.Dialect {
	dialect, err := types.ParseDialect(c.Output.Dialect)
	if err != nil {
		return types.PostgreSQL
	}
	return dialect
}

// IsInitialized reports whether a config file exists in the working directory.
func IsInitialized() bool {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		if _, err := os.Stat(ConfigName + ext); err == nil {
			return true
		}
	}
	return false
}
