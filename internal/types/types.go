package types

import (
	"fmt"
	"strings"
)

type Dialect string

const (
	PostgreSQL Dialect = "postgresql"
	MySQL      Dialect = "mysql"
	SQLite     Dialect = "sqlite"
)

func ParseDialect(name string) (Dialect, error) {
	dialects := map[string]Dialect{
		"postgresql": PostgreSQL,
		"postgres":   PostgreSQL,
		"mysql":      MySQL,
		"sqlite":     SQLite,
		"sqlite3":    SQLite,
	}
	if d, ok := dialects[strings.ToLower(name)]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unsupported dialect: %s", name)
}

const (
	TableCertificate      = "gift_certificate"
	TableTag              = "tag"
	TableOrder            = "app_order" // "order" is reserved
	TableCertificateTag   = "certificate_tag"
	TableCertificateOrder = "certificate_order"
	DefaultUserTable      = "app_user" // "user" is reserved
)

type ColumnKind int

const (
	KindID ColumnKind = iota
	KindText
	KindDecimal
	KindInteger
	KindTimestamp
)

type SchemaColumn struct {
	Name             string
	Kind             ColumnKind
	Unique           bool
	ForeignKeyTable  string
	ForeignKeyColumn string
}

type SchemaTable struct {
	Name       string
	Columns    []SchemaColumn
	PrimaryKey []string // composite key for link tables, nil when the table has an id column
}

// Dependencies lists the tables referenced by foreign keys, in column order.
func (t SchemaTable) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool)
	for _, col := range t.Columns {
		if col.ForeignKeyTable == "" || col.ForeignKeyTable == t.Name || seen[col.ForeignKeyTable] {
			continue
		}
		seen[col.ForeignKeyTable] = true
		deps = append(deps, col.ForeignKeyTable)
	}
	return deps
}

// GiftCertificateSchema describes the six tables a seed run fills, in
// declaration order.
func GiftCertificateSchema(userTable string) []SchemaTable {
	if userTable == "" {
		userTable = DefaultUserTable
	}
	return []SchemaTable{
		{
			Name: TableCertificate,
			Columns: []SchemaColumn{
				{Name: "id", Kind: KindID},
				{Name: "name", Kind: KindText},
				{Name: "description", Kind: KindText},
				{Name: "price", Kind: KindDecimal},
				{Name: "duration", Kind: KindInteger},
				{Name: "create_date", Kind: KindTimestamp},
				{Name: "last_update_date", Kind: KindTimestamp},
			},
		},
		{
			Name: TableTag,
			Columns: []SchemaColumn{
				{Name: "id", Kind: KindID},
				{Name: "name", Kind: KindText, Unique: true},
			},
		},
		{
			Name: userTable,
			Columns: []SchemaColumn{
				{Name: "id", Kind: KindID},
				{Name: "username", Kind: KindText, Unique: true},
				{Name: "password", Kind: KindText},
				{Name: "role", Kind: KindInteger},
			},
		},
		{
			Name: TableOrder,
			Columns: []SchemaColumn{
				{Name: "id", Kind: KindID},
				{Name: "cost", Kind: KindDecimal},
				{Name: "purchase_date", Kind: KindTimestamp},
				{Name: "id_user", Kind: KindInteger, ForeignKeyTable: userTable, ForeignKeyColumn: "id"},
			},
		},
		{
			Name: TableCertificateTag,
			Columns: []SchemaColumn{
				{Name: "id_certificate", Kind: KindInteger, ForeignKeyTable: TableCertificate, ForeignKeyColumn: "id"},
				{Name: "id_tag", Kind: KindInteger, ForeignKeyTable: TableTag, ForeignKeyColumn: "id"},
			},
			PrimaryKey: []string{"id_certificate", "id_tag"},
		},
		{
			Name: TableCertificateOrder,
			Columns: []SchemaColumn{
				{Name: "id_order", Kind: KindInteger, ForeignKeyTable: TableOrder, ForeignKeyColumn: "id"},
				{Name: "id_certificate", Kind: KindInteger, ForeignKeyTable: TableCertificate, ForeignKeyColumn: "id"},
			},
			PrimaryKey: []string{"id_order", "id_certificate"},
		},
	}
}
