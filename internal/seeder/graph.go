package seeder

import (
	"fmt"

	"github.com/Rana718/certseed/internal/types"
)

// DependencyGraph orders tables so that every table comes after the tables
// its foreign keys reference. Ties keep registration order.
type DependencyGraph struct {
	tables     map[string]types.SchemaTable
	registered []string
	order      []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]types.SchemaTable),
	}
}

func (g *DependencyGraph) AddTable(table types.SchemaTable) {
	if _, exists := g.tables[table.Name]; !exists {
		g.registered = append(g.registered, table.Name)
	}
	g.tables[table.Name] = table
}

func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		table, exists := g.tables[tableName]
		if !exists {
			return fmt.Errorf("table %s is referenced but not registered", tableName)
		}

		temp[tableName] = true
		for _, dep := range table.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, tableName := range g.registered {
		if !visited[tableName] {
			if err := visit(tableName); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}
