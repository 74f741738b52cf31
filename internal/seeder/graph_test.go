package seeder

import (
	"strings"
	"testing"

	"github.com/Rana718/certseed/internal/types"
)

func TestBuildInsertionOrder(t *testing.T) {
	graph := NewDependencyGraph()
	for _, table := range types.GiftCertificateSchema("") {
		graph.AddTable(table)
	}

	order, err := graph.BuildInsertionOrder()
	if err != nil {
		t.Fatalf("Failed to build insertion order: %v", err)
	}

	expected := []string{"gift_certificate", "tag", "app_user", "app_order", "certificate_tag", "certificate_order"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected order %v, got %v", expected, order)
	}
	if strings.Join(graph.GetOrder(), ",") != strings.Join(expected, ",") {
		t.Errorf("Expected GetOrder to return %v, got %v", expected, graph.GetOrder())
	}
}

func TestBuildInsertionOrderDependentRegisteredFirst(t *testing.T) {
	graph := NewDependencyGraph()
	tables := types.GiftCertificateSchema("")
	for i := len(tables) - 1; i >= 0; i-- {
		graph.AddTable(tables[i])
	}

	order, err := graph.BuildInsertionOrder()
	if err != nil {
		t.Fatalf("Failed to build insertion order: %v", err)
	}

	position := make(map[string]int)
	for i, name := range order {
		position[name] = i
	}
	for _, table := range tables {
		for _, dep := range table.Dependencies() {
			if position[dep] >= position[table.Name] {
				t.Errorf("Expected %s before %s, got order %v", dep, table.Name, order)
			}
		}
	}
}

func TestBuildInsertionOrderCycle(t *testing.T) {
	graph := NewDependencyGraph()
	graph.AddTable(types.SchemaTable{Name: "a", Columns: []types.SchemaColumn{{Name: "b_id", ForeignKeyTable: "b"}}})
	graph.AddTable(types.SchemaTable{Name: "b", Columns: []types.SchemaColumn{{Name: "a_id", ForeignKeyTable: "a"}}})

	if _, err := graph.BuildInsertionOrder(); err == nil || !strings.Contains(err.Error(), "circular dependency") {
		t.Errorf("Expected circular dependency error, got %v", err)
	}
}

func TestBuildInsertionOrderUnknownTable(t *testing.T) {
	graph := NewDependencyGraph()
	graph.AddTable(types.SchemaTable{Name: "a", Columns: []types.SchemaColumn{{Name: "b_id", ForeignKeyTable: "b"}}})

	if _, err := graph.BuildInsertionOrder(); err == nil {
		t.Error("Expected error for unregistered table, got nil")
	}
}

func TestSelfReferenceIsNotADependency(t *testing.T) {
	graph := NewDependencyGraph()
	graph.AddTable(types.SchemaTable{Name: "node", Columns: []types.SchemaColumn{{Name: "parent_id", ForeignKeyTable: "node"}}})

	order, err := graph.BuildInsertionOrder()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(order) != 1 || order[0] != "node" {
		t.Errorf("Expected [node], got %v", order)
	}
}
