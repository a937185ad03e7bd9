package rulegraph

import (
	"testing"

	"github.com/marcusbikes/storefront/pkg/catalog"
)

func requires(sourceComponent, sourceOption, targetComponent, targetOption catalog.ID) catalog.Dependency {
	return catalog.Dependency{
		Type:              catalog.DependencyRequires,
		SourceComponentID: sourceComponent,
		SourceOptionID:    sourceOption,
		TargetComponentID: targetComponent,
		TargetOptionID:    targetOption,
	}
}

func productWithDeps(deps ...catalog.Dependency) *catalog.Product {
	return &catalog.Product{
		ID: "test",
		Components: []catalog.Component{
			{ID: "frame", Options: []catalog.Option{{ID: "a"}, {ID: "b"}}},
			{ID: "wheels", Options: []catalog.Option{{ID: "c"}, {ID: "d"}}},
			{ID: "rim", Options: []catalog.Option{{ID: "e"}}},
		},
		Dependencies: deps,
	}
}

func TestCycles_NoCycles(t *testing.T) {
	// Chain: frame/a -> wheels/c -> rim/e
	product := productWithDeps(
		requires("frame", "a", "wheels", "c"),
		requires("wheels", "c", "rim", "e"),
	)

	cycles := Build(product).Cycles()
	if len(cycles) != 0 {
		t.Errorf("Expected no cycles, found %d", len(cycles))
	}
}

func TestCycles_SimpleCycle(t *testing.T) {
	// frame/a -> wheels/c -> frame/a
	product := productWithDeps(
		requires("frame", "a", "wheels", "c"),
		requires("wheels", "c", "frame", "a"),
	)

	cycles := Build(product).Cycles()
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, found %d", len(cycles))
	}
	if len(cycles[0]) != 2 {
		t.Errorf("Expected cycle of length 2, got %d", len(cycles[0]))
	}

	inCycle := make(map[OptionRef]bool)
	for _, ref := range cycles[0] {
		inCycle[ref] = true
	}
	if !inCycle[OptionRef{ComponentID: "frame", OptionID: "a"}] ||
		!inCycle[OptionRef{ComponentID: "wheels", OptionID: "c"}] {
		t.Errorf("Cycle does not contain the expected options: %v", cycles[0])
	}
}

func TestCycles_ThreeNodeCycle(t *testing.T) {
	product := productWithDeps(
		requires("frame", "a", "wheels", "c"),
		requires("wheels", "c", "rim", "e"),
		requires("rim", "e", "frame", "a"),
	)

	cycles := Build(product).Cycles()
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, found %d", len(cycles))
	}
	if len(cycles[0]) != 3 {
		t.Errorf("Expected cycle of length 3, got %d", len(cycles[0]))
	}
}

func TestCycles_MixedCyclicAndAcyclic(t *testing.T) {
	product := productWithDeps(
		// Cycle between frame/a and wheels/c
		requires("frame", "a", "wheels", "c"),
		requires("wheels", "c", "frame", "a"),
		// Acyclic dependency off to the side
		requires("frame", "b", "wheels", "d"),
	)

	cycles := Build(product).Cycles()
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, found %d", len(cycles))
	}
}

func TestBuild_SkipsUnresolvedAndNonRequires(t *testing.T) {
	product := productWithDeps(
		// Source option does not exist: no edge
		requires("frame", "ghost", "wheels", "c"),
		// Excludes never enter the requires graph
		catalog.Dependency{
			Type:              catalog.DependencyExcludes,
			SourceComponentID: "frame", SourceOptionID: "a",
			TargetComponentID: "wheels", TargetOptionID: "c",
		},
		catalog.Dependency{
			Type:              catalog.DependencyExcludes,
			SourceComponentID: "wheels", SourceOptionID: "c",
			TargetComponentID: "frame", TargetOptionID: "a",
		},
	)

	cycles := Build(product).Cycles()
	if len(cycles) != 0 {
		t.Errorf("Expected no cycles, found %d", len(cycles))
	}
}

func TestAddRequires_IgnoresSelfLoop(t *testing.T) {
	g := New()
	ref := OptionRef{ComponentID: "frame", OptionID: "a"}
	g.AddRequires(ref, ref)

	if cycles := g.Cycles(); len(cycles) != 0 {
		t.Errorf("Self-loop must not count as a cycle, found %d", len(cycles))
	}
}
