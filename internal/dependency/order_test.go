package dependency

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gravity/internal/catalog"
)

func TestOrderDependenciesFirst(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{
		desc("db", "1.2.0"),
		desc("api", "1.0.0", catalog.Requirement{Name: "db", Range: ">=1.0.0"}),
	})
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "api"}, order)
}

func TestOrderBreaksTiesByName(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{
		desc("zebra", "1.0.0"),
		desc("alpha", "1.0.0"),
		desc("mango", "1.0.0"),
	})
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mango", "zebra"}, order)
}

func TestOrderDetectsDirectCycle(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{
		desc("A", "1.0.0", catalog.Requirement{Name: "B"}),
		desc("B", "1.0.0", catalog.Requirement{Name: "A"}),
	})
	require.NoError(t, err)

	_, err = g.Order()
	require.Error(t, err)
	assert.True(t, IsCircularDependency(err))

	var circ *CircularDependencyError
	require.ErrorAs(t, err, &circ)
	assert.Equal(t, []string{"A", "B", "A"}, circ.Path)
	assert.Contains(t, circ.Error(), "A -> B -> A")
}

func TestOrderReportsLongerCyclePath(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{
		desc("A", "1.0.0", catalog.Requirement{Name: "B"}),
		desc("B", "1.0.0", catalog.Requirement{Name: "C"}),
		desc("C", "1.0.0", catalog.Requirement{Name: "A"}),
		desc("standalone", "1.0.0"),
	})
	require.NoError(t, err)

	_, err = g.Order()
	var circ *CircularDependencyError
	require.ErrorAs(t, err, &circ)

	// The reported path must itself be a cycle in the graph: walking it edge
	// by edge returns to the start.
	require.GreaterOrEqual(t, len(circ.Path), 3)
	assert.Equal(t, circ.Path[0], circ.Path[len(circ.Path)-1])
	for i := 0; i < len(circ.Path)-1; i++ {
		assert.Contains(t, g.Dependencies(circ.Path[i]), circ.Path[i+1],
			"reported path segment %s -> %s is not an edge", circ.Path[i], circ.Path[i+1])
	}
}

// TestOrderRandomDAGs generates random acyclic graphs and checks the ordering
// invariant: the result is a permutation of all names and every edge's target
// precedes its source.
func TestOrderRandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := 3 + rng.Intn(12)
		descriptors := make([]catalog.ServiceDescriptor, n)
		for i := 0; i < n; i++ {
			d := catalog.ServiceDescriptor{
				Name:    fmt.Sprintf("svc-%02d", i),
				Version: "1.0.0",
			}
			// Edges only point at lower-numbered services, so the graph is
			// acyclic by construction.
			for j := 0; j < i; j++ {
				if rng.Intn(3) == 0 {
					d.Requires = append(d.Requires, catalog.Requirement{
						Name: fmt.Sprintf("svc-%02d", j), Range: ">=1.0.0",
					})
				}
			}
			descriptors[i] = d
		}

		g, err := Build(descriptors)
		require.NoError(t, err)

		order, err := g.Order()
		require.NoError(t, err)
		require.Len(t, order, n)

		position := make(map[string]int, n)
		for i, name := range order {
			_, dup := position[name]
			require.False(t, dup, "service %s appears twice", name)
			position[name] = i
		}

		for _, e := range g.Edges() {
			assert.Less(t, position[e.To], position[e.From],
				"dependency %s must precede dependent %s", e.To, e.From)
		}
	}
}
