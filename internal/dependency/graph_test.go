package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gravity/internal/catalog"
)

func desc(name, version string, requires ...catalog.Requirement) catalog.ServiceDescriptor {
	return catalog.ServiceDescriptor{Name: name, Version: version, Requires: requires}
}

func TestBuildCreatesNodesAndEdges(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{
		desc("db", "1.2.0"),
		desc("api", "2.0.0", catalog.Requirement{Name: "db", Range: ">=1.0.0"}),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"api", "db"}, g.Names())
	require.Len(t, g.Edges(), 1)
	assert.Equal(t, Edge{From: "api", To: "db", Range: ">=1.0.0"}, g.Edges()[0])
	assert.Equal(t, []string{"db"}, g.Dependencies("api"))
	assert.Equal(t, []string{"api"}, g.Dependents("db"))
}

func TestBuildRejectsUnknownTarget(t *testing.T) {
	_, err := Build([]catalog.ServiceDescriptor{
		desc("api", "1.0.0", catalog.Requirement{Name: "db", Range: ">=1.0.0"}),
	})
	require.Error(t, err)
	assert.True(t, IsUnknownService(err))
	assert.Contains(t, err.Error(), "api requires db")
}

func TestBuildSkipsMissingOptionalDependency(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{
		desc("api", "1.0.0", catalog.Requirement{Name: "cache", Range: ">=1.0.0", Optional: true}),
	})
	require.NoError(t, err)
	assert.Empty(t, g.Edges())
}

func TestBuildRejectsStructuralErrors(t *testing.T) {
	_, err := Build([]catalog.ServiceDescriptor{
		desc("db", "1.0.0"),
		desc("db", "1.0.0"),
	})
	require.Error(t, err)
	assert.True(t, catalog.IsDuplicateService(err))

	_, err = Build([]catalog.ServiceDescriptor{
		desc("api", "1.0.0", catalog.Requirement{Name: "api"}),
	})
	require.Error(t, err)
	assert.True(t, catalog.IsSelfDependency(err))
}

func TestConstraintsOnCollectsIncomingEdges(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{
		desc("db", "1.2.0"),
		desc("api", "1.0.0", catalog.Requirement{Name: "db", Range: ">=1.0.0"}),
		desc("worker", "1.0.0", catalog.Requirement{Name: "db", Range: "^1.2"}),
	})
	require.NoError(t, err)

	constraints := g.ConstraintsOn("db")
	require.Len(t, constraints, 2)
	assert.Equal(t, "api", constraints[0].From)
	assert.Equal(t, "worker", constraints[1].From)
	assert.Empty(t, g.ConstraintsOn("api"))
}

func TestCandidatesReturnsDeclaredVersion(t *testing.T) {
	g, err := Build([]catalog.ServiceDescriptor{desc("db", "1.2.0")})
	require.NoError(t, err)

	candidates := g.Candidates("db")
	require.Len(t, candidates, 1)
	assert.Equal(t, "1.2.0", candidates[0].String())
	assert.Nil(t, g.Candidates("missing"))
}
