package dependency

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"gravity/internal/catalog"
	"gravity/pkg/logging"
)

// Edge is a single "From requires To matching Range" constraint.
type Edge struct {
	From  string
	To    string
	Range string
}

// node holds the declared version for one service name. The model keeps a
// slice of candidates so a future catalog with multiple versions per name can
// be substituted without restructuring callers; today there is exactly one.
type node struct {
	name       string
	candidates []*semver.Version
}

// Graph is the directed constraint graph between services. It is read-only
// after Build returns and therefore safe to share between goroutines without
// locks.
type Graph struct {
	nodes map[string]*node
	edges []Edge
}

// Build turns a descriptor set into a constraint graph. Structural problems
// (duplicate names, self-references, unknown targets) fail construction; no
// partial graph is ever returned. Build is pure apart from logging.
func Build(descriptors []catalog.ServiceDescriptor) (*Graph, error) {
	if err := catalog.Validate(descriptors); err != nil {
		return nil, err
	}

	g := &Graph{nodes: make(map[string]*node, len(descriptors))}

	for _, d := range descriptors {
		v := semver.MustParse(d.Version) // Validate guarantees parsability
		g.nodes[d.Name] = &node{name: d.Name, candidates: []*semver.Version{v}}
	}

	for _, d := range descriptors {
		for _, req := range d.Requires {
			if _, ok := g.nodes[req.Name]; !ok {
				if req.Optional {
					logging.Warn("Dependency", "Optional dependency not found: %s (required by %s)", req.Name, d.Name)
					continue
				}
				return nil, &UnknownServiceError{Requirer: d.Name, Name: req.Name}
			}
			g.edges = append(g.edges, Edge{From: d.Name, To: req.Name, Range: req.Range})
		}
	}

	return g, nil
}

// Names returns every node name in ascending order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a node with the given name exists.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Candidates returns the candidate versions declared for a name, or nil if
// the node does not exist.
func (g *Graph) Candidates(name string) []*semver.Version {
	n, ok := g.nodes[name]
	if !ok {
		return nil
	}
	out := make([]*semver.Version, len(n.candidates))
	copy(out, n.candidates)
	return out
}

// Edges returns a copy of every constraint edge.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Dependencies returns the immediate dependency names of a service, in
// ascending order.
func (g *Graph) Dependencies(name string) []string {
	var deps []string
	for _, e := range g.edges {
		if e.From == name {
			deps = append(deps, e.To)
		}
	}
	sort.Strings(deps)
	return deps
}

// Dependents returns all service names with a direct dependency on the given
// name, in ascending order.
func (g *Graph) Dependents(name string) []string {
	var res []string
	for _, e := range g.edges {
		if e.To == name {
			res = append(res, e.From)
		}
	}
	sort.Strings(res)
	return res
}

// ConstraintsOn returns every edge targeting the given name, i.e. all
// incoming range constraints that the node's version must satisfy.
func (g *Graph) ConstraintsOn(name string) []Edge {
	var res []Edge
	for _, e := range g.edges {
		if e.To == name {
			res = append(res, e)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].From < res[j].From })
	return res
}
