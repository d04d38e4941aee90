package resolver

import (
	"gravity/internal/catalog"
	"gravity/internal/dependency"
)

// Plan is the resolved execution plan for one orchestration run: a total
// installation order plus the chosen version for every service. Plans are
// produced once per run and are immutable.
type Plan struct {
	Order    []string
	Versions Versions

	graph *dependency.Graph
}

// ResolvePlan runs the full resolution pipeline: descriptor validation,
// graph construction, version resolution and topological ordering. Any
// failure aborts resolution entirely; there is no partial plan.
func ResolvePlan(descriptors []catalog.ServiceDescriptor) (*Plan, error) {
	g, err := dependency.Build(descriptors)
	if err != nil {
		return nil, err
	}

	versions, err := Resolve(g)
	if err != nil {
		return nil, err
	}

	order, err := g.Order()
	if err != nil {
		return nil, err
	}

	return &Plan{Order: order, Versions: versions, graph: g}, nil
}

// Graph returns the constraint graph the plan was resolved from. The graph
// is read-only and safe to share.
func (p *Plan) Graph() *dependency.Graph {
	return p.graph
}
