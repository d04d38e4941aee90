package dependency

// colour marks used by the depth-first traversal.
type colour int

const (
	unvisited colour = iota
	inProgress
	done
)

// Order validates the graph is acyclic and returns a total installation
// order: for every edge (a -> b), b precedes a, so dependencies start before
// dependents. Ties among independent services are broken by ascending name,
// which makes the output deterministic across runs.
//
// On a cycle, the returned CircularDependencyError carries the full cycle
// path for diagnostics.
func (g *Graph) Order() ([]string, error) {
	marks := make(map[string]colour, len(g.nodes))
	order := make([]string, 0, len(g.nodes))
	var stack []string

	var visit func(name string) *CircularDependencyError
	visit = func(name string) *CircularDependencyError {
		marks[name] = inProgress
		stack = append(stack, name)

		for _, dep := range g.Dependencies(name) {
			switch marks[dep] {
			case unvisited:
				if cycleErr := visit(dep); cycleErr != nil {
					return cycleErr
				}
			case inProgress:
				return &CircularDependencyError{Path: cyclePath(stack, dep)}
			}
		}

		stack = stack[:len(stack)-1]
		marks[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range g.Names() {
		if marks[name] != unvisited {
			continue
		}
		if cycleErr := visit(name); cycleErr != nil {
			return nil, cycleErr
		}
	}

	return order, nil
}

// cyclePath slices the traversal stack from the first occurrence of start and
// closes the loop, e.g. stack [x a b c] with start b yields [b c b].
func cyclePath(stack []string, start string) []string {
	for i, name := range stack {
		if name == start {
			path := make([]string, 0, len(stack)-i+1)
			path = append(path, stack[i:]...)
			path = append(path, start)
			return path
		}
	}
	// start is always on the stack when a cycle is detected
	return []string{start, start}
}
