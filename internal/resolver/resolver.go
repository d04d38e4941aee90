package resolver

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"gravity/internal/dependency"
	"gravity/pkg/logging"
)

// Versions maps a service name to the single version chosen for it.
type Versions map[string]*semver.Version

// Resolve picks one concrete version per service name satisfying the AND of
// all incoming range constraints, or fails with a ConflictError naming the
// service, its declared version, and every unsatisfied (requirer, range)
// pair.
//
// With one declared version per name this is a validation step rather than a
// search, which keeps it deterministic and side-effect-free. The selection
// is still written as "highest candidate satisfying all ranges" so a catalog
// with multiple candidate versions per name can be substituted without
// changing callers.
func Resolve(g *dependency.Graph) (Versions, error) {
	versions := make(Versions, len(g.Names()))

	for _, name := range g.Names() {
		candidates := g.Candidates(name)
		constraints, err := parseConstraints(g.ConstraintsOn(name))
		if err != nil {
			return nil, err
		}

		chosen := maxSatisfying(candidates, constraints)
		if chosen == nil {
			declared := candidates[0]
			conflict := &ConflictError{Service: name, Version: declared.String()}
			for _, c := range constraints {
				if !c.constraint.Check(declared) {
					conflict.Unsatisfied = append(conflict.Unsatisfied, UnsatisfiedRange{
						Requirer: c.requirer,
						Range:    c.raw,
					})
				}
			}
			return nil, conflict
		}

		versions[name] = chosen
		logging.Debug("Resolver", "Resolved %s to version %s (%d constraint(s))", name, chosen, len(constraints))
	}

	return versions, nil
}

// rangeConstraint pairs a parsed constraint with the requirer that declared
// it, for conflict reporting.
type rangeConstraint struct {
	requirer   string
	raw        string
	constraint *semver.Constraints
}

func parseConstraints(edges []dependency.Edge) ([]rangeConstraint, error) {
	constraints := make([]rangeConstraint, 0, len(edges))
	for _, e := range edges {
		raw := e.Range
		if raw == "" {
			// No range declared means any version satisfies the requirement.
			raw = "*"
		}
		c, err := semver.NewConstraint(raw)
		if err != nil {
			return nil, fmt.Errorf("parse range %q declared by %s on %s: %w", e.Range, e.From, e.To, err)
		}
		constraints = append(constraints, rangeConstraint{requirer: e.From, raw: raw, constraint: c})
	}
	return constraints, nil
}

// maxSatisfying returns the highest candidate satisfying every constraint,
// or nil if none does. Roots with no incoming edges are trivially satisfied
// by their own declared version.
func maxSatisfying(candidates []*semver.Version, constraints []rangeConstraint) *semver.Version {
	var best *semver.Version
	for _, candidate := range candidates {
		ok := true
		for _, c := range constraints {
			if !c.constraint.Check(candidate) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if best == nil || candidate.GreaterThan(best) {
			best = candidate
		}
	}
	return best
}
