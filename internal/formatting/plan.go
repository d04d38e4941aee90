package formatting

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"gravity/internal/resolver"
)

// planRow is the serializable view of one plan entry, used for YAML/JSON
// output and as the source of table rows.
type planRow struct {
	Position     int      `yaml:"position" json:"position"`
	Service      string   `yaml:"service" json:"service"`
	Version      string   `yaml:"version" json:"version"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

func planRows(plan *resolver.Plan) []planRow {
	rows := make([]planRow, 0, len(plan.Order))
	for i, name := range plan.Order {
		row := planRow{
			Position:     i + 1,
			Service:      name,
			Dependencies: plan.Graph().Dependencies(name),
		}
		if v, ok := plan.Versions[name]; ok {
			row.Version = v.String()
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderPlan writes the resolved plan in the requested format. The table
// lists services in installation order with their pinned versions.
func RenderPlan(w io.Writer, format OutputFormat, plan *resolver.Plan) error {
	rows := planRows(plan)
	if format != FormatTable {
		return RenderData(w, format, rows)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "SERVICE", "VERSION", "DEPENDS ON"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Position, row.Service, row.Version, strings.Join(row.Dependencies, ", ")})
	}
	t.Render()
	return nil
}
