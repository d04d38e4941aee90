package formatting

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gravity/internal/api"
	pkgstrings "gravity/pkg/strings"
)

func colorState(state api.ServiceState) string {
	switch state {
	case api.StateReady:
		return text.FgGreen.Sprint(state)
	case api.StateFailed:
		return text.FgRed.Sprint(state)
	case api.StateRolledBack:
		return text.FgYellow.Sprint(state)
	case api.StatePending:
		return text.FgHiBlack.Sprint(state)
	default:
		return text.FgCyan.Sprint(state)
	}
}

// RenderStatus writes a snapshot of per-service runtime states.
func RenderStatus(w io.Writer, format OutputFormat, statuses []api.ServiceStatus) error {
	if format != FormatTable {
		return RenderData(w, format, statuses)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"SERVICE", "STATE", "PHASE", "ATTEMPTS", "ERROR"})
	for _, s := range statuses {
		t.AppendRow(table.Row{s.Name, colorState(s.State), s.Phase, s.Attempts,
			pkgstrings.Truncate(s.Error, pkgstrings.DefaultErrorMaxLen)})
	}
	t.Render()
	return nil
}

// RenderReport writes the final execution report of a run.
func RenderReport(w io.Writer, format OutputFormat, report *api.ExecutionReport) error {
	if format != FormatTable {
		return RenderData(w, format, report)
	}

	t := newTable(w)
	t.SetTitle("Run %s: %s (%s)", report.RunID, report.Outcome, report.Elapsed.Round(time.Millisecond))
	t.AppendHeader(table.Row{"SERVICE", "FINAL STATE", "PHASE", "ATTEMPTS", "READY AFTER", "ERROR"})
	for _, record := range report.Services {
		t.AppendRow(table.Row{
			record.Name,
			colorState(record.FinalStatus),
			record.Phase,
			record.Attempts,
			readyAfter(record),
			pkgstrings.Truncate(record.ErrorMsg, pkgstrings.DefaultErrorMaxLen),
		})
	}
	t.Render()
	return nil
}

func readyAfter(record api.ServiceRecord) string {
	if record.StartedAt == nil || record.ReadyAt == nil {
		return ""
	}
	return record.ReadyAt.Sub(*record.StartedAt).Round(time.Millisecond).String()
}
