package output

import (
	"fmt"
	"strings"
	"time"
)

// ReportFile is the name of the run report in the output directory.
const ReportFile = "run-report.md"

// Report summarizes one conversion run.
type Report struct {
	Command  string
	Started  time.Time
	Finished time.Time
	Outputs  []ReportOutput
	// Diagnostics lists the kinds that occurred, in kind order.
	Diagnostics []ReportCount
}

// ReportOutput describes one written graph.
type ReportOutput struct {
	Graph   string
	File    string
	Triples int
}

// ReportCount is the number of issues of one diagnostic kind.
type ReportCount struct {
	Kind  string
	Count int
}

// Markdown renders the report.
func (r Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# m0convert run\n\n")
	fmt.Fprintf(&sb, "- **Command:** %s\n", r.Command)
	fmt.Fprintf(&sb, "- **Started:** %s\n", r.Started.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "- **Duration:** %s\n\n", r.Finished.Sub(r.Started).Round(time.Millisecond))

	sb.WriteString("## Outputs\n\n")
	if len(r.Outputs) == 0 {
		sb.WriteString("No graph written.\n\n")
	} else {
		sb.WriteString("| Graph | File | Triples |\n|---|---|---:|\n")
		for _, o := range r.Outputs {
			fmt.Fprintf(&sb, "| %s | %s | %d |\n", o.Graph, o.File, o.Triples)
		}
		sb.WriteString("\n")
	}

	total := 0
	sb.WriteString("## Diagnostics\n\n")
	if len(r.Diagnostics) == 0 {
		sb.WriteString("None.\n\n")
	} else {
		sb.WriteString("| Kind | Count |\n|---|---:|\n")
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&sb, "| %s | %d |\n", d.Kind, d.Count)
			total += d.Count
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n**Status:** ")
	if total == 0 {
		sb.WriteString("complete\n")
	} else {
		fmt.Fprintf(&sb, "complete with %d diagnostics\n", total)
	}
	return sb.String()
}
