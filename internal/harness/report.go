package harness

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReport prints one row per result with instruction and lane counts,
// followed by a total row. Numbers use English digit grouping.
func WriteReport(w io.Writer, results []Result) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "%-12s %6s %10s %14s %14s %14s %7s  %s\n",
		"KERNEL", "WIDTH", "SIZE", "INSTRUCTIONS", "TOTAL LANES", "ACTIVE LANES", "UTIL", "RESULT"); err != nil {
		return err
	}
	for _, r := range results {
		status := "ok"
		if !r.Passed() {
			status = "FAIL: " + r.Err.Error()
		}
		if _, err := p.Fprintf(w, "%-12s %6d %10d %14d %14d %14d %6.1f%%  %s\n",
			r.Kernel, r.Width, r.Size, r.Stats.Instructions, r.Stats.TotalLanes,
			r.Stats.ActiveLanes, 100*r.Stats.Utilization(), status); err != nil {
			return err
		}
	}

	t := Total(results)
	_, err := p.Fprintf(w, "%-12s %6s %10s %14d %14d %14d %6.1f%%  %d/%d passed\n",
		"total", "", "", t.Instructions, t.TotalLanes, t.ActiveLanes,
		100*t.Utilization(), len(results)-len(Failed(results)), len(results))
	return err
}
