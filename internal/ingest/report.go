// AngelaMos | 2026
// report.go

package ingest

import (
	"context"
	"fmt"
	"log/slog"
)

// Report summarizes one import run. Success counts committed rows and
// Errors holds one localized message per rejected row.
type Report struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

func NewReport() *Report {
	return &Report{Errors: []string{}}
}

// AddRowError records a per-row failure tagged with the file line number
// and, when known, the row's email.
func (r *Report) AddRowError(line int, email, message string) {
	if email != "" {
		r.Errors = append(r.Errors, fmt.Sprintf("Linha %d (%s): %s", line, email, message))
		return
	}
	r.Errors = append(r.Errors, fmt.Sprintf("Linha %d: %s", line, message))
}

// Notifier receives completion signals for import runs.
type Notifier interface {
	ImportCompleted(ctx context.Context, kind string, report *Report)
}

// SlogNotifier logs import outcomes through the application logger.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) ImportCompleted(ctx context.Context, kind string, report *Report) {
	n.logger.InfoContext(ctx, "import completed",
		slog.String("kind", kind),
		slog.Int("success", report.Success),
		slog.Int("errors", len(report.Errors)),
	)
}
