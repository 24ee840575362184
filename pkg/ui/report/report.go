// Package report lays out patch and scan reports as lines of text. The
// text and terminal renderers share it and differ only in the Styler.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/nexpatch/pkg/types"
)

// Styler decorates text with a named semantic style
type Styler interface {
	Render(name, text string) string
}

// Plain is a Styler that leaves text untouched
type Plain struct{}

// Render returns text as is
func (Plain) Render(_, text string) string { return text }

// Writer renders reports through a Styler
type Writer struct {
	out    io.Writer
	styler Styler
	err    error
}

// NewWriter creates a report writer
func NewWriter(out io.Writer, styler Styler) *Writer {
	if styler == nil {
		styler = Plain{}
	}
	return &Writer{out: out, styler: styler}
}

// printf records the first write error and skips later writes
func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

func (w *Writer) style(name, text string) string {
	return w.styler.Render(name, text)
}

// Patch writes a patch report
func (w *Writer) Patch(r *types.PatchReport) error {
	skipped := 0
	for _, res := range r.Results {
		if res.Skipped {
			skipped++
		}
	}

	w.printf("%s\n", w.style("Header", fmt.Sprintf(
		"Patched %d of %d projects (%d written, %d skipped, %d failed)",
		len(r.Results)-skipped, len(r.Results)+len(r.Failures), r.Written(), skipped, len(r.Failures))))

	for _, res := range r.Results {
		w.patchResult(res)
	}
	w.failures(r.Failures)
	return w.err
}

func (w *Writer) patchResult(res *types.PatchResult) {
	name := w.style("Project", res.Project.UID)
	if res.Skipped {
		w.printf("%s  %s\n", name, w.style("Skipped", "skipped (no eligible assets)"))
		return
	}

	status := w.style("Muted", "unchanged")
	if res.Written {
		status = w.style("Written", "written")
	}
	w.printf("%s  %s  %s  %s\n", name, w.style("FilePath", res.TemplatePath), status,
		w.style("Muted", fmt.Sprintf("%d marked, %d changed", res.Visited, len(res.Changes))))

	for _, c := range res.Changes {
		w.printf("  #%-3d %s -> %s\n", c.Index, w.style("Old", c.Old), w.style("New", c.New))
	}
}

// Scan writes a scan report
func (w *Writer) Scan(r *types.ScanReport) error {
	marked := 0
	for _, res := range r.Results {
		marked += len(res.Marked)
	}

	w.printf("%s\n", w.style("Header", fmt.Sprintf(
		"Scanned %d projects: %d marked string nodes, %d failed",
		len(r.Results)+len(r.Failures), marked, len(r.Failures))))

	for _, res := range r.Results {
		w.scanResult(res)
	}
	w.failures(r.Failures)
	return w.err
}

func (w *Writer) scanResult(res *types.ScanResult) {
	name := w.style("Project", res.Project.UID)
	if res.Skipped {
		w.printf("%s  %s\n", name, w.style("Skipped", "skipped (no eligible assets)"))
		return
	}

	w.printf("%s  %s  %s\n", name, w.style("FilePath", res.TemplatePath),
		w.style("Muted", fmt.Sprintf("%d of %d string nodes marked, destination %s", len(res.Marked), res.StringNodes, res.Destination)))

	for _, node := range res.Marked {
		w.printf("  #%-3d %s -> %s\n", node.Index, w.style("Old", node.Payload), w.style("New", node.Result))
		for _, p := range node.Paths {
			w.printf("       %s%s\n", w.style("Style", fmt.Sprintf("%-5s", p.Style)), p.Text)
		}
	}
}

func (w *Writer) failures(failures []types.ProjectFailure) {
	for _, f := range failures {
		w.printf("%s  %s %s\n", w.style("Project", f.Project),
			w.style("Error", "failed ["+f.Code+"]"), strings.TrimSpace(f.Error))
	}
}
