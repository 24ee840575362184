// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/nexpatch/pkg/types"
	"github.com/arthur-debert/nexpatch/pkg/ui/report"
	"github.com/arthur-debert/nexpatch/pkg/ui/styles"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
	sheet  *styles.Sheet
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		sheet:  styles.Default(),
	}, nil
}

// RenderResult renders patch and scan reports with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	w := report.NewWriter(r.output, r.sheet)
	switch v := result.(type) {
	case *types.PatchReport:
		return w.Patch(v)
	case *types.ScanReport:
		return w.Scan(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", r.sheet.Render("Error", "Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
