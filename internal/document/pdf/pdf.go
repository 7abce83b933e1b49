// Package pdf renders composed pages with fpdf and provides font metrics
// that match the rendered output.
package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-pdf/fpdf"
	"github.com/kirinyoku/eventdocs/internal/document"
)

const fontFamily = "Helvetica"

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// Measurer reports string widths using fpdf's core Helvetica metrics. Text
// is translated to cp1252 first, the same way Render does.
type Measurer struct {
	mu  sync.Mutex
	doc *fpdf.Fpdf
	tr  func(string) string
}

func NewMeasurer() *Measurer {
	doc := fpdf.New("P", "mm", "A4", "")
	return &Measurer{
		doc: doc,
		tr:  doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (m *Measurer) StringWidth(s string, size float64, bold bool) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc.SetFont(fontFamily, fontStyle(bold), size)
	return m.doc.GetStringWidth(m.tr(s))
}

// CheckImage registers bm on a scratch document and reports the error fpdf
// would raise while rendering it.
func CheckImage(bm document.Bitmap) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.RegisterImageOptionsReader("check", fpdf.ImageOptions{ImageType: bm.Format}, bytes.NewReader(bm.Data))
	if doc.Err() {
		return fmt.Errorf("%w: %v", document.ErrNotEmbeddable, doc.Error())
	}
	return nil
}

type Renderer struct {
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger.With(slog.String("component", "pdf.Renderer"))}
}

// Render draws every op of p onto a single PDF page. An image fpdf cannot
// embed is skipped and logged.
func (r *Renderer) Render(p *document.Page) ([]byte, error) {
	const op = "pdf.Renderer.Render"

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: p.Width, Ht: p.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(p.Name, true)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	for i, o := range p.Ops {
		switch v := o.(type) {
		case document.Rect:
			style := ""
			if v.LineWidth > 0 {
				doc.SetLineWidth(v.LineWidth)
				doc.SetDrawColor(rgb(v.Stroke))
				style += "D"
			}
			if v.Fill != nil {
				doc.SetFillColor(rgb(*v.Fill))
				style = "F" + style
			}
			if style != "" {
				doc.Rect(v.X, v.Y, v.W, v.H, style)
			}

		case document.Line:
			doc.SetLineWidth(v.LineWidth)
			doc.SetDrawColor(rgb(v.Color))
			doc.Line(v.X1, v.Y1, v.X2, v.Y2)

		case document.Circle:
			doc.SetFillColor(rgb(v.Fill))
			doc.Circle(v.X, v.Y, v.R, "F")

		case document.Text:
			doc.SetFont(fontFamily, fontStyle(v.Bold), v.Size)
			doc.SetTextColor(rgb(v.Color))
			for n, line := range v.Lines {
				s := tr(line)
				y := v.Y + float64(n)*v.LineHeight
				doc.Text(v.X-doc.GetStringWidth(s)/2, y, s)
			}

		case document.Image:
			name := fmt.Sprintf("img-%d", i)
			opts := fpdf.ImageOptions{ImageType: v.Format}
			doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(v.Data))
			if doc.Err() {
				r.logger.Warn("skipping image",
					slog.String("page", p.Name),
					slog.String("source", v.Source),
					slog.Any("error", doc.Error()),
				)
				doc.ClearError()
				continue
			}
			doc.ImageOptions(name, v.X, v.Y, v.W, v.H, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func rgb(c document.Color) (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}
