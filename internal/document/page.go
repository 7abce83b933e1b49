package document

import "encoding/json"

// PtToMM converts a font size in points to millimetres.
const PtToMM = 25.4 / 72

// lineSpacing is the baseline-to-baseline distance as a multiple of the
// font size.
const lineSpacing = 1.15

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	BrandBlue    = Color{R: 30, G: 64, B: 175}
	AccentOrange = Color{R: 234, G: 88, B: 12}
	TextDark     = Color{R: 55, G: 65, B: 81}
	NearBlack    = Color{R: 17, G: 24, B: 39}
	MediumGray   = Color{R: 107, G: 114, B: 128}
	LightGray    = Color{R: 156, G: 163, B: 175}
	DividerGray  = Color{R: 209, G: 213, B: 219}
	BandDark     = Color{R: 31, G: 41, B: 55}
	White        = Color{R: 255, G: 255, B: 255}
)

// Page is a fixed-size sheet described as draw operations in paint order.
// All coordinates are millimetres from the top-left corner.
type Page struct {
	Name        string      `json:"name"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation Orientation `json:"orientation"`
	Ops         []Op        `json:"-"`
}

// FileName is the download name of the rendered page.
func (p *Page) FileName() string {
	return p.Name + ".pdf"
}

func (p *Page) add(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// Texts returns the text operations of the page in paint order.
func (p *Page) Texts() []Text {
	var out []Text
	for _, op := range p.Ops {
		if t, ok := op.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

type opEnvelope struct {
	Kind string `json:"kind"`
	Op   Op     `json:"op"`
}

func (p *Page) MarshalJSON() ([]byte, error) {
	type page Page
	ops := make([]opEnvelope, 0, len(p.Ops))
	for _, op := range p.Ops {
		ops = append(ops, opEnvelope{Kind: op.Kind(), Op: op})
	}

	return json.Marshal(struct {
		*page
		Ops []opEnvelope `json:"ops"`
	}{page: (*page)(p), Ops: ops})
}

// Op is one drawing instruction.
type Op interface {
	Kind() string
}

// Rect is stroked when LineWidth > 0 and filled when Fill is set.
type Rect struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Stroke    Color   `json:"stroke"`
	LineWidth float64 `json:"line_width"`
	Fill      *Color  `json:"fill,omitempty"`
}

func (Rect) Kind() string { return "rect" }

type Line struct {
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Color     Color   `json:"color"`
	LineWidth float64 `json:"line_width"`
}

func (Line) Kind() string { return "line" }

// Circle is a filled disc.
type Circle struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	R    float64 `json:"r"`
	Fill Color   `json:"fill"`
}

func (Circle) Kind() string { return "circle" }

// Text is a block of pre-wrapped lines centred on X. Y is the baseline of
// the first line; following lines are LineHeight apart.
type Text struct {
	Lines      []string `json:"lines"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Size       float64  `json:"size"`
	Bold       bool     `json:"bold"`
	Color      Color    `json:"color"`
	LineHeight float64  `json:"line_height"`
	Width      float64  `json:"width"`
}

func (Text) Kind() string { return "text" }

// LastBaseline is the baseline of the final line.
func (t Text) LastBaseline() float64 {
	if len(t.Lines) <= 1 {
		return t.Y
	}
	return t.Y + float64(len(t.Lines)-1)*t.LineHeight
}

// Bounds approximates the ink box of the block from the font size.
func (t Text) Bounds() Box {
	em := t.Size * PtToMM
	return Box{
		X0: t.X - t.Width/2,
		Y0: t.Y - 0.8*em,
		X1: t.X + t.Width/2,
		Y1: t.LastBaseline() + 0.25*em,
	}
}

// Image draws Data scaled into the box. Format is an fpdf image type name
// ("PNG", "JPG", "GIF").
type Image struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Source string  `json:"source"`
	Format string  `json:"format"`
	Data   []byte  `json:"-"`
}

func (Image) Kind() string { return "image" }

type Box struct {
	X0, Y0, X1, Y1 float64
}

func (b Box) Overlaps(o Box) bool {
	return b.X0 < o.X1 && o.X0 < b.X1 && b.Y0 < o.Y1 && o.Y0 < b.Y1
}
