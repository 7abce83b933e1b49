package document

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const ellipsis = "…"

// Measurer reports the rendered width in millimetres of s at size points.
type Measurer interface {
	StringWidth(s string, size float64, bold bool) float64
}

// ApproxMeasurer estimates widths from an average glyph advance. It is used
// when no font-backed measurer is configured.
type ApproxMeasurer struct{}

func (ApproxMeasurer) StringWidth(s string, size float64, bold bool) float64 {
	advance := 0.5
	if bold {
		advance = 0.55
	}
	return float64(utf8.RuneCountInString(s)) * size * PtToMM * advance
}

// Wrap breaks text into lines no wider than maxWidth, splitting on
// whitespace. A single word wider than maxWidth is split between runes.
func Wrap(m Measurer, text string, size float64, bold bool, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   string
	)

	for _, w := range words {
		candidate := w
		if cur != "" {
			candidate = cur + " " + w
		}
		if m.StringWidth(candidate, size, bold) <= maxWidth {
			cur = candidate
			continue
		}

		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}

		if m.StringWidth(w, size, bold) <= maxWidth {
			cur = w
			continue
		}

		pieces := splitRunes(m, w, size, bold, maxWidth)
		lines = append(lines, pieces[:len(pieces)-1]...)
		cur = pieces[len(pieces)-1]
	}

	if cur != "" {
		lines = append(lines, cur)
	}

	return lines
}

func splitRunes(m Measurer, w string, size float64, bold bool, maxWidth float64) []string {
	var (
		out []string
		cur []rune
	)

	for _, r := range w {
		next := append(cur, r)
		if len(cur) > 0 && m.StringWidth(string(next), size, bold) > maxWidth {
			out = append(out, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}

	return append(out, string(cur))
}

// textBlock wraps s and lays it out centred on x with its first baseline at y.
func textBlock(m Measurer, s string, x, y, size float64, bold bool, color Color, maxWidth float64) Text {
	lines := Wrap(m, s, size, bold, maxWidth)

	return Text{
		Lines:      lines,
		X:          x,
		Y:          y,
		Size:       size,
		Bold:       bold,
		Color:      color,
		LineHeight: size * PtToMM * lineSpacing,
		Width:      widest(m, lines, size, bold),
	}
}

// fitBlock is textBlock stepping down through sizes until s wraps to at most
// maxLines. At the last size the overflow is cut and the final kept line ends
// with an ellipsis.
func fitBlock(m Measurer, s string, x, y float64, sizes []float64, bold bool, color Color, maxWidth float64, maxLines int) Text {
	var t Text
	for _, size := range sizes {
		t = textBlock(m, s, x, y, size, bold, color, maxWidth)
		if len(t.Lines) <= maxLines {
			return t
		}
	}

	t.Lines = t.Lines[:maxLines]
	t.Lines[maxLines-1] = ellipsize(m, t.Lines[maxLines-1], t.Size, bold, maxWidth)
	t.Width = widest(m, t.Lines, t.Size, bold)

	return t
}

func ellipsize(m Measurer, line string, size float64, bold bool, maxWidth float64) string {
	r := []rune(line)
	for len(r) > 0 && m.StringWidth(string(r)+ellipsis, size, bold) > maxWidth {
		r = r[:len(r)-1]
	}
	return strings.TrimRightFunc(string(r), unicode.IsSpace) + ellipsis
}

func widest(m Measurer, lines []string, size float64, bold bool) float64 {
	width := 0.0
	for _, l := range lines {
		if w := m.StringWidth(l, size, bold); w > width {
			width = w
		}
	}
	return width
}

// label is a single unwrapped line.
func label(m Measurer, s string, x, y, size float64, bold bool, color Color) Text {
	return Text{
		Lines:      []string{s},
		X:          x,
		Y:          y,
		Size:       size,
		Bold:       bold,
		Color:      color,
		LineHeight: size * PtToMM * lineSpacing,
		Width:      m.StringWidth(s, size, bold),
	}
}
