package pdf

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/kirinyoku/eventdocs/internal/document"
	"github.com/kirinyoku/eventdocs/internal/domain"
)

type staticImages map[string]document.Bitmap

func (s staticImages) Image(_ context.Context, url string) (document.Bitmap, error) {
	return s[url], nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// interlacedPNG sets the Adam7 flag on a valid 1x1 PNG. The pixel data is
// not re-encoded; only the header matters to the checks under test.
func interlacedPNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	b := buf.Bytes()
	b[28] = 1
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMeasurer_StringWidth(t *testing.T) {
	t.Parallel()

	m := NewMeasurer()

	regular := m.StringWidth("Certificado", 12, false)
	bold := m.StringWidth("Certificado", 12, true)
	if regular <= 0 {
		t.Fatalf("expected positive width, got %v", regular)
	}
	if bold <= regular {
		t.Fatalf("expected bold wider than regular, got %v <= %v", bold, regular)
	}
	if double := m.StringWidth("Certificado", 24, false); double <= regular*1.9 {
		t.Fatalf("expected width to scale with size, got %v vs %v", double, regular)
	}
	if m.StringWidth("Participação", 12, false) <= 0 {
		t.Fatalf("expected accented text to measure")
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	logo := "https://cdn.example.com/logo.png"
	composer := document.New(NewMeasurer(), staticImages{
		logo: {Data: pngBytes(t), Format: "PNG", Width: 4, Height: 4},
	}, discardLogger(), document.Config{})

	event := domain.EventRecord{
		Name: "Semana de Tecnologia",
		Date: "2024-05-10",
		Organizer: &domain.OrganizerRecord{
			CompanyName: "Acme Eventos",
			LogoURL:     logo,
		},
	}

	r := NewRenderer(discardLogger())

	pages := []*document.Page{
		composer.ComposeCertificate(domain.ParticipantRecord{Name: "Ana de Souza"}, event),
		composer.ComposeBadge(context.Background(), domain.ParticipantRecord{Name: "Ana de Souza"}, event),
		composer.ComposeCollaboratorBadge(context.Background(), domain.CollaboratorRecord{Name: "João", Role: "staff"}, event.Organizer, event),
	}

	for _, p := range pages {
		out, err := r.Render(p)
		if err != nil {
			t.Fatalf("render %s: %v", p.Name, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("expected PDF header for %s", p.Name)
		}
	}
}

func TestRenderer_SkipsBrokenImage(t *testing.T) {
	t.Parallel()

	p := &document.Page{
		Name:   "broken",
		Width:  70,
		Height: 100,
		Ops: []document.Op{
			document.Image{X: 0, Y: 0, W: 10, H: 10, Format: "PNG", Data: []byte("not a png")},
			document.Line{X1: 0, Y1: 50, X2: 70, Y2: 50, LineWidth: 0.5},
		},
	}

	out, err := NewRenderer(discardLogger()).Render(p)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected PDF header")
	}
}

func TestCheckImage(t *testing.T) {
	t.Parallel()

	if err := CheckImage(document.Bitmap{Data: pngBytes(t), Format: "PNG"}); err != nil {
		t.Fatalf("expected plain png to pass, got %v", err)
	}

	err := CheckImage(document.Bitmap{Data: interlacedPNG(t), Format: "PNG"})
	if !errors.Is(err, document.ErrNotEmbeddable) {
		t.Fatalf("expected ErrNotEmbeddable for interlaced png, got %v", err)
	}
}

func TestRenderer_InterlacedImagesUseFallbacks(t *testing.T) {
	t.Parallel()

	logo := "https://cdn.example.com/interlaced-logo.png"
	banner := "https://cdn.example.com/interlaced-banner.png"
	bad := document.Bitmap{Data: interlacedPNG(t), Format: "PNG", Width: 1, Height: 1}
	composer := document.New(NewMeasurer(), staticImages{logo: bad, banner: bad}, discardLogger(), document.Config{})

	event := domain.EventRecord{
		Name:           "Semana de Tecnologia",
		Date:           "2024-05-10",
		BannerImageURL: banner,
		Organizer: &domain.OrganizerRecord{
			CompanyName: "Acme Eventos",
			LogoURL:     logo,
		},
	}

	badge := composer.ComposeBadge(context.Background(), domain.ParticipantRecord{Name: "Ana"}, event)
	foundOrganizer := false
	for _, txt := range badge.Texts() {
		if len(txt.Lines) == 1 && txt.Lines[0] == "Acme Eventos" {
			foundOrganizer = true
		}
	}
	if !foundOrganizer {
		t.Fatalf("expected organizer name in place of the logo, texts: %+v", badge.Texts())
	}

	collab := composer.ComposeCollaboratorBadge(context.Background(), domain.CollaboratorRecord{Name: "João"}, event.Organizer, event)
	band, ok := collab.Ops[0].(document.Rect)
	if !ok || band.Fill == nil || *band.Fill != document.BandDark {
		t.Fatalf("expected dark band fill, got %+v", collab.Ops[0])
	}
	for _, op := range collab.Ops {
		if _, ok := op.(document.Image); ok {
			t.Fatalf("expected no image ops, got %+v", op)
		}
	}

	r := NewRenderer(discardLogger())
	for _, p := range []*document.Page{badge, collab} {
		if _, err := r.Render(p); err != nil {
			t.Fatalf("render %s: %v", p.Name, err)
		}
	}
}
