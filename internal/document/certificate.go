package document

import (
	"fmt"
	"math"

	"github.com/kirinyoku/eventdocs/internal/domain"
)

// A4 landscape.
const (
	certWidth  = 297.0
	certHeight = 210.0
)

// ComposeCertificate lays out a participation certificate.
func (c *Composer) ComposeCertificate(participant domain.ParticipantRecord, event domain.EventRecord) *Page {
	const (
		inset          = 5.0
		sideMargin     = 20.0
		signatureWidth = 100.0
	)

	p := &Page{
		Name:        artifactName("certificado", participant.Name, event.Name),
		Width:       certWidth,
		Height:      certHeight,
		Orientation: Landscape,
	}

	cx := certWidth / 2
	textWidth := certWidth - 2*sideMargin

	p.add(Rect{
		X:         inset,
		Y:         inset,
		W:         certWidth - 2*inset,
		H:         certHeight - 2*inset,
		Stroke:    BrandBlue,
		LineWidth: 2,
	})

	// Long names shrink, then get cut to three lines; the body follows the
	// name and the signature block sits below both.
	nameBlock := fitBlock(c.measurer, participant.Name, cx, 90, []float64{26, 22, 18, 14}, true, AccentOrange, textWidth, 3)
	p.add(
		label(c.measurer, "Certificado de Participação", cx, 40, 30, true, BrandBlue),
		label(c.measurer, "Este certificado é concedido a", cx, 70, 16, false, TextDark),
		nameBlock,
	)

	body := fmt.Sprintf("por sua participação no evento \"%s\", realizado em %s.", event.Name, FormatDate(event.Date))
	bodyBlock := fitBlock(c.measurer, body, cx, math.Max(110, nameBlock.LastBaseline()+10), []float64{14, 12, 10}, false, TextDark, textWidth, 3)
	p.add(bodyBlock)

	orgY := math.Max(certHeight-40, bodyBlock.LastBaseline()+15)
	p.add(
		Line{
			X1:        cx - signatureWidth/2,
			Y1:        orgY - 5,
			X2:        cx + signatureWidth/2,
			Y2:        orgY - 5,
			Color:     TextDark,
			LineWidth: 0.5,
		},
		label(c.measurer, event.Organizer.DisplayName(fallbackOrganizer), cx, orgY, 14, true, TextDark),
		label(c.measurer, "Organizador do Evento", cx, orgY+6, 10, false, MediumGray),
	)

	return p
}
