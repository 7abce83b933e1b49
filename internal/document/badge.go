package document

import (
	"context"
	"math"

	"github.com/kirinyoku/eventdocs/internal/domain"
)

const (
	badgeWidth  = 70.0
	badgeHeight = 100.0
)

// ComposeBadge lays out a participant badge. When the organizer logo is
// missing or cannot be loaded, the organizer name is printed in its place.
func (c *Composer) ComposeBadge(ctx context.Context, participant domain.ParticipantRecord, event domain.EventRecord) *Page {
	const (
		inset    = 2.0
		logoSize = 20.0
		logoTop  = 8.0
		margin   = 10.0
	)

	p := &Page{
		Name:        artifactName("cracha", participant.Name),
		Width:       badgeWidth,
		Height:      badgeHeight,
		Orientation: Portrait,
	}

	cx := badgeWidth / 2
	textWidth := badgeWidth - 2*margin

	var logoURL string
	if event.Organizer != nil {
		logoURL = event.Organizer.LogoURL
	}
	logo := c.loadImages(ctx, p.Name, logoURL)[0]

	p.add(Rect{
		X:         inset,
		Y:         inset,
		W:         badgeWidth - 2*inset,
		H:         badgeHeight - 2*inset,
		Stroke:    BrandBlue,
		LineWidth: 1,
	})

	if logo != nil {
		p.add(Image{
			X:      cx - logoSize/2,
			Y:      logoTop,
			W:      logoSize,
			H:      logoSize,
			Source: logoURL,
			Format: logo.Format,
			Data:   logo.Data,
		})
	} else {
		name := event.Organizer.DisplayName(fallbackEvent)
		p.add(fitBlock(c.measurer, name, cx, logoTop+logoSize/2+1.5, []float64{11, 9}, true, BrandBlue, badgeWidth-2*5, 2))
	}

	nameBlock := fitBlock(c.measurer, participant.Name, cx, badgeHeight*0.45, []float64{18, 15, 12, 10}, true, BrandBlue, textWidth, 2)
	caption := label(c.measurer, "PARTICIPANTE", cx, nameBlock.LastBaseline()+8, 10, false, MediumGray)
	p.add(nameBlock, caption)

	dividerY := math.Max(badgeHeight*0.65, caption.LastBaseline()+4)
	p.add(
		Line{
			X1:        inset,
			Y1:        dividerY,
			X2:        badgeWidth - inset,
			Y2:        dividerY,
			Color:     BrandBlue,
			LineWidth: 0.5,
		},
		fitBlock(c.measurer, event.Name, cx, dividerY+10, []float64{12, 10, 8}, true, TextDark, textWidth, 3),
	)

	return p
}
