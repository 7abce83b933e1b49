package document

import (
	"context"
	"math"
	"strings"

	"github.com/kirinyoku/eventdocs/internal/domain"
)

// A7 portrait.
const (
	collabWidth  = 74.0
	collabHeight = 105.0
)

// ComposeCollaboratorBadge lays out a staff badge with a banner band on top.
// The event banner wins over the organizer banner; without a loadable banner
// the band is filled with a dark colour. The logo sits on a white disc
// centred on the band's lower edge and is omitted if it cannot be loaded.
func (c *Composer) ComposeCollaboratorBadge(
	ctx context.Context,
	collaborator domain.CollaboratorRecord,
	organizer *domain.OrganizerRecord,
	event domain.EventRecord,
) *Page {
	const (
		logoSize   = 24.0
		logoRadius = 13.0
		margin     = 5.0
	)

	p := &Page{
		Name:        artifactName("cracha_colaborador", collaborator.Name),
		Width:       collabWidth,
		Height:      collabHeight,
		Orientation: Portrait,
	}

	cx := collabWidth / 2
	bandH := collabHeight * 0.30
	textWidth := collabWidth - 2*margin

	bannerURL := event.BannerImageURL
	var logoURL string
	if organizer != nil {
		if bannerURL == "" {
			bannerURL = organizer.BannerImageURL
		}
		logoURL = organizer.LogoURL
	}

	imgs := c.loadImages(ctx, p.Name, bannerURL, logoURL)
	banner, logo := imgs[0], imgs[1]

	if banner != nil {
		p.add(Image{
			X:      0,
			Y:      0,
			W:      collabWidth,
			H:      bandH,
			Source: bannerURL,
			Format: banner.Format,
			Data:   banner.Data,
		})
	} else {
		fill := BandDark
		p.add(Rect{X: 0, Y: 0, W: collabWidth, H: bandH, Fill: &fill})
	}

	if logo != nil {
		p.add(
			Circle{X: cx, Y: bandH, R: logoRadius, Fill: White},
			Image{
				X:      cx - logoSize/2,
				Y:      bandH - logoSize/2,
				W:      logoSize,
				H:      logoSize,
				Source: logoURL,
				Format: logo.Format,
				Data:   logo.Data,
			},
		)
	}

	nameBlock := fitBlock(c.measurer, collaborator.Name, cx, 58, []float64{18, 15, 12}, true, NearBlack, textWidth, 2)
	roleBlock := fitBlock(c.measurer, strings.ToUpper(collaborator.Role), cx, nameBlock.LastBaseline()+7, []float64{11, 9}, false, MediumGray, textWidth, 1)
	p.add(nameBlock, roleBlock)

	dividerY := math.Max(78, roleBlock.LastBaseline()+5)
	p.add(
		Line{
			X1:        0,
			Y1:        dividerY,
			X2:        collabWidth,
			Y2:        dividerY,
			Color:     DividerGray,
			LineWidth: 0.4,
		},
		fitBlock(c.measurer, event.Name, cx, dividerY+8, []float64{12, 10}, true, NearBlack, textWidth, 2),
		label(c.measurer, FormatDate(event.Date), cx, collabHeight-5, 8, false, LightGray),
	)

	return p
}
