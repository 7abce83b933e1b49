package document

import (
	"log/slog"
	"time"
)

const (
	fallbackOrganizer = "A Organização"
	fallbackEvent     = "Evento"
)

type Config struct {
	// ImageTimeout bounds each image fetch. Zero means DefaultImageTimeout.
	ImageTimeout time.Duration
}

// Composer lays out certificates and badges. It keeps no per-call state
// and is safe for concurrent use.
type Composer struct {
	measurer     Measurer
	images       ImageProvider
	imageTimeout time.Duration
	logger       *slog.Logger
}

// New builds a composer. A nil measurer falls back to ApproxMeasurer; a nil
// image provider makes every image use its fallback.
func New(measurer Measurer, images ImageProvider, logger *slog.Logger, cfg Config) *Composer {
	if measurer == nil {
		measurer = ApproxMeasurer{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	if cfg.ImageTimeout <= 0 {
		cfg.ImageTimeout = DefaultImageTimeout
	}

	return &Composer{
		measurer:     measurer,
		images:       images,
		imageTimeout: cfg.ImageTimeout,
		logger:       logger.With(slog.String("component", "document.Composer")),
	}
}
