package service

import (
	"fmt"
	"iconpad/internal/core/domain"
	"io"
)

const regenerateHint = "./generate_app_icons.sh && ./refresh_app_icon.sh"

func writeSummary(w io.Writer, paddingPercent int, res domain.PadResult) {
	scale := domain.PaddingConfig{PaddingPercent: paddingPercent}.ContentScale()

	width, height := res.OutputWidth, res.OutputHeight
	if width == 0 || height == 0 {
		width, height = domain.CanvasSize, domain.CanvasSize
	}

	_, _ = fmt.Fprintf(w, "\nchanges:\n")
	_, _ = fmt.Fprintf(w, "  - icon content scaled to %d%% (%dx%d -> %dx%d)\n", scale,
		res.SourceWidth, res.SourceHeight, res.ContentSize, res.ContentSize)
	_, _ = fmt.Fprintf(w, "  - %d%% transparent padding added on every side\n", paddingPercent)
	_, _ = fmt.Fprintf(w, "  - background fully transparent\n")
	_, _ = fmt.Fprintf(w, "  - final size %dx%d px\n", width, height)
	_, _ = fmt.Fprintf(w, "\nregenerate the app icon set to pick up the change:\n  %s\n", regenerateHint)
}
