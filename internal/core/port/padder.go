package port

import (
	"context"
	"iconpad/internal/core/domain"
)

type IconPadder interface {
	// Pad shrinks the icon at inputPath, centers it on a transparent canvas and writes the result as PNG to
	// outputPath. A nil error means the output was written.
	Pad(ctx context.Context, inputPath, outputPath string, paddingPercent int) (domain.PadResult, error)
}
