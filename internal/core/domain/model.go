package domain

import (
	"fmt"
	"image"
)

type PaddingConfig struct {
	PaddingPercent int
}

// Validate rejects padding values that would leave no room for content.
func (c PaddingConfig) Validate() error {
	if c.PaddingPercent < 0 || c.PaddingPercent >= 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidPadding, c.PaddingPercent)
	}
	return nil
}

// ContentScale is the share of the original minimum side kept as content.
func (c PaddingConfig) ContentScale() int {
	return 100 - c.PaddingPercent
}

// ContentSize returns the side of the shrunk content square. It is derived
// from the source dimensions, not from the canvas.
func ContentSize(minSide, paddingPercent int) int {
	return minSide * (100 - paddingPercent) / 100
}

// PasteOffset returns the top-left coordinate that centers a square of
// contentSize on the canvas. Content larger than the canvas yields a negative
// offset and is cropped on paste.
func PasteOffset(contentSize int) int {
	return floorDiv(CanvasSize-contentSize, 2)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

type PadResult struct {
	SourceWidth  int
	SourceHeight int
	ContentSize  int
	Offset       image.Point
	OutputWidth  int
	OutputHeight int
	OutputMode   string
}
