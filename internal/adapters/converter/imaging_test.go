package converter

import (
	"context"
	"iconpad/internal/core/domain"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
	return path
}

func uniformGray(w, h int, y uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = y
	}
	return img
}

func uniformNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func readOutput(t *testing.T, path string) *image.NRGBA {
	t.Helper()

	img, err := imaging.Open(path)
	require.NoError(t, err)
	return toNRGBA(img)
}

func TestPadOpaqueSource(t *testing.T) {
	input := writeFixture(t, uniformGray(200, 200, 180))
	output := filepath.Join(t.TempDir(), "out.png")

	res, err := NewImagingPadder().Pad(context.Background(), input, output, 15)
	require.NoError(t, err)

	assert.Equal(t, 200, res.SourceWidth)
	assert.Equal(t, 200, res.SourceHeight)
	assert.Equal(t, 170, res.ContentSize)
	assert.Equal(t, image.Pt(939, 939), res.Offset)
	assert.Equal(t, domain.CanvasSize, res.OutputWidth)
	assert.Equal(t, domain.CanvasSize, res.OutputHeight)
	assert.Equal(t, "NRGBA", res.OutputMode)

	out := readOutput(t, output)
	require.Equal(t, image.Rect(0, 0, domain.CanvasSize, domain.CanvasSize), out.Bounds())

	last := domain.CanvasSize - 1
	transparent := []image.Point{
		{0, 0}, {last, 0}, {0, last}, {last, last},
		{938, 1024}, {1109, 1024}, {1024, 938}, {1024, 1109},
	}
	for _, p := range transparent {
		assert.Equal(t, uint8(0), out.NRGBAAt(p.X, p.Y).A, "pixel %v should be transparent", p)
	}

	for _, p := range []image.Point{{939, 939}, {1108, 1108}, {939, 1108}, {1108, 939}} {
		assert.Greater(t, out.NRGBAAt(p.X, p.Y).A, uint8(0), "pixel %v should be covered", p)
	}

	center := out.NRGBAAt(1024, 1024)
	assert.InDelta(t, 255, int(center.A), 1)
	assert.InDelta(t, 180, int(center.R), 1)
	assert.InDelta(t, 180, int(center.G), 1)
	assert.InDelta(t, 180, int(center.B), 1)
}

func TestPadKeepsSourceAlpha(t *testing.T) {
	input := writeFixture(t, uniformNRGBA(100, 100, color.NRGBA{R: 255, A: 128}))
	output := filepath.Join(t.TempDir(), "out.png")

	res, err := NewImagingPadder().Pad(context.Background(), input, output, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, res.ContentSize)
	assert.Equal(t, image.Pt(974, 974), res.Offset)

	out := readOutput(t, output)
	center := out.NRGBAAt(1024, 1024)
	assert.InDelta(t, 64, int(center.A), 1)
	assert.InDelta(t, 128, int(center.R), 1)
	assert.Equal(t, uint8(0), center.G)
	assert.Equal(t, uint8(0), out.NRGBAAt(973, 1024).A)
}

func TestPadNonSquareUsesMinSide(t *testing.T) {
	input := writeFixture(t, uniformGray(300, 200, 90))
	output := filepath.Join(t.TempDir(), "out.png")

	res, err := NewImagingPadder().Pad(context.Background(), input, output, 15)
	require.NoError(t, err)
	assert.Equal(t, 300, res.SourceWidth)
	assert.Equal(t, 200, res.SourceHeight)
	assert.Equal(t, 170, res.ContentSize)
}

func TestPadSourceLargerThanCanvas(t *testing.T) {
	input := writeFixture(t, uniformGray(2100, 2100, 255))
	output := filepath.Join(t.TempDir(), "out.png")

	res, err := NewImagingPadder().Pad(context.Background(), input, output, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(-26, -26), res.Offset)

	out := readOutput(t, output)
	assert.Equal(t, uint8(255), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(domain.CanvasSize-1, domain.CanvasSize-1).A)
}

func TestPadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("definitely not a png"), 0o644))
	valid := writeFixture(t, uniformGray(64, 64, 10))
	tiny := writeFixture(t, uniformGray(1, 1, 10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		input   string
		output  string
		percent int
		wantErr error
	}{
		{
			name:    "missing input",
			ctx:     context.Background(),
			input:   filepath.Join(dir, "missing.png"),
			output:  filepath.Join(dir, "out1.png"),
			percent: 15,
			wantErr: domain.ErrDecode,
		},
		{
			name:    "corrupt input",
			ctx:     context.Background(),
			input:   corrupt,
			output:  filepath.Join(dir, "out2.png"),
			percent: 15,
			wantErr: domain.ErrDecode,
		},
		{
			name:    "padding of hundred",
			ctx:     context.Background(),
			input:   valid,
			output:  filepath.Join(dir, "out3.png"),
			percent: 100,
			wantErr: domain.ErrInvalidPadding,
		},
		{
			name:    "content rounds to zero",
			ctx:     context.Background(),
			input:   tiny,
			output:  filepath.Join(dir, "out4.png"),
			percent: 15,
			wantErr: domain.ErrInvalidPadding,
		},
		{
			name:    "unwritable output",
			ctx:     context.Background(),
			input:   valid,
			output:  filepath.Join(dir, "no-such-dir", "out5.png"),
			percent: 15,
			wantErr: domain.ErrProcessing,
		},
		{
			name:    "cancelled context",
			ctx:     ctx,
			input:   valid,
			output:  filepath.Join(dir, "out6.png"),
			percent: 15,
			wantErr: domain.ErrProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImagingPadder().Pad(tt.ctx, tt.input, tt.output, tt.percent)
			require.ErrorIs(t, err, tt.wantErr)

			_, statErr := os.Stat(tt.output)
			assert.ErrorIs(t, statErr, os.ErrNotExist)
		})
	}
}

func TestPasteMasked(t *testing.T) {
	tests := []struct {
		name string
		dst  color.NRGBA
		src  color.NRGBA
		want color.NRGBA
	}{
		{
			name: "opaque source replaces",
			dst:  color.NRGBA{},
			src:  color.NRGBA{R: 200, G: 100, B: 50, A: 255},
			want: color.NRGBA{R: 200, G: 100, B: 50, A: 255},
		},
		{
			name: "half alpha on transparent scales every channel",
			dst:  color.NRGBA{},
			src:  color.NRGBA{R: 255, A: 128},
			want: color.NRGBA{R: 128, A: 64},
		},
		{
			name: "transparent source keeps destination",
			dst:  color.NRGBA{R: 10, G: 20, B: 30, A: 40},
			src:  color.NRGBA{R: 255, G: 255, B: 255},
			want: color.NRGBA{R: 10, G: 20, B: 30, A: 40},
		},
		{
			name: "half alpha over opaque destination",
			dst:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			src:  color.NRGBA{A: 128},
			want: color.NRGBA{R: 127, G: 127, B: 127, A: 191},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := uniformNRGBA(4, 4, tt.dst)
			pasteMasked(dst, uniformNRGBA(2, 2, tt.src), image.Pt(1, 1))

			assert.Equal(t, tt.want, dst.NRGBAAt(1, 1))
			assert.Equal(t, tt.want, dst.NRGBAAt(2, 2))
			assert.Equal(t, tt.dst, dst.NRGBAAt(0, 0))
			assert.Equal(t, tt.dst, dst.NRGBAAt(3, 3))
		})
	}
}

func TestPasteMaskedCropsNegativeOffset(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	src := uniformNRGBA(4, 4, color.NRGBA{R: 9, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{G: 7, A: 255})

	pasteMasked(dst, src, image.Pt(-1, -1))

	assert.Equal(t, color.NRGBA{G: 7, A: 255}, dst.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 9, A: 255}, dst.NRGBAAt(2, 2))
}

func TestModeName(t *testing.T) {
	tests := []struct {
		name      string
		model     color.Model
		want      string
		wantAlpha bool
	}{
		{name: "nrgba", model: color.NRGBAModel, want: "NRGBA", wantAlpha: true},
		{name: "rgba", model: color.RGBAModel, want: "RGBA", wantAlpha: true},
		{name: "gray", model: color.GrayModel, want: "Gray"},
		{name: "ycbcr", model: color.YCbCrModel, want: "YCbCr"},
		{name: "palette", model: color.Palette{color.Black, color.White}, want: "Paletted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, modeName(tt.model))
			if _, ok := tt.model.(color.Palette); !ok {
				assert.Equal(t, tt.wantAlpha, hasAlpha(tt.model))
			}
		})
	}
}

func TestToNRGBAMovesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 20, 30))
	src.SetNRGBA(10, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	dst := toNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 10, 20), dst.Bounds())
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, dst.NRGBAAt(0, 0))
}
