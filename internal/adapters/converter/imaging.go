package converter

import (
	"context"
	"fmt"
	"iconpad/internal/core/domain"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
)

type ImagingPadder struct {
	canvasSize int
	filter     imaging.ResampleFilter
}

func NewImagingPadder() *ImagingPadder {
	return &ImagingPadder{canvasSize: domain.CanvasSize, filter: imaging.Lanczos}
}

func (p *ImagingPadder) Pad(ctx context.Context, inputPath, outputPath string, paddingPercent int) (domain.PadResult,
	error) {
	l := log.With().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("paddingPercent", paddingPercent).
		Logger()

	var res domain.PadResult

	if err := (domain.PaddingConfig{PaddingPercent: paddingPercent}).Validate(); err != nil {
		l.Error().Err(err).Msg("refusing to pad icon")
		return res, err
	}

	l.Info().Msg("reading source icon")
	src, err := imaging.Open(inputPath)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrDecode, err)
		l.Error().Err(err).Send()
		return res, err
	}

	if !hasAlpha(src.ColorModel()) {
		l.Debug().Str("mode", modeName(src.ColorModel())).Msg("converting source to NRGBA")
	}
	nrgba := toNRGBA(src)

	res.SourceWidth, res.SourceHeight = nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	res.ContentSize = domain.ContentSize(min(res.SourceWidth, res.SourceHeight), paddingPercent)
	l.Info().
		Int("width", res.SourceWidth).
		Int("height", res.SourceHeight).
		Int("contentSize", res.ContentSize).
		Msg("computed content size")

	if res.ContentSize <= 0 {
		err = fmt.Errorf("%w: content size of %dx%d source is zero", domain.ErrInvalidPadding,
			res.SourceWidth, res.SourceHeight)
		l.Error().Err(err).Send()
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("%w: %w", domain.ErrProcessing, err)
	}

	resized := imaging.Resize(nrgba, res.ContentSize, res.ContentSize, p.filter)

	offset := domain.PasteOffset(res.ContentSize)
	res.Offset = image.Pt(offset, offset)
	l.Debug().Int("x", offset).Int("y", offset).Int("canvas", p.canvasSize).Msg("pasting content onto canvas")

	canvas := imaging.New(p.canvasSize, p.canvasSize, color.NRGBA{})
	pasteMasked(canvas, resized, res.Offset)

	if err := writePNG(canvas, outputPath); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrProcessing, err)
		l.Error().Err(err).Send()
		return res, err
	}

	l.Info().Msg("saved padded icon")

	cfg, err := readConfig(outputPath)
	if err != nil {
		l.Warn().Err(err).Msg("could not verify saved icon")
		return res, nil
	}

	res.OutputWidth, res.OutputHeight = cfg.Width, cfg.Height
	res.OutputMode = modeName(cfg.ColorModel)
	l.Info().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Str("mode", res.OutputMode).
		Msg("verified saved icon")

	return res, nil
}

// pasteMasked moves every channel of dst, alpha included, toward src by the
// alpha of the src pixel. Pixels falling outside dst are cropped.
func pasteMasked(dst, src *image.NRGBA, pos image.Point) {
	sb := src.Bounds()
	r := sb.Add(pos.Sub(sb.Min)).Intersect(dst.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X-pos.X+sb.Min.X, y-pos.Y+sb.Min.Y)
		for x := r.Min.X; x < r.Max.X; x++ {
			mask := int(src.Pix[si+3])
			for c := 0; c < 4; c++ {
				dst.Pix[di+c] = blend(dst.Pix[di+c], src.Pix[si+c], mask)
			}
			di += 4
			si += 4
		}
	}
}

// blend returns d + (s-d)*mask/255, rounded.
func blend(d, s uint8, mask int) uint8 {
	tmp := (int(s)-int(d))*mask + 128
	return uint8(int(d) + ((tmp>>8)+tmp)>>8)
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file %w", err)
	}

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		return fmt.Errorf("error encoding png %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing output file %w", err)
	}

	return nil
}

func readConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}

// toNRGBA copies img into a zero-origin NRGBA image. Sources without an alpha
// channel come out fully opaque.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func hasAlpha(m color.Model) bool {
	switch m {
	case color.NRGBAModel, color.RGBAModel, color.NRGBA64Model, color.RGBA64Model, color.AlphaModel,
		color.Alpha16Model:
		return true
	}
	return false
}

func modeName(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "Paletted"
	}

	switch m {
	case color.NRGBAModel:
		return "NRGBA"
	case color.RGBAModel:
		return "RGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.RGBA64Model:
		return "RGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "YCbCr"
	}

	return "unknown"
}
