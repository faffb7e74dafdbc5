package software

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	captionFontOnce sync.Once
	captionFont     *opentype.Font
	captionFontErr  error
)

func loadCaptionFont() (*opentype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = opentype.Parse(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// DrawCaption writes a single line of text into the top-left corner of
// dst using Go Regular at size pixels. It is used to label snapshots.
func DrawCaption(dst draw.Image, text string, size float64, c color.Color) error {
	if text == "" {
		return nil
	}
	f, err := loadCaptionFont()
	if err != nil {
		return fmt.Errorf("parse caption font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create caption face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	pad := int(size / 4)
	origin := dst.Bounds().Min
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(origin.X+pad, origin.Y+pad+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}
