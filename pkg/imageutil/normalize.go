// Package imageutil normalizes inline image payloads before they reach the
// media store: decode jpeg/png/webp, apply EXIF orientation, cap the width
// and re-encode as JPEG.
package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"math"

	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

func NormalizeJPEG(input []byte, maxWidth int, quality int) ([]byte, error) {
	if len(input) == 0 {
		return nil, errors.New("empty image")
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	img, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, errors.New("unsupported image format (need jpeg/png/webp)")
	}

	img = applyOrientation(img, readOrientation(input))

	if maxWidth > 0 {
		img = resizeMaxWidth(img, maxWidth)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func readOrientation(input []byte) int {
	x, err := exif.Decode(bytes.NewReader(input))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	ori, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return ori
}

func applyOrientation(src image.Image, ori int) image.Image {
	switch ori {
	case 2:
		return transform(src, flipH)
	case 3:
		return transform(src, rot180)
	case 4:
		return transform(src, flipV)
	case 5:
		return transform(transform(src, flipH), rot90)
	case 6:
		return transform(src, rot90)
	case 7:
		return transform(transform(src, flipH), rot270)
	case 8:
		return transform(src, rot270)
	default:
		return src
	}
}

type mapping func(x, y, w, h int) (int, int, int, int)

// each mapping returns the destination pixel plus destination bounds
func flipH(x, y, w, h int) (int, int, int, int)  { return w - 1 - x, y, w, h }
func flipV(x, y, w, h int) (int, int, int, int)  { return x, h - 1 - y, w, h }
func rot180(x, y, w, h int) (int, int, int, int) { return w - 1 - x, h - 1 - y, w, h }
func rot90(x, y, w, h int) (int, int, int, int)  { return h - 1 - y, x, h, w }
func rot270(x, y, w, h int) (int, int, int, int) { return y, w - 1 - x, h, w }

func transform(src image.Image, m mapping) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	_, _, dw, dh := m(0, 0, w, h)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy, _, _ := m(x, y, w, h)
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func resizeMaxWidth(src image.Image, maxW int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w <= maxW {
		return src
	}

	scale := float64(maxW) / float64(w)
	newH := int(math.Round(float64(h) * scale))
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
