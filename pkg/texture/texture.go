// Package texture supplies raw pixel buffers for image-backed shader nodes.
package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrNotFound is returned by a Loader when the image does not exist.
var ErrNotFound = errors.New("texture not found")

// Image is an uncompressed RGBA buffer. Exactly one of Float and Bytes is
// populated.
type Image struct {
	Name     string
	Float    []float32
	Bytes    []byte
	Width    uint32
	Height   uint32
	Depth    uint32
	Channels uint32
}

// IsFloat reports whether the buffer holds float pixels.
func (img *Image) IsFloat() bool { return img.Float != nil }

// Loader loads an image by path.
type Loader interface {
	Load(ctx context.Context, path string) (*Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Image, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (*Image, error) { return f(ctx, path) }

// FileLoader decodes images from disk into float RGBA buffers with
// components scaled to [0, 1]. Relative paths resolve against Dir. When
// MaxSize is positive, larger images are downscaled to fit within
// MaxSize x MaxSize keeping their aspect ratio.
type FileLoader struct {
	Dir     string
	MaxSize int
}

func (l FileLoader) Load(_ context.Context, path string) (*Image, error) {
	if l.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.Dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	img := FromImage(Fit(src, l.MaxSize))
	img.Name = path
	return img, nil
}

// FromImage converts any decoded image to a float RGBA buffer.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}

	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	pixels := make([]float32, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for _, c := range row {
			pixels = append(pixels, float32(c)/255)
		}
	}
	return &Image{
		Float:    pixels,
		Width:    uint32(w),
		Height:   uint32(h),
		Depth:    1,
		Channels: 4,
	}
}

// Fit returns src downscaled to fit within maxSize x maxSize, or src itself
// when it already fits or maxSize is not positive.
func Fit(src image.Image, maxSize int) image.Image {
	b := src.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return src
	}
	return imaging.Fit(src, maxSize, maxSize, imaging.Lanczos)
}
