package texture

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestFileLoader_Load(t *testing.T) {
	t.Parallel()
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 51, B: 255, A: 255})
	path := writePNG(t, src)

	img, err := FileLoader{}.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), img.Width)
	assert.Equal(t, uint32(1), img.Height)
	assert.Equal(t, uint32(4), img.Channels)
	assert.True(t, img.IsFloat())
	assert.Equal(t, []float32{1, 0, 0, 1, 0, 0.2, 1, 1}, img.Float)
	assert.Equal(t, path, img.Name)
}

func TestFileLoader_RelativeToDir(t *testing.T) {
	t.Parallel()
	path := writePNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 1)))

	img, err := FileLoader{Dir: filepath.Dir(path)}.Load(context.Background(), "tex.png")
	require.NoError(t, err)
	assert.Equal(t, path, img.Name)
}

func TestFileLoader_Missing(t *testing.T) {
	t.Parallel()
	_, err := FileLoader{}.Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFit(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name          string
		w, h, maxSize int
		wantW, wantH  int
	}{
		{name: "disabled", w: 8, h: 4, maxSize: 0, wantW: 8, wantH: 4},
		{name: "already fits", w: 8, h: 4, maxSize: 8, wantW: 8, wantH: 4},
		{name: "wide", w: 8, h: 4, maxSize: 4, wantW: 4, wantH: 2},
		{name: "tall", w: 3, h: 12, maxSize: 6, wantW: 2, wantH: 6},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fit(image.NewNRGBA(image.Rect(0, 0, tc.w, tc.h)), tc.maxSize)
			assert.Equal(t, tc.wantW, got.Bounds().Dx())
			assert.Equal(t, tc.wantH, got.Bounds().Dy())
		})
	}
}

func TestFileLoader_MaxSize(t *testing.T) {
	t.Parallel()
	src := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	path := writePNG(t, src)

	img, err := FileLoader{MaxSize: 4}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), img.Width)
	assert.Equal(t, uint32(2), img.Height)
	require.Len(t, img.Float, 4*2*4)
	assert.InDelta(t, 1, img.Float[0], 0.01)
	assert.InDelta(t, 0, img.Float[1], 0.01)

	full, err := FileLoader{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), full.Width)
}
