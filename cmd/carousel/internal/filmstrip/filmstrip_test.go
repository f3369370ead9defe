package filmstrip

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var items = []string{"A", "B", "C", "D"}

func TestLayoutDrag(t *testing.T) {
	cfg := carousel.DefaultConfig()
	frames := Layout(items, cfg, 3)
	require.Len(t, frames, 3)

	// At rest only the first real page is visible.
	require.Len(t, frames[0].Pages, 1)
	first := frames[0].Pages[0]
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, "A", first.Label)
	assert.False(t, first.Pad)
	assert.Equal(t, transition.Identity, first.Visual)
	assert.Equal(t, 30, first.Bounds.Min.X)
	assert.Equal(t, 360, first.Bounds.Max.X)
	assert.Equal(t, 150, first.Bounds.Dy())

	// Halfway both neighbours are visible at half scale.
	mid := frames[1]
	assert.InDelta(t, -cfg.ScreenWidth/2, mid.Offset, 1e-9)
	require.Len(t, mid.Pages, 2)
	assert.Equal(t, "A", mid.Pages[0].Label)
	assert.Equal(t, "B", mid.Pages[1].Label)
	for _, p := range mid.Pages {
		assert.InDelta(t, 0.5, p.Visual.Scale, 1e-9)
		assert.InDelta(t, 75, p.Bounds.Dy(), 1)
	}

	// A full page drag lands on the second item.
	require.Len(t, frames[2].Pages, 1)
	assert.Equal(t, 2, frames[2].Pages[0].Index)
}

func TestLayoutRotate(t *testing.T) {
	cfg := carousel.DefaultConfig()
	cfg.Transition = transition.Rotate3D
	frames := Layout(items, cfg, 3)

	mid := frames[1].Pages
	require.Len(t, mid, 2)
	assert.InDelta(t, 19.5, mid[0].Visual.RotationY, 1e-9)
	assert.InDelta(t, -19.5, mid[1].Visual.RotationY, 1e-9)
	assert.Less(t, mid[0].Bounds.Dx(), 330)
	assert.Equal(t, 150, mid[0].Bounds.Dy())
}

func TestLayoutEmpty(t *testing.T) {
	frames := Layout(nil, carousel.DefaultConfig(), 0)
	require.Len(t, frames, DefaultFrames)
	for _, f := range frames {
		assert.Empty(t, f.Pages)
	}
}

func TestRender(t *testing.T) {
	cfg := carousel.DefaultConfig()
	img := Render(items, cfg, Options{Frames: 3})

	assert.Equal(t, 390, img.Bounds().Dx())
	assert.Equal(t, 3*(150+Gap)-Gap, img.Bounds().Dy())

	assert.Equal(t, background, img.RGBAAt(5, 5))
	assert.Equal(t, cardColor, img.RGBAAt(50, 20))
	// Rounded corner stays background.
	assert.Equal(t, background, img.RGBAAt(30, 0))
}

func TestRenderOpacityBlends(t *testing.T) {
	cfg := carousel.DefaultConfig()
	cfg.Transition = transition.Opacity
	img := Render(items, cfg, Options{Frames: 3})

	// Second frame, left card at half opacity.
	y := 150 + Gap + 40
	got := img.RGBAAt(20, y)
	assert.NotEqual(t, background, got)
	assert.NotEqual(t, cardColor, got)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, items, carousel.DefaultConfig(), Options{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultFrames*(150+Gap)-Gap, img.Bounds().Dy())
}

func TestEncodeRejectsInvalidConfig(t *testing.T) {
	cfg := carousel.DefaultConfig()
	cfg.Interval = 0
	assert.Error(t, Encode(&bytes.Buffer{}, items, cfg, Options{}))
}

func TestWithAlpha(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 128}, withAlpha(color.RGBA{R: 1, G: 2, B: 3, A: 255}, 0.5))
	assert.Equal(t, uint8(255), withAlpha(cardColor, 2).A)
}
