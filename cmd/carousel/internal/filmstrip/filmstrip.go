// Package filmstrip renders a simulated drag of a carousel to an image, one
// frame per row, so transition settings can be checked without a device.
package filmstrip

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/loop"
	"github.com/go-drift/carousel/pkg/transition"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFrames is the frame count used when Options.Frames is not positive.
const DefaultFrames = 5

// Gap is the vertical space between frames.
const Gap = 8

var (
	background = color.RGBA{0xf2, 0xf2, 0xf7, 0xff}
	cardColor  = color.RGBA{0x1c, 0x6e, 0xd8, 0xff}
	padColor   = color.RGBA{0x8e, 0x8e, 0x93, 0xff}
	labelColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Options controls what is drawn.
type Options struct {
	// Frames is the number of drag positions drawn, from rest to one full
	// page to the left.
	Frames int
	// Face draws page labels. Nil uses basicfont.Face7x13.
	Face font.Face
}

// Frame describes the pages visible at one drag offset.
type Frame struct {
	Offset float64
	Pages  []Card
}

// Card is one page as drawn in a frame.
type Card struct {
	Index  int
	Label  string
	Bounds image.Rectangle
	Visual transition.Visual
	Pad    bool
}

// Layout computes the frames of a drag starting at the first real page. It
// does not draw anything.
func Layout(items []string, cfg carousel.Config, frames int) []Frame {
	if frames <= 0 {
		frames = DefaultFrames
	}
	seq := loop.Pad(items)
	if seq.Len() == 0 {
		return make([]Frame, frames)
	}

	width := cfg.ScreenWidth
	start := seq.First()
	out := make([]Frame, frames)
	for f := range out {
		var drag float64
		if frames > 1 {
			drag = -width * float64(f) / float64(frames-1)
		}
		frame := Frame{Offset: drag}
		for i := 0; i < seq.Len(); i++ {
			offset := float64(i-start)*width + drag
			if math.Abs(offset) >= width {
				continue
			}
			item, _ := seq.At(i)
			v := transition.Render(offset, width, cfg.Transition, true)
			frame.Pages = append(frame.Pages, Card{
				Index:  i,
				Label:  item,
				Bounds: cardBounds(offset, cfg, v),
				Visual: v,
				Pad:    seq.IsPadding(i),
			})
		}
		out[f] = frame
	}
	return out
}

// cardBounds positions a page of the given offset inside a frame. Scale
// shrinks the card about its centre; a Y rotation narrows it by its cosine.
func cardBounds(offset float64, cfg carousel.Config, v transition.Visual) image.Rectangle {
	w := (cfg.ScreenWidth - 2*cfg.HorizontalPadding) * v.Scale
	h := cfg.Height * v.Scale
	w *= math.Abs(math.Cos(v.RotationY * math.Pi / 180))

	cx := offset + cfg.ScreenWidth/2
	cy := cfg.Height / 2
	return image.Rect(
		int(math.Round(cx-w/2)), int(math.Round(cy-h/2)),
		int(math.Round(cx+w/2)), int(math.Round(cy+h/2)),
	)
}

// Render draws the frames of Layout into a single image.
func Render(items []string, cfg carousel.Config, opts Options) *image.RGBA {
	face := opts.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	frames := Layout(items, cfg, opts.Frames)

	fw := int(math.Ceil(cfg.ScreenWidth))
	fh := int(math.Ceil(cfg.Height))
	img := image.NewRGBA(image.Rect(0, 0, fw, len(frames)*(fh+Gap)-Gap))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	for f, frame := range frames {
		origin := image.Pt(0, f*(fh+Gap))
		clip := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(fw, fh))}
		for _, card := range frame.Pages {
			fill := cardColor
			if card.Pad {
				fill = padColor
			}
			r := card.Bounds.Add(origin).Intersect(clip)
			radius := cfg.CornerRadius * card.Visual.Scale
			fillRounded(img, r, card.Bounds.Add(origin), radius, withAlpha(fill, card.Visual.Opacity))
			drawLabel(img, face, card.Label, card.Bounds.Add(origin), clip)
		}
	}
	return img
}

// Encode renders items and writes the image as PNG to w.
func Encode(w io.Writer, items []string, cfg carousel.Config, opts Options) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := png.Encode(w, Render(items, cfg, opts)); err != nil {
		return errors.Wrap(err, "failed to encode filmstrip")
	}
	return nil
}

func withAlpha(c color.RGBA, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * clamp01(opacity)))}
}

// fillRounded blends c over the pixels of clip that lie inside card with its
// corners rounded by radius.
func fillRounded(img *image.RGBA, clip, card image.Rectangle, radius float64, c color.NRGBA) {
	maxR := math.Min(float64(card.Dx()), float64(card.Dy())) / 2
	radius = math.Min(math.Max(radius, 0), maxR)
	src := &image.Uniform{C: c}

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if !insideRounded(x, y, card, radius) {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			draw.Draw(img, px, src, image.Point{}, draw.Over)
		}
	}
}

func insideRounded(x, y int, r image.Rectangle, radius float64) bool {
	px, py := float64(x)+0.5, float64(y)+0.5
	left, top := float64(r.Min.X), float64(r.Min.Y)
	right, bottom := float64(r.Max.X), float64(r.Max.Y)

	cx := math.Max(left+radius, math.Min(px, right-radius))
	cy := math.Max(top+radius, math.Min(py, bottom-radius))
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= radius*radius
}

func drawLabel(img *image.RGBA, face font.Face, label string, card, clip image.Rectangle) {
	if label == "" || card.Empty() {
		return
	}
	dst := img.SubImage(clip).(*image.RGBA)
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: labelColor},
		Face: face,
	}
	advance := d.MeasureString(label)
	metrics := face.Metrics()
	midX := fixed.I((card.Min.X + card.Max.X) / 2)
	midY := fixed.I((card.Min.Y + card.Max.Y) / 2)
	d.Dot = fixed.Point26_6{
		X: midX - advance/2,
		Y: midY + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(label)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
