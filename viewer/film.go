package viewer

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/microfiche"
	"github.com/phanxgames/microfiche/slides"
)

// Film is the strip of content the carousel pans across.
type Film interface {
	// Measure returns the film length for a screen of w by h pixels.
	Measure(w, h int) float64
	// Draw renders the film onto dst with its left edge at x.
	Draw(dst *ebiten.Image, x float64)
}

// whitePixel is a 1x1 white image scaled to draw solid rectangles.
var whitePixel *ebiten.Image

func fillRect(dst *ebiten.Image, r microfiche.Rect, c color.Color) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(whitePixel, &op)
}

// ColorFilm is a film of solid pages, each one screen wide.
type ColorFilm struct {
	Pages []color.Color
}

// Measure implements Film.
func (f ColorFilm) Measure(w, _ int) float64 {
	return float64(len(f.Pages) * w)
}

// Draw implements Film.
func (f ColorFilm) Draw(dst *ebiten.Image, x float64) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	view := microfiche.Rect{Width: w, Height: h}
	for i, c := range f.Pages {
		page := microfiche.Rect{X: x + float64(i)*w, Width: w, Height: h}
		if page.Intersects(view) {
			fillRect(dst, page, c)
		}
	}
}

// ImageFilm lays slides edge to edge, each resampled to the screen height.
// Resampling happens in Measure, so whenever the viewer recalibrates.
type ImageFilm struct {
	source []slides.Slide
	sizes  []image.Point
	height int
	images []*ebiten.Image
}

// NewImageFilm wraps decoded slides. Nothing is uploaded until the first
// Measure.
func NewImageFilm(s []slides.Slide) *ImageFilm {
	return &ImageFilm{source: s, sizes: slides.Sizes(s)}
}

// Measure implements Film.
func (f *ImageFilm) Measure(_, h int) float64 {
	if h != f.height {
		f.resample(h)
	}
	return slides.Length(f.sizes, float64(h))
}

func (f *ImageFilm) resample(h int) {
	for _, img := range f.images {
		if img != nil {
			img.Deallocate()
		}
	}
	f.images = f.images[:0]
	for _, sl := range slides.FitAll(f.source, h) {
		var img *ebiten.Image
		if sl.Image != nil && !sl.Image.Bounds().Empty() {
			img = ebiten.NewImageFromImage(sl.Image)
		}
		f.images = append(f.images, img)
	}
	f.height = h
}

// Draw implements Film. Slides were resampled to the screen height by
// Measure and are drawn at their natural size.
func (f *ImageFilm) Draw(dst *ebiten.Image, x float64) {
	w := float64(dst.Bounds().Dx())
	h := float64(f.height)
	px := x
	for i, img := range f.images {
		sw := slides.ScaledWidth(f.sizes[i], h)
		if img != nil && px+sw > 0 && px < w {
			var op ebiten.DrawImageOptions
			op.GeoM.Translate(px, 0)
			dst.DrawImage(img, &op)
		}
		px += sw
	}
}
