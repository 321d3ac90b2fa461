// Package slides loads a directory of slide images for a carousel and
// watches it for changes.
package slides

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// Extensions lists the file extensions Load decodes, lower case.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// maxDecoders bounds concurrent decodes.
const maxDecoders = 4

// Slide is one decoded image.
type Slide struct {
	Name  string
	Image image.Image
}

// Size returns the pixel dimensions of the slide.
func (s Slide) Size() image.Point {
	if s.Image == nil {
		return image.Point{}
	}
	return s.Image.Bounds().Size()
}

// IsSlide reports whether name has one of the supported extensions.
func IsSlide(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// List returns the slide file names in dir, sorted. Hidden files are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsSlide(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load decodes every slide in dir concurrently. Slides keep file name order.
// The first decode error cancels the rest and is returned.
func Load(ctx context.Context, dir string) ([]Slide, error) {
	names, err := List(dir)
	if err != nil {
		return nil, err
	}

	out := make([]Slide, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDecoders)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			out[i] = Slide{Name: name, Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load slides %s: %w", dir, err)
	}
	return out, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// ScaledWidth returns the width of a slide of the given size drawn at
// height, keeping its aspect ratio. Empty slides have no width.
func ScaledWidth(size image.Point, height float64) float64 {
	if size.X <= 0 || size.Y <= 0 || height <= 0 {
		return 0
	}
	return math.Round(float64(size.X) * height / float64(size.Y))
}

// Length returns the film length of slides laid edge to edge at height.
func Length(sizes []image.Point, height float64) float64 {
	var total float64
	for _, s := range sizes {
		total += ScaledWidth(s, height)
	}
	return total
}

// Sizes returns the dimensions of each slide.
func Sizes(slides []Slide) []image.Point {
	out := make([]image.Point, len(slides))
	for i, s := range slides {
		out[i] = s.Size()
	}
	return out
}

// Fit returns img resampled to height, keeping its aspect ratio. Images that
// already have the height are returned as is.
func Fit(img image.Image, height int) image.Image {
	size := img.Bounds().Size()
	if height <= 0 || size.Y == height {
		return img
	}
	w := int(ScaledWidth(size, float64(height)))
	if w <= 0 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// FitAll resamples every slide to height in parallel. The input is left
// untouched; slides without an image are passed through.
func FitAll(s []Slide, height int) []Slide {
	out := make([]Slide, len(s))
	var g errgroup.Group
	g.SetLimit(maxDecoders)
	for i, sl := range s {
		g.Go(func() error {
			if sl.Image != nil {
				sl.Image = Fit(sl.Image, height)
			}
			out[i] = sl
			return nil
		})
	}
	_ = g.Wait()
	return out
}
