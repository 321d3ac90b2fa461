package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Screenshot queues a labeled capture of the next drawn frame. Files are
// named <timestamp>_p<page>_<label>.png inside ScreenshotDir.
func (v *Viewer) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// flushScreenshots reads the frame back once and writes it for every queued
// label. Called at the end of Draw.
func (v *Viewer) flushScreenshots(screen *ebiten.Image) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	labels := v.screenshotQueue
	v.screenshotQueue = nil

	if err := os.MkdirAll(v.ScreenshotDir, 0o755); err != nil {
		v.log.Errorf("screenshot: %v", err)
		return
	}

	size := screen.Bounds().Size()
	pixels := make([]byte, 4*size.X*size.Y)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, size.X, size.Y)

	prefix := fmt.Sprintf("%s_p%d", time.Now().Format("20060102_150405"), v.engine.Page())
	for _, label := range labels {
		path := filepath.Join(v.ScreenshotDir, prefix+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			v.log.Errorf("screenshot: %v", err)
			continue
		}
		v.log.Infof("screenshot %s", path)
	}
}

// unpremultiply turns the premultiplied pixels ReadPixels returns into a
// straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		c := color.NRGBAModel.Convert(color.RGBA{R: pixels[i], G: pixels[i+1], B: pixels[i+2], A: pixels[i+3]}).(color.NRGBA)
		copy(img.Pix[i:i+4], []byte{c.R, c.G, c.B, c.A})
	}
	return img
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := pngEncoder.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.'. Anything else
// becomes '_'.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, label)
}
