package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// EncodeColor averages an accumulated color over its samples, applies gamma 2
// and quantizes each channel to a byte
func EncodeColor(sum core.Vec3, samples int) color.RGBA {
	scale := 1.0 / float64(samples)
	return color.RGBA{
		R: encodeChannel(sum.X * scale),
		G: encodeChannel(sum.Y * scale),
		B: encodeChannel(sum.Z * scale),
		A: 255,
	}
}

func encodeChannel(c float64) uint8 {
	// Negative and NaN channels encode as black
	if !(c > 0) {
		return 0
	}
	return uint8(256 * min(math.Sqrt(c), 0.999))
}

// WritePPM writes img as a plain-text (P3) PPM, rows top to bottom
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("write ppm pixel (%d, %d): %w", x, y, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}
