package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/mazznoer/colorgrad"

	"github.com/sarchlab/d2q9/lattice"
)

var obstacleColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

// SpeedImage paints the speed |u| of every site, one pixel per site, row 0
// at the bottom. Obstacles are painted dark grey.
func SpeedImage(records []lattice.CellRecord, nx, ny int) (*image.RGBA, error) {
	if len(records) != nx*ny {
		return nil, fmt.Errorf("%d records do not cover a %dx%d lattice",
			len(records), nx, ny)
	}

	maxSpeed := 0.0
	for _, r := range records {
		maxSpeed = math.Max(maxSpeed, speed(r))
	}

	grad := colorgrad.Viridis()
	img := image.NewRGBA(image.Rect(0, 0, nx, ny))

	for _, r := range records {
		x, y := r.Col, ny-1-r.Row

		if r.IsObstacle {
			img.Set(x, y, obstacleColor)
			continue
		}

		t := 0.0
		if maxSpeed > 0 {
			t = speed(r) / maxSpeed
		}

		img.Set(x, y, grad.At(t))
	}

	return img, nil
}

func speed(r lattice.CellRecord) float64 {
	return math.Hypot(r.UX, r.UY)
}

// WriteSpeedImage encodes the speed image as PNG.
func WriteSpeedImage(
	w io.Writer,
	records []lattice.CellRecord,
	nx, ny int,
) error {
	img, err := SpeedImage(records, nx, ny)
	if err != nil {
		return err
	}

	return png.Encode(w, img)
}

// SaveSpeedImage writes the speed image into dir.
func SaveSpeedImage(
	dir string,
	records []lattice.CellRecord,
	nx, ny int,
) (string, error) {
	return saveFile(dir, SpeedImageFile, func(w io.Writer) error {
		return WriteSpeedImage(w, records, nx, ny)
	})
}
