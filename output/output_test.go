package output

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/d2q9/lattice"
)

var _ = Describe("Dat files", func() {
	It("should write the final state", func() {
		records := []lattice.CellRecord{
			{Row: 0, Col: 0, UX: 0.5, UY: -0.25, Pressure: 0.1 / 3},
			{Row: 0, Col: 1, Pressure: 0.1 / 3, IsObstacle: true},
		}

		buf := bytes.NewBuffer(nil)
		Expect(WriteFinalState(buf, records)).To(Succeed())

		Expect(buf.String()).To(Equal(
			"0 0 5.000000000000E-01 -2.500000000000E-01 3.333333333333E-02 0\n" +
				"0 1 0.000000000000E+00 0.000000000000E+00 3.333333333333E-02 1\n"))
	})

	It("should write the average velocities", func() {
		buf := bytes.NewBuffer(nil)
		Expect(WriteAvVels(buf, []float64{0, 1.5e-3})).To(Succeed())

		Expect(buf.String()).To(Equal(
			"0:\t0.000000000000E+00\n1:\t1.500000000000E-03\n"))
	})

	It("should save files into a new directory", func() {
		dir := filepath.Join(GinkgoT().TempDir(), "out")

		path, err := SaveAvVels(dir, []float64{0.25})
		Expect(err).ToNot(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, AvVelsFile)))

		content, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(Equal("0:\t2.500000000000E-01\n"))
	})
})

var _ = Describe("Plots", func() {
	It("should refuse to plot a single iteration", func() {
		err := PlotAvVels(bytes.NewBuffer(nil), []float64{1})
		Expect(err).To(MatchError(ErrTooFewPoints))
	})

	It("should pad a flat range", func() {
		r := yRange([]float64{2, 2, 2})

		Expect(r.GetMin()).To(BeNumerically("<", 2))
		Expect(r.GetMax()).To(BeNumerically(">", 2))
	})

	It("should use the data range", func() {
		r := yRange([]float64{3, -1, 2})

		Expect(r.GetMin()).To(Equal(-1.0))
		Expect(r.GetMax()).To(Equal(3.0))
	})

	It("should paint obstacles and fluid", func() {
		records := []lattice.CellRecord{
			{Row: 0, Col: 0, UX: 0.1},
			{Row: 0, Col: 1, IsObstacle: true},
			{Row: 1, Col: 0},
			{Row: 1, Col: 1, UX: 0.05},
		}

		img, err := SpeedImage(records, 2, 2)
		Expect(err).ToNot(HaveOccurred())

		Expect(img.At(1, 1)).To(Equal(color.Color(obstacleColor)))
		Expect(img.At(0, 1)).ToNot(Equal(img.At(0, 0)))
	})

	It("should reject records that do not cover the lattice", func() {
		_, err := SpeedImage(nil, 2, 2)
		Expect(err).To(HaveOccurred())
	})

	It("should encode a PNG", func() {
		records := []lattice.CellRecord{{UX: 1}}

		buf := bytes.NewBuffer(nil)
		Expect(WriteSpeedImage(buf, records, 1, 1)).To(Succeed())

		img, err := png.Decode(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(1))
	})
})
