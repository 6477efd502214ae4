package crop

import (
	"context"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// FaceDetector finds faces with a pigo cascade.
type FaceDetector struct {
	classifier *pigo.Pigo

	ScaleFactor  float64 // pyramid step between scans
	ShiftFactor  float64 // window stride as a fraction of its size
	IoUThreshold float64 // overlap above which detections are merged
	MinQuality   float32 // detections below this score are ignored
	MinSizePct   int     // smallest face as a percentage of the shorter image side
}

// LoadFaceDetector reads and unpacks a pigo cascade file.
func LoadFaceDetector(path string) (*FaceDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cascade: %w", err)
	}
	return NewFaceDetector(data)
}

// NewFaceDetector unpacks a pigo cascade.
func NewFaceDetector(cascade []byte) (*FaceDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking cascade: %w", err)
	}
	return &FaceDetector{
		classifier:   classifier,
		ScaleFactor:  1.1,
		ShiftFactor:  0.1,
		IoUThreshold: 0.2,
		MinQuality:   10.0,
		MinSizePct:   1,
	}, nil
}

// Largest returns the bounding box of the biggest confident face, relative to
// img.Bounds().Min. ok is false when no face passes MinQuality.
func (f *FaceDetector) Largest(ctx context.Context, img image.Image) (box image.Rectangle, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, false, err
	}

	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	minSide := min(rows, cols)
	minSize := max(minSide*f.MinSizePct/100, 20)

	params := pigo.CascadeParams{
		MinSize:     minSize,
		MaxSize:     minSide,
		ShiftFactor: f.ShiftFactor,
		ScaleFactor: f.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := f.classifier.RunCascade(params, 0.0)
	dets = f.classifier.ClusterDetections(dets, f.IoUThreshold)

	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, false, err
	}

	best := -1
	for i, d := range dets {
		if d.Q < f.MinQuality {
			continue
		}
		if best < 0 || d.Scale > dets[best].Scale {
			best = i
		}
	}
	if best < 0 {
		return image.Rectangle{}, false, nil
	}

	d := dets[best]
	half := d.Scale / 2
	box = image.Rect(d.Col-half, d.Row-half, d.Col+half, d.Row+half).Intersect(image.Rect(0, 0, cols, rows))
	return box, !box.Empty(), nil
}
