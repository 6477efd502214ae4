package crop

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

// SmartCropper positions the cover crop on the region smartcrop scores highest.
// The crop size always equals the one Compute picks, so only the placement changes.
type SmartCropper struct {
	resampler imaging.ResampleFilter

	// Faces, when set, keeps the largest face inside the crop.
	Faces FaceFinder
}

// FaceFinder locates the face a crop should keep. *FaceDetector implements it.
type FaceFinder interface {
	Largest(ctx context.Context, img image.Image) (box image.Rectangle, ok bool, err error)
}

// NewSmartCropper returns a SmartCropper that downsizes with resampler.
func NewSmartCropper(resampler imaging.ResampleFilter) *SmartCropper {
	return &SmartCropper{resampler: resampler}
}

// Crop implements Cropper.
func (s *SmartCropper) Crop(ctx context.Context, img image.Image, target Dimensions) (Rect, error) {
	source := DimensionsOf(img)
	cover := Compute(source, target)
	if cover.IsFull(source) || !target.Valid() {
		return cover, nil
	}

	best, err := s.findBestCrop(ctx, img, target)
	if err != nil {
		return Rect{}, err
	}

	// smartcrop works in absolute coordinates
	best = best.Sub(img.Bounds().Min)
	cx := best.Min.X + best.Dx()/2
	cy := best.Min.Y + best.Dy()/2
	r := centerOn(cover.Size(), source, cx, cy)

	if s.Faces != nil {
		face, ok, err := s.Faces.Largest(ctx, img)
		if err != nil {
			return Rect{}, fmt.Errorf("detecting faces: %w", err)
		}
		if ok {
			r = keepInside(r, face, source)
		}
	}
	return r, nil
}

func (s *SmartCropper) findBestCrop(ctx context.Context, img image.Image, target Dimensions) (image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, err
	}
	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: s.resampler})

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	// buffered so the analyzer goroutine never blocks after cancellation
	resultChan := make(chan cropResult, 1)

	go func() {
		best, err := analyzer.FindBestCrop(img, target.Width, target.Height)
		resultChan <- cropResult{crop: best, err: err}
	}()

	select {
	case <-ctx.Done():
		return image.Rectangle{}, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return image.Rectangle{}, fmt.Errorf("finding best crop: %w", result.err)
		}
		return result.crop, nil
	}
}

// keepInside translates r so that box is covered where r's size allows it.
func keepInside(r Rect, box image.Rectangle, source Dimensions) Rect {
	if box.Dx() > r.Width || box.Dy() > r.Height {
		return centerOn(r.Size(), source, box.Min.X+box.Dx()/2, box.Min.Y+box.Dy()/2)
	}
	if box.Min.X < r.X {
		r.X = box.Min.X
	}
	if box.Max.X > r.X+r.Width {
		r.X = box.Max.X - r.Width
	}
	if box.Min.Y < r.Y {
		r.Y = box.Min.Y
	}
	if box.Max.Y > r.Y+r.Height {
		r.Y = box.Max.Y - r.Height
	}
	return clamp(r, source)
}

// resizer implements the smartcrop resizer on top of imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize satisfies the smartcrop resizer interface.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
