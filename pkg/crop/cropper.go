package crop

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Cropper chooses the visible region of img for a display of the given size.
// The returned Rect is relative to img.Bounds().Min.
type Cropper interface {
	Crop(ctx context.Context, img image.Image, target Dimensions) (Rect, error)
}

// Options tunes the croppers built by NewCropper.
type Options struct {
	// Resampler is used when the smart analyzer downsizes the image.
	Resampler imaging.ResampleFilter
	// FaceModelPath points at a pigo cascade file. Empty disables face bias.
	FaceModelPath string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Resampler: imaging.Lanczos}
}

// NewCropper builds the Cropper for mode. ModeNone returns a nil Cropper.
func NewCropper(mode Mode, opts Options) (Cropper, error) {
	switch mode {
	case ModeNone:
		return nil, nil
	case ModeCenter:
		return CenterCropper{}, nil
	case ModeSmart:
		sc := NewSmartCropper(opts.Resampler)
		if opts.FaceModelPath != "" {
			fd, err := LoadFaceDetector(opts.FaceModelPath)
			if err != nil {
				return nil, fmt.Errorf("loading face model: %w", err)
			}
			sc.Faces = fd
		}
		return sc, nil
	default:
		return nil, fmt.Errorf("unsupported crop mode: %s", mode)
	}
}

// CenterCropper applies Compute to the image bounds.
type CenterCropper struct{}

// Crop implements Cropper.
func (CenterCropper) Crop(ctx context.Context, img image.Image, target Dimensions) (Rect, error) {
	if err := ctx.Err(); err != nil {
		return Rect{}, err
	}
	return Compute(DimensionsOf(img), target), nil
}

// Apply returns the sub-image of img selected by r.
func Apply(img image.Image, r Rect) *image.NRGBA {
	return imaging.Crop(img, r.Rectangle().Add(img.Bounds().Min))
}
