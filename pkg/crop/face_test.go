package crop

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pigoCascade finds the facefinder cascade shipped in the pigo module.
func pigoCascade(t *testing.T) string {
	t.Helper()
	const rel = "github.com/esimov/pigo@v1.4.6/cascade/facefinder"

	var roots []string
	if dir := os.Getenv("GOMODCACHE"); dir != "" {
		roots = append(roots, dir)
	}
	if dir := os.Getenv("GOPATH"); dir != "" {
		roots = append(roots, filepath.Join(filepath.SplitList(dir)[0], "pkg", "mod"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "go", "pkg", "mod"))
	}
	for _, root := range roots {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("pigo facefinder cascade not found in the module cache")
	return ""
}

func TestFaceDetector_Largest(t *testing.T) {
	fd, err := LoadFaceDetector(pigoCascade(t))
	require.NoError(t, err)

	img := detailedImage(400, 200, image.Rect(300, 60, 380, 140))
	box, ok, err := fd.Largest(context.Background(), img)
	require.NoError(t, err)
	if ok {
		assert.True(t, box.In(img.Bounds()), "face box %v escapes the image", box)
		assert.False(t, box.Empty())
	}
}

func TestSmartCropper_KeepsFaceInside(t *testing.T) {
	fd, err := LoadFaceDetector(pigoCascade(t))
	require.NoError(t, err)

	img := detailedImage(400, 200, image.Rect(300, 60, 380, 140))
	target := Dimensions{100, 100}
	sc := NewSmartCropper(DefaultOptions().Resampler)
	sc.Faces = fd

	r, err := sc.Crop(context.Background(), img, target)
	require.NoError(t, err)
	assert.Equal(t, Compute(DimensionsOf(img), target).Size(), r.Size())
	assert.True(t, r.Within(DimensionsOf(img)))

	box, ok, err := fd.Largest(context.Background(), img)
	require.NoError(t, err)
	if ok && box.Dx() <= r.Width && box.Dy() <= r.Height {
		assert.True(t, box.In(r.Rectangle()), "face %v outside crop %v", box, r)
	}
}

// fixedFace reports the same face box for every image.
type fixedFace image.Rectangle

func (f fixedFace) Largest(context.Context, image.Image) (image.Rectangle, bool, error) {
	return image.Rectangle(f), true, nil
}

func TestSmartCropper_FaceOverridesSaliency(t *testing.T) {
	// the detail pulls the crop right, the face sits on the left edge
	img := detailedImage(400, 200, image.Rect(300, 60, 380, 140))
	face := image.Rect(10, 50, 60, 110)

	sc := NewSmartCropper(DefaultOptions().Resampler)
	sc.Faces = fixedFace(face)

	r, err := sc.Crop(context.Background(), img, Dimensions{100, 100})
	require.NoError(t, err)
	assert.Equal(t, Dimensions{200, 200}, r.Size())
	assert.True(t, face.In(r.Rectangle()), "face %v outside crop %v", face, r)
	assert.True(t, r.Within(DimensionsOf(img)))
}

func TestFaceDetector_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := (&FaceDetector{}).Largest(ctx, image.NewRGBA(image.Rect(0, 0, 10, 10)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestLoadFaceDetector_Missing(t *testing.T) {
	_, err := LoadFaceDetector(filepath.Join(t.TempDir(), "facefinder"))
	assert.ErrorContains(t, err, "reading cascade")
}
