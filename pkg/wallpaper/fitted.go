package wallpaper

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/google/uuid"
)

// derivativePath returns a fresh path for a derivative fitted to display.
// Format: {fittedDir}/{Width}x{Height}/{uuid}.jpg
func derivativePath(fittedDir string, display crop.Dimensions) string {
	return filepath.Join(fittedDir, display.String(), uuid.NewString()+".jpg")
}

// saveDerivative writes img as a JPEG to a new derivative path and returns it.
func saveDerivative(fittedDir string, display crop.Dimensions, img image.Image, quality int) (string, error) {
	path := derivativePath(fittedDir, display)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating fitted directory: %w", err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("saving fitted image: %w", err)
	}
	return path, nil
}

// pruneFitted removes all but the newest keep derivatives in each resolution
// directory under fittedDir. It returns the number of files removed.
func pruneFitted(fittedDir string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	resolutions, err := os.ReadDir(fittedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, res := range resolutions {
		if !res.IsDir() {
			continue
		}
		dir := filepath.Join(fittedDir, res.Name())
		n, err := pruneDir(dir, keep)
		removed += n
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func pruneDir(dir string, keep int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	type fitted struct {
		path string
		mod  int64
	}
	var files []fitted
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jpg") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fitted{path: filepath.Join(dir, e.Name()), mod: info.ModTime().UnixNano()})
	}
	if len(files) <= keep {
		return 0, nil
	}

	// newest first
	sort.Slice(files, func(i, j int) bool { return files[i].mod > files[j].mod })

	removed := 0
	for _, f := range files[keep:] {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
