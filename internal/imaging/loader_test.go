package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// writeImage encodes img into a temporary file named name, choosing the
// encoder from the extension, and returns its path.
func writeImage(t *testing.T, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

// grayRamp returns a width x height grey image whose level grows by one per
// pixel in reading order.
func grayRamp(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	return img
}

func TestImageCache_Load(t *testing.T) {
	for _, name := range []string{"levels.png", "levels.bmp", "levels.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := writeImage(t, name, grayRamp(12, 8))
			cache := NewImageCache()

			img, err := cache.Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			w, h, levels := GrayLevels(img, GrayRec601)
			if w != 12 || h != 8 {
				t.Fatalf("dimensions: got %dx%d, want 12x8", w, h)
			}
			for i, l := range levels {
				if l != i {
					t.Fatalf("level %d: got %d, want %d", i, l, i)
				}
			}

			again, err := cache.Load(path)
			if err != nil {
				t.Fatalf("second Load failed: %v", err)
			}
			if again != img {
				t.Error("second Load did not return the cached image")
			}
			if cache.Len() != 1 {
				t.Errorf("Len: got %d, want 1", cache.Len())
			}
		})
	}
}

func TestImageCache_LoadErrors(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", "/nonexistent/path/to/image.png", "failed to open image"},
		{"not an image", garbage, "failed to decode image garbage.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewImageCache()
			_, err := cache.Load(tt.path)
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
			if cache.Len() != 0 {
				t.Errorf("failed load was cached")
			}
		})
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	cache := NewImageCache()
	first := writeImage(t, "first.png", grayRamp(4, 4))
	second := writeImage(t, "second.tiff", grayRamp(4, 4))
	for _, p := range []string{first, second} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	cache.Evict("/nonexistent/path")
	cache.Evict(first)
	if cache.Len() != 1 {
		t.Fatalf("Len after Evict: got %d, want 1", cache.Len())
	}
	cache.mu.RLock()
	_, kept := cache.images[second]
	cache.mu.RUnlock()
	if !kept {
		t.Error("Evict removed the wrong image")
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	paths := []string{
		writeImage(t, "a.png", grayRamp(16, 16)),
		writeImage(t, "b.bmp", grayRamp(16, 16)),
		writeImage(t, "c.tiff", grayRamp(16, 16)),
	}
	cache := NewImageCache()

	var wg sync.WaitGroup
	errs := make(chan error, 60)
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}(paths[i%len(paths)])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
	if cache.Len() != len(paths) {
		t.Errorf("Len: got %d, want %d", cache.Len(), len(paths))
	}
}

func TestLoadImageInfo(t *testing.T) {
	translucent := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	translucent.SetNRGBA(3, 3, color.NRGBA{R: 255, A: 128})

	tests := []struct {
		name      string
		file      string
		img       image.Image
		format    string
		depth     string
		grayscale bool
		alpha     bool
	}{
		{"grey png", "grey.png", grayRamp(20, 10), "png", "8-bit", true, false},
		{"grey tiff", "grey.TIF", grayRamp(20, 10), "tiff", "8-bit", true, false},
		{"16-bit grey png", "deep.png", image.NewGray16(image.Rect(0, 0, 20, 10)), "png", "16-bit", true, false},
		{"translucent png", "alpha.png", translucent, "png", "8-bit", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.img)
			info, err := LoadImageInfo(NewImageCache(), path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Width != 20 || info.Height != 10 {
				t.Errorf("size: got %dx%d, want 20x10", info.Width, info.Height)
			}
			if info.Format != tt.format {
				t.Errorf("Format: got %s, want %s", info.Format, tt.format)
			}
			if info.ColorDepth != tt.depth {
				t.Errorf("ColorDepth: got %s, want %s", info.ColorDepth, tt.depth)
			}
			if info.Grayscale != tt.grayscale {
				t.Errorf("Grayscale: got %v, want %v", info.Grayscale, tt.grayscale)
			}
			if info.HasAlpha != tt.alpha {
				t.Errorf("HasAlpha: got %v, want %v", info.HasAlpha, tt.alpha)
			}
			if info.FileSizeBytes <= 0 {
				t.Error("FileSizeBytes should be positive")
			}
		})
	}

	if _, err := LoadImageInfo(NewImageCache(), "/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]string{
		"a.png":     "png",
		"a.JPG":     "jpeg",
		"a.jpeg":    "jpeg",
		"a.gif":     "gif",
		"scan.bmp":  "bmp",
		"scan.tif":  "tiff",
		"scan.TIFF": "tiff",
		"notes.xyz": "unknown",
		"no-ext":    "unknown",
	}
	for path, want := range tests {
		if got := formatOf(path); got != want {
			t.Errorf("formatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	path := writeImage(t, "wide.bmp", grayRamp(30, 20))

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 30 || dims.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", dims.Width, dims.Height)
	}

	if _, err := GetDimensions(cache, "/nonexistent/image.png"); err == nil {
		t.Error("GetDimensions should fail for non-existent file")
	}
}
