package run

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/oldphoto/internal/config"
	"github.com/John-Robertt/oldphoto/internal/domain"
	"github.com/John-Robertt/oldphoto/internal/infra/imgx"
)

var _ Pipeline = imgx.Filters{}

func writeJPEG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestExecute_EndToEnd_RealFilters(t *testing.T) {
	cwd := t.TempDir()
	root := filepath.Join(cwd, "photos")
	require.NoError(t, os.MkdirAll(root, 0o755))
	writePNG(t, filepath.Join(cwd, config.DefaultTexture), 5, 5)

	writeJPEG(t, filepath.Join(root, "One.jpeg"), 16, 12, color.RGBA{R: 200, G: 120, B: 60, A: 255})
	writeJPEG(t, filepath.Join(root, "two.jpeg"), 9, 20, color.RGBA{R: 40, G: 90, B: 220, A: 255})
	writeJPEG(t, filepath.Join(root, "three.jpeg"), 8, 8, color.Gray{Y: 128})
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.jpeg"), []byte("nope"), 0o644))

	eff, err := config.LoadEffective(cwd, config.CLIArgs{Path: "photos", Threads: 2, Order: "-name"})
	require.NoError(t, err)

	tr, err := Execute(eff, eff.Filters, nil)
	require.NoError(t, err)
	require.Equal(t, 4, tr.Files)
	require.Equal(t, domain.ReportSummary{Processed: 3, Failed: 1}, tr.Summary)

	sizes := map[string][2]int{"One.jpeg": {16, 12}, "two.jpeg": {9, 20}, "three.jpeg": {8, 8}}
	for name, wh := range sizes {
		img, err := imgx.Default().Decode(filepath.Join(eff.OutputDir, name))
		require.NoError(t, err, name)
		require.Equal(t, wh[0], img.Bounds().Dx(), name)
		require.Equal(t, wh[1], img.Bounds().Dy(), name)
	}
	require.NoFileExists(t, filepath.Join(eff.OutputDir, "broken.jpeg"))
	require.FileExists(t, filepath.Join(eff.OutputDir, "timing_2-name.txt"))

	// 重跑：全部已存在的输出被跳过，失败的那张仍然失败。
	again, err := Execute(eff, eff.Filters, nil)
	require.NoError(t, err)
	require.Equal(t, domain.ReportSummary{Skipped: 3, Failed: 1}, again.Summary)
}
