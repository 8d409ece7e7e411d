package vision

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplatePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(i)
		img.Pix[i+3] = 255
	}
	path := filepath.Join(t.TempDir(), "W.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, 8, tpl.Width())
	assert.Equal(t, 6, tpl.Height())
	assert.Equal(t, "W.png", tpl.Name())
}

func TestLoadTemplateMissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLoadTemplateNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
	_, err := LoadTemplate(path)
	assert.Error(t, err)
}

func TestGrayscaleLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(2, 0, color.RGBA{B: 255, A: 255})

	gray := Grayscale(img)
	assert.Equal(t, uint8(76), gray.Pix[0])  // 0.299 * 255
	assert.Equal(t, uint8(149), gray.Pix[1]) // 0.587 * 255
	assert.Equal(t, uint8(29), gray.Pix[2])  // 0.114 * 255
}

func TestGrayscalePassthrough(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 4))
	assert.Same(t, g, Grayscale(g))
}
