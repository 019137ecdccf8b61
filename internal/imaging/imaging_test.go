package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	kind, err := Detect(createTestPNG(4, 4))
	require.NoError(t, err)
	assert.Equal(t, "image/png", kind.MIME)
	assert.Equal(t, ".png", kind.Extension)
	assert.True(t, Decodable(kind.MIME))

	kind, err = Detect(createTestJPEG(4, 4))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", kind.MIME)

	kind, err = Detect([]byte("GIF89a\x01\x00\x01\x00"))
	require.NoError(t, err)
	assert.Equal(t, "image/gif", kind.MIME)
}

func TestDetectRejectsNonImages(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("not an image"),
		[]byte("%PDF-1.4\n"),
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`),
		[]byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`),
		{},
	} {
		_, err := Detect(data)
		assert.True(t, errors.Is(err, ErrNotImage), "expected ErrNotImage for %q, got %v", data, err)
	}
}

func TestThumbnailDownscales(t *testing.T) {
	result, err := Thumbnail(bytes.NewReader(createTestJPEG(1200, 600)))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", result.MIME)

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, ThumbDimension, img.Bounds().Dx())
	assert.Equal(t, ThumbDimension/2, img.Bounds().Dy())
}

func TestThumbnailSmallImageNotUpscaled(t *testing.T) {
	result, err := Thumbnail(bytes.NewReader(createTestPNG(50, 30)))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestThumbnailInvalidData(t *testing.T) {
	_, err := Thumbnail(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
