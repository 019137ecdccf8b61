package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ThumbDimension is the maximum width or height of a thumbnail.
const ThumbDimension = 480

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// ErrNotImage is returned when content does not sniff as a raster image
// with a registered decoder.
var ErrNotImage = errors.New("content is not an image")

// decodable lists the formats with a registered decoder.
var decodable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// Kind is the sniffed type of an upload.
type Kind struct {
	MIME      string
	Extension string // with leading dot, may be empty
}

// Detect sniffs data (not trusting client headers) and fails with
// ErrNotImage unless it is a decodable raster image. Vector and markup
// formats such as SVG are rejected.
func Detect(data []byte) (Kind, error) {
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if Decodable(m.String()) {
			return Kind{MIME: m.String(), Extension: m.Extension()}, nil
		}
	}
	return Kind{}, fmt.Errorf("%w: detected %s", ErrNotImage, detected.String())
}

// Decodable reports whether Thumbnail can read images of the given MIME type.
func Decodable(mime string) bool {
	return decodable[mime]
}

// ProcessResult contains the processed image data.
type ProcessResult struct {
	Data []byte
	MIME string
}

// Thumbnail decodes an image, downscales it to fit ThumbDimension and
// re-encodes it as JPEG. Images already within bounds are only re-encoded.
func Thumbnail(r io.Reader) (*ProcessResult, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, ThumbDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &ProcessResult{
		Data: buf.Bytes(),
		MIME: "image/jpeg",
	}, nil
}

// downscale resizes the image so neither dimension exceeds maxDim, keeping
// the aspect ratio. Uses Catmull-Rom interpolation.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
