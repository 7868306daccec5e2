package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif" // register decoders for common upload formats
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

// Normalize decodes an uploaded photo, scales its longer edge down to
// maxDimension (never up), re-encodes it as JPEG at the given quality
// (1-100) and returns it as a self-contained data URI.
func Normalize(raw []byte, maxDimension, quality int) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrImageDecode, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > height {
		if width > maxDimension {
			height = (height * maxDimension) / width
			width = maxDimension
		}
	} else {
		if height > maxDimension {
			width = (width * maxDimension) / height
			height = maxDimension
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	var scaled image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		scaled = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrImageDecode, err)
	}

	return ToDataURI("image/jpeg", buf.Bytes()), nil
}

// ToDataURI wraps raw image bytes in a data URI.
func ToDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// FromDataURI splits a data URI into its MIME type and decoded bytes.
// Bare base64 payloads (no prefix) are accepted and assumed JPEG,
// matching what the upload boundary produces.
func FromDataURI(uri string) (string, []byte, error) {
	mimeType := "image/jpeg"
	payload := uri

	if strings.HasPrefix(uri, "data:") {
		idx := strings.Index(uri, ",")
		if idx < 0 {
			return "", nil, fmt.Errorf("%w: malformed data URI", models.ErrImageDecode)
		}
		header := uri[len("data:"):idx]
		payload = uri[idx+1:]
		if semi := strings.Index(header, ";"); semi >= 0 {
			header = header[:semi]
		}
		if header != "" {
			mimeType = header
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", models.ErrImageDecode, err)
	}
	return mimeType, data, nil
}
