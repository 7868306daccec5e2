package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

// testPNG renders a small gradient so the JPEG encoder has real
// content to work with.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeResult(t *testing.T, dataURI string) image.Image {
	t.Helper()
	mimeType, data, err := FromDataURI(dataURI)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", mimeType)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestNormalizeDownscalesLongerEdge(t *testing.T) {
	out, err := Normalize(testPNG(t, 1600, 800), 800, 70)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	img := decodeResult(t, out)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestNormalizePortraitKeepsAspect(t *testing.T) {
	out, err := Normalize(testPNG(t, 600, 1200), 800, 70)
	require.NoError(t, err)

	img := decodeResult(t, out)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestNormalizeNeverUpscales(t *testing.T) {
	out, err := Normalize(testPNG(t, 200, 100), 800, 70)
	require.NoError(t, err)

	img := decodeResult(t, out)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestNormalizeRejectsUndecodableInput(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image"), 800, 70)
	assert.ErrorIs(t, err, models.ErrImageDecode)
}

func TestFromDataURI(t *testing.T) {
	uri := ToDataURI("image/png", []byte{1, 2, 3})
	mimeType, data, err := FromDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestFromDataURIBarePayloadAssumesJPEG(t *testing.T) {
	mimeType, data, err := FromDataURI("AQID") // base64 of 0x01 0x02 0x03
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestFromDataURIRejectsGarbage(t *testing.T) {
	_, _, err := FromDataURI("data:image/png;base64")
	assert.ErrorIs(t, err, models.ErrImageDecode)

	_, _, err = FromDataURI("data:image/png;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, models.ErrImageDecode)
}
