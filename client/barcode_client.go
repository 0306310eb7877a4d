package client

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// BarcodeClient reads the printed ITF (interleaved 2-of-5) bar code
// straight from the slip image. Boletos carry a 44-digit ITF code that
// positionally encodes the same amount and due date as the linha
// digitável, so a successful read recovers those fields even when OCR
// mangled every digit of the typed line.
type BarcodeClient struct{}

func NewBarcodeClient() *BarcodeClient {
	return &BarcodeClient{}
}

// ReadITF decodes the ITF bar code from raw image bytes. A slip without a
// readable bar code returns an error; callers treat that as "no signal",
// not a failure.
func (bc *BarcodeClient) ReadITF(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to build bitmap: %w", err)
	}

	reader := oned.NewITFReader()
	result, err := reader.Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no ITF barcode found: %w", err)
	}

	return result.GetText(), nil
}
