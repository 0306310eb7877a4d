package client

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient is the local text-recognition collaborator. The handle
// is cheap; the tessdata readiness check is done lazily exactly once and
// the client is freely shared afterwards.
type TesseractClient struct {
	dataPath string
	language string

	initOnce sync.Once
	initErr  error
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
	}
}

// ensureReady verifies the tessdata installation on first use. sync.Once
// guarantees concurrent first callers initialize exactly once.
func (tc *TesseractClient) ensureReady() error {
	tc.initOnce.Do(func() {
		if _, err := os.Stat(tc.dataPath); err != nil {
			tc.initErr = fmt.Errorf("tessdata path %s unavailable: %w", tc.dataPath, err)
			return
		}
		log.Printf("Tesseract ready (tessdata=%s lang=%s)", tc.dataPath, tc.language)
	})
	return tc.initErr
}

// RecognizeImage extracts text from raw image bytes using Tesseract OCR.
func (tc *TesseractClient) RecognizeImage(ctx context.Context, imageData []byte) (string, error) {
	if err := tc.ensureReady(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// gosseract clients are not safe for concurrent calls; one per extraction.
	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)

	if err := client.SetLanguage(tc.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR extraction failed: %w", err)
	}

	return text, nil
}
