package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// VisionClient calls a remote OCR server over HTTP (base64-image JSON
// protocol). Used as the primary recognizer when OCR_API_URL is set, with
// Tesseract as the local fallback.
type VisionClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewVisionClient(apiURL string) *VisionClient {
	return &VisionClient{
		apiURL:     apiURL,
		httpClient: http.DefaultClient,
	}
}

// RecognizeImage extracts text from raw image bytes via the OCR server.
func (vc *VisionClient) RecognizeImage(ctx context.Context, imageData []byte) (string, error) {
	payload := map[string]interface{}{
		"images": []string{base64.StdEncoding.EncodeToString(imageData)},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, vc.apiURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := vc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results [][]struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}

	var textBuilder strings.Builder
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			textBuilder.WriteString(line.Text)
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String(), nil
}
