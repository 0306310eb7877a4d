package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisionClientRecognizeImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"results":[[{"text":"VENCIMENTO: 15/03/2025","confidence":0.98},{"text":"VALOR: 1.500,00","confidence":0.95}]]}`))
	}))
	defer server.Close()

	vc := NewVisionClient(server.URL)
	text, err := vc.RecognizeImage(context.Background(), []byte("fake-image"))

	assert.NoError(t, err)
	assert.Contains(t, text, "VENCIMENTO: 15/03/2025")
	assert.Contains(t, text, "VALOR: 1.500,00")
}

func TestVisionClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	vc := NewVisionClient(server.URL)
	_, err := vc.RecognizeImage(context.Background(), []byte("fake-image"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestVisionClientUnreachable(t *testing.T) {
	vc := NewVisionClient("http://127.0.0.1:1/predict")
	_, err := vc.RecognizeImage(context.Background(), []byte("fake-image"))
	assert.Error(t, err)
}
