package handler

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/boletoflow/boleto-ocr-service/dto"
	"github.com/boletoflow/boleto-ocr-service/service"

	"github.com/gin-gonic/gin"
)

type BoletoHandler struct {
	extractionService *service.ExtractionService
}

func NewBoletoHandler(extractionService *service.ExtractionService) *BoletoHandler {
	return &BoletoHandler{
		extractionService: extractionService,
	}
}

// Extract handles the POST /boleto/extract endpoint
func (h *BoletoHandler) Extract(c *gin.Context) {
	log.Println("Received boleto extraction request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	// Declared kind wins; the filename extension is the fallback.
	kind := c.PostForm("file_kind")
	if kind == "" {
		kind = strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	}

	request := &dto.ExtractionRequest{
		Data:     data,
		FileKind: dto.FileKind(strings.ToLower(kind)),
		Filename: fileHeader.Filename,
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Processing %s (%d bytes, kind=%s)", request.Filename, len(request.Data), request.FileKind)

	result := h.extractionService.Extract(c.Request.Context(), request)

	log.Printf("Extraction finished: success=%v confidence=%d needs_review=%v",
		result.Success, result.Confidence, result.NeedsReview)
	c.JSON(http.StatusOK, result)
}

// sendError sends a structured error response
func (h *BoletoHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
