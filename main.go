package main

import (
	"log"

	"github.com/boletoflow/boleto-ocr-service/client"
	"github.com/boletoflow/boleto-ocr-service/config"
	"github.com/boletoflow/boleto-ocr-service/handler"
	"github.com/boletoflow/boleto-ocr-service/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Local Tesseract is always available; a remote OCR server, when
	// configured, becomes the primary recognizer with Tesseract as fallback.
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage)

	var recognizer service.TextRecognizer = tesseractClient
	var fallback service.TextRecognizer
	if cfg.OCRAPIURL != "" {
		log.Printf("Using OCR API at %s with Tesseract fallback", cfg.OCRAPIURL)
		recognizer = client.NewVisionClient(cfg.OCRAPIURL)
		fallback = tesseractClient
	}

	// Initialize collaborators and the extraction pipeline
	pdfProcessor := service.NewPDFProcessor()
	barcodeClient := client.NewBarcodeClient()
	extractionService := service.NewExtractionService(recognizer, fallback, pdfProcessor, barcodeClient)

	// Initialize handler layer
	boletoHandler := handler.NewBoletoHandler(extractionService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Boleto OCR Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		boleto := api.Group("/boleto")
		{
			boleto.POST("/extract", boletoHandler.Extract)
		}
	}

	// Start server
	log.Printf("Starting Boleto OCR Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
