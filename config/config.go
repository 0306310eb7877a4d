package config

import "os"

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguage       string
	OCRAPIURL         string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata"
	}

	ocrLanguage := os.Getenv("OCR_LANGUAGE")
	if ocrLanguage == "" {
		ocrLanguage = "por"
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		OCRLanguage:       ocrLanguage,
		OCRAPIURL:         os.Getenv("OCR_API_URL"),
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
}
