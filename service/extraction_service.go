package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/boletoflow/boleto-ocr-service/dto"
	"github.com/boletoflow/boleto-ocr-service/utils"
)

// minEmbeddedTextLen is the threshold below which a PDF text layer is
// considered empty and the scanned-document OCR path kicks in.
const minEmbeddedTextLen = 20

// TextRecognizer is the external recognition collaborator: raw image
// bytes in, one best text blob out.
type TextRecognizer interface {
	RecognizeImage(ctx context.Context, imageData []byte) (string, error)
}

// ITFBarcodeReader reads the printed ITF bar code from image bytes.
type ITFBarcodeReader interface {
	ReadITF(imageData []byte) (string, error)
}

// ExtractionService orchestrates file-kind dispatch, the recognition
// cascade, and field extraction into one ExtractionResult per call.
// It is stateless across calls; collaborators are shared read-only.
type ExtractionService struct {
	recognizer    TextRecognizer
	fallback      TextRecognizer
	pdfProcessor  PDFProcessor
	barcodeReader ITFBarcodeReader
}

func NewExtractionService(
	recognizer TextRecognizer,
	fallback TextRecognizer,
	pdfProcessor PDFProcessor,
	barcodeReader ITFBarcodeReader,
) *ExtractionService {
	return &ExtractionService{
		recognizer:    recognizer,
		fallback:      fallback,
		pdfProcessor:  pdfProcessor,
		barcodeReader: barcodeReader,
	}
}

// Extract processes one boleto document. It always returns exactly one
// result: every stage failure, including panics from collaborators, is
// normalized into the structured failure shape.
func (s *ExtractionService) Extract(ctx context.Context, req *dto.ExtractionRequest) (result *dto.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Extraction panicked: %v", r)
			result = failureResult(fmt.Sprintf("internal error: %v", r))
		}
	}()

	if !req.FileKind.IsSupported() {
		return failureResult(fmt.Sprintf("Unsupported file format: %s", req.FileKind))
	}

	var text string
	var imageData []byte

	if req.FileKind == dto.FileKindPDF {
		// Digitally issued boletos are vector PDFs; their text layer is
		// cleaner than any OCR pass, so try it first.
		embedded, err := s.pdfProcessor.ExtractText(req.Data)
		if err == nil && len(strings.TrimSpace(embedded)) >= minEmbeddedTextLen {
			text = embedded
		} else {
			imageData, err = s.pdfProcessor.FirstPageImage(req.Data)
			if err != nil {
				log.Printf("PDF conversion failed for %s: %v", req.Filename, err)
				return failureResult(fmt.Sprintf("PDF conversion failed: %v", err))
			}
		}
	} else {
		imageData = req.Data
	}

	if imageData != nil {
		recognized, err := s.recognize(ctx, imageData)
		if err != nil {
			log.Printf("Recognition failed for %s: %v", req.Filename, err)
			return failureResult(err.Error())
		}
		text = recognized
	}

	barcodeFields := utils.BarcodeFields{}
	barcode := ""
	if candidate, ok := utils.FindBarcode(text); ok {
		barcode = candidate.Digits
		barcodeFields = utils.DecodeBarcodeFields(barcode)
		log.Printf("Barcode located via %s strategy", candidate.Strategy)
	}

	// The printed ITF code is a second barcode-path signal: it fills in
	// amount/due date when the typed line was unreadable, but never
	// substitutes for the linha digitável itself.
	if s.barcodeReader != nil && imageData != nil {
		if code, err := s.barcodeReader.ReadITF(imageData); err == nil {
			itf := utils.DecodeITFBarcodeFields(code)
			if barcodeFields.Amount == nil {
				barcodeFields.Amount = itf.Amount
			}
			if barcodeFields.DueDate == nil {
				barcodeFields.DueDate = itf.DueDate
			}
		}
	}

	textFields := utils.ExtractTextFields(text)

	return composeResult(text, barcode, barcodeFields, textFields)
}

// recognize runs the primary recognizer and, on error, the local
// fallback. Empty text from a healthy collaborator is not an error here;
// the composer scores it as a processed-but-empty document.
func (s *ExtractionService) recognize(ctx context.Context, imageData []byte) (string, error) {
	text, err := s.recognizer.RecognizeImage(ctx, imageData)
	if err == nil {
		return text, nil
	}
	if s.fallback == nil {
		return "", err
	}
	log.Printf("Primary recognizer failed (%v), falling back", err)
	return s.fallback.RecognizeImage(ctx, imageData)
}

func failureResult(msg string) *dto.ExtractionResult {
	return &dto.ExtractionResult{
		Success:     false,
		Error:       msg,
		NeedsReview: true,
	}
}
