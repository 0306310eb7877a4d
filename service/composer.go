package service

import (
	"github.com/boletoflow/boleto-ocr-service/dto"
	"github.com/boletoflow/boleto-ocr-service/utils"
)

const (
	maxRawTextLen      = 1000
	reviewThreshold    = 70
	scoreBarcode       = 40
	scoreAmountText    = 25
	scoreAmountBarcode = 20
	scoreDateText      = 20
	scoreDateBarcode   = 15
	scoreBeneficiary   = 15
)

// composeResult merges the text-path and barcode-path fields, computes
// the confidence score, and decides needs-review. Per field the text
// value wins; the barcode value is the fallback. The review policy is
// deliberately conservative: any missing financially material field
// escalates to a human no matter how confident the rest looks.
func composeResult(rawText, barcode string, barcodeFields utils.BarcodeFields, textFields utils.TextFields) *dto.ExtractionResult {
	result := &dto.ExtractionResult{
		Success:     true,
		Barcode:     barcode,
		Beneficiary: textFields.Beneficiary,
		RawText:     truncateRunes(rawText, maxRawTextLen),
	}

	confidence := 0

	if barcode != "" {
		result.ExtractedFields.BarcodeFound = true
		confidence += scoreBarcode
	}

	switch {
	case textFields.Amount != nil:
		result.Amount = textFields.Amount
		result.ExtractedFields.AmountFound = true
		confidence += scoreAmountText
	case barcodeFields.Amount != nil:
		result.Amount = barcodeFields.Amount
		result.ExtractedFields.AmountFound = true
		result.ExtractedFields.AmountFromBarcode = true
		confidence += scoreAmountBarcode
	}

	switch {
	case textFields.DueDate != nil:
		result.DueDate = dto.NewDate(*textFields.DueDate)
		result.ExtractedFields.DateFound = true
		confidence += scoreDateText
	case barcodeFields.DueDate != nil:
		result.DueDate = dto.NewDate(*barcodeFields.DueDate)
		result.ExtractedFields.DateFound = true
		result.ExtractedFields.DateFromBarcode = true
		confidence += scoreDateBarcode
	}

	if result.Beneficiary != "" {
		result.ExtractedFields.BeneficiaryFound = true
		confidence += scoreBeneficiary
	}

	if confidence > 100 {
		confidence = 100
	}
	result.Confidence = confidence

	result.NeedsReview = confidence < reviewThreshold ||
		result.Barcode == "" ||
		result.Amount == nil ||
		result.DueDate == nil

	return result
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
