package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type FileKind string

const (
	FileKindPDF  FileKind = "pdf"
	FileKindPNG  FileKind = "png"
	FileKindJPG  FileKind = "jpg"
	FileKindJPEG FileKind = "jpeg"
)

// IsSupported reports whether the declared kind can be ingested.
func (k FileKind) IsSupported() bool {
	switch k {
	case FileKindPDF, FileKindPNG, FileKindJPG, FileKindJPEG:
		return true
	}
	return false
}

// Date marshals as a plain calendar date ("YYYY-MM-DD") instead of RFC3339.
type Date struct {
	time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, s)
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", s, err)
	}
	d.Time = t
	return nil
}

// ExtractedFields is the audit trail of which fields were located and by
// which path (free text vs. barcode).
type ExtractedFields struct {
	BarcodeFound      bool `json:"barcode_found"`
	AmountFound       bool `json:"amount_found"`
	AmountFromBarcode bool `json:"amount_from_barcode"`
	DateFound         bool `json:"date_found"`
	DateFromBarcode   bool `json:"date_from_barcode"`
	BeneficiaryFound  bool `json:"beneficiary_found"`
}

// ExtractionResult is the single shape every extraction call returns,
// success or failure.
type ExtractionResult struct {
	Success         bool             `json:"success"`
	Barcode         string           `json:"barcode"`
	Amount          *decimal.Decimal `json:"amount"`
	DueDate         *Date            `json:"due_date"`
	Beneficiary     string           `json:"beneficiary"`
	Confidence      int              `json:"confidence"`
	RawText         string           `json:"raw_text"`
	ExtractedFields ExtractedFields  `json:"extracted_fields"`
	Error           string           `json:"error"`
	NeedsReview     bool             `json:"needs_review"`
}
