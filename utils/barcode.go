package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// boletoEpoch is the FEBRABAN base date: the due-date field of a boleto
// barcode is a day count added to 1997-10-07.
var boletoEpoch = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)

// BarcodeCandidate is a digit string plus the locator strategy that found it.
type BarcodeCandidate struct {
	Digits   string
	Strategy string
}

// BarcodeFields holds the values positionally decoded from a barcode.
// Either field may be nil when the code marks it as not specified.
type BarcodeFields struct {
	Amount  *decimal.Decimal
	DueDate *time.Time
}

// groupedBarcodeRegex matches the canonical linha digitável grouping
// (5-5-5-6-5-6-1-14) with optional dot/space separators between groups.
var groupedBarcodeRegex = regexp.MustCompile(
	`\d{5}[.\s]{0,2}\d{5}[.\s]{0,2}\d{5}[.\s]{0,2}\d{6}[.\s]{0,2}\d{5}[.\s]{0,2}\d{6}[.\s]{0,2}\d[.\s]{0,2}\d{14}`)

var digitRunRegex = regexp.MustCompile(`\d+`)

// IsPlausibleBarcode is a structural acceptance test for a linha digitável
// candidate: 47 or 48 digits whose 3-digit bank prefix is in [1, 999].
// Deliberately weaker than the official mod-10/mod-11 checksum; its job is
// only to reject accidental digit runs picked up by the sliding window.
func IsPlausibleBarcode(s string) bool {
	if len(s) != 47 && len(s) != 48 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	prefix, err := strconv.Atoi(s[:3])
	if err != nil {
		return false
	}
	return prefix >= 1 && prefix <= 999
}

// FindBarcode locates the likeliest linha digitável in noisy OCR text.
// Three strategies run in order; the first plausibility-valid candidate
// wins. Not finding one is a legitimate outcome, not an error.
func FindBarcode(text string) (BarcodeCandidate, bool) {
	// 1) Canonical grouped pattern with separators
	if m := groupedBarcodeRegex.FindString(text); m != "" {
		digits := stripSeparators(m)
		if IsPlausibleBarcode(digits) {
			return BarcodeCandidate{Digits: digits, Strategy: "grouped"}, true
		}
	}

	// 2) Separator-free: collapse the whole text, look for a clean run
	condensed := stripSeparators(text)
	for _, run := range digitRunRegex.FindAllString(condensed, -1) {
		if (len(run) == 47 || len(run) == 48) && IsPlausibleBarcode(run) {
			return BarcodeCandidate{Digits: run, Strategy: "condensed"}, true
		}
	}

	// 3) Brute force: every digit in the text, sliding 47- and 48-wide windows
	var sb strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	allDigits := sb.String()
	for _, width := range []int{47, 48} {
		for i := 0; i+width <= len(allDigits); i++ {
			window := allDigits[i : i+width]
			if IsPlausibleBarcode(window) {
				return BarcodeCandidate{Digits: window, Strategy: "window"}, true
			}
		}
	}

	return BarcodeCandidate{}, false
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '.':
			return -1
		}
		return r
	}, s)
}

// DecodeBarcodeFields decodes amount and due date from a validated linha
// digitável using its fixed positional layout.
func DecodeBarcodeFields(digits string) BarcodeFields {
	if !IsPlausibleBarcode(digits) {
		return BarcodeFields{}
	}
	return BarcodeFields{
		Amount:  decodeCents(digits[len(digits)-10:]),
		DueDate: decodeDueDateFactor(digits[33:37]),
	}
}

// DecodeITFBarcodeFields decodes amount and due date from the 44-digit
// ITF bar code printed on the slip itself (factor at digits 5-8, value at
// 9-18, same epoch as the linha digitável).
func DecodeITFBarcodeFields(digits string) BarcodeFields {
	if len(digits) != 44 {
		return BarcodeFields{}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return BarcodeFields{}
		}
	}
	return BarcodeFields{
		Amount:  decodeCents(digits[9:19]),
		DueDate: decodeDueDateFactor(digits[5:9]),
	}
}

// decodeCents interprets a 10-digit field as cents. Zero means "amount
// not specified" on a boleto, never R$0.00.
func decodeCents(field string) *decimal.Decimal {
	cents, err := strconv.ParseInt(field, 10, 64)
	if err != nil || cents == 0 {
		return nil
	}
	amount := decimal.New(cents, -2)
	return &amount
}

// decodeDueDateFactor interprets a 4-digit field as days since the epoch.
// Zero means "no due date". Anything landing outside [2000, 2100] is
// discarded: a single garbled digit can otherwise shift the date by
// decades.
func decodeDueDateFactor(field string) *time.Time {
	days, err := strconv.Atoi(field)
	if err != nil || days == 0 {
		return nil
	}
	due := boletoEpoch.AddDate(0, 0, days)
	if due.Year() < 2000 || due.Year() > 2100 {
		return nil
	}
	return &due
}
