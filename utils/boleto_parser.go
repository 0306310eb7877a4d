package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxBeneficiaryLen = 200

// TextFields holds whatever the free-text path managed to extract,
// independent of any barcode.
type TextFields struct {
	Amount      *decimal.Decimal
	DueDate     *time.Time
	Beneficiary string
}

// Ordering is load-bearing: labeled patterns run before generic ones so a
// stray date or number elsewhere on the slip cannot shadow the real field.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`R\$\s*(\d+(?:[.,]\d+)*)`),
	regexp.MustCompile(`(?i)VALOR\s*:?\s*(?:R\$)?\s*(\d+(?:[.,]\d+)*)`),
	regexp.MustCompile(`(?i)TOTAL\s*:?\s*(?:R\$)?\s*(\d+(?:[.,]\d+)*)`),
}

var dueDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)VENCIMENTO\s*:?\s*(\d{2}[/.]\d{2}[/.]\d{4})`),
	regexp.MustCompile(`(?i)VENC\.?\s*:?\s*(\d{2}[/.]\d{2}[/.]\d{4})`),
	regexp.MustCompile(`(?i)DATA\s*:?\s*(\d{2}[/.]\d{2}[/.]\d{4})`),
	regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`),
}

var beneficiaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)CEDENTE\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)BENEFICI[ÁA]RIO\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)FAVORECIDO\s*:?\s*([^\n]+)`),
}

// ExtractTextFields runs the label-anchored pattern lists over raw OCR
// text. Per field, the first pattern that matches and parses wins.
func ExtractTextFields(text string) TextFields {
	fields := TextFields{}

	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if amount := ParseLocalizedNumber(m[1]); amount != nil {
			fields.Amount = amount
			break
		}
	}

	for _, re := range dueDatePatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if date := ParseLocalizedDate(m[1]); date != nil {
			fields.DueDate = date
			break
		}
	}

	for _, re := range beneficiaryPatterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if name := normalizeBeneficiary(m[1]); name != "" {
			fields.Beneficiary = name
			break
		}
	}

	return fields
}

// ParseLocalizedNumber converts a Brazilian-formatted numeric substring
// ("1.234,56") into a decimal. Non-numeric residue yields nil, never an
// error.
func ParseLocalizedNumber(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return nil
	}
	return &d
}

// ParseLocalizedDate accepts DD/MM/YYYY or DD.MM.YYYY. An invalid
// calendar date (day 32, month 13) yields nil.
func ParseLocalizedDate(s string) *time.Time {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "/")
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return nil
	}
	return &t
}

// normalizeBeneficiary collapses whitespace and caps the name at 200
// characters. The cut is rune-based so it never splits an accented
// Portuguese character.
func normalizeBeneficiary(s string) string {
	name := strings.Join(strings.Fields(s), " ")
	runes := []rune(name)
	if len(runes) > maxBeneficiaryLen {
		name = string(runes[:maxBeneficiaryLen])
	}
	return name
}
