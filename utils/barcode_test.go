package utils

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// barcodePrefix is the first 33 digits of a syntactically plausible linha
// digitável (bank 001); tests append a 4-digit due-date factor and a
// 10-digit cents value to complete the 47 digits.
const barcodePrefix = "001900000501234567890123456789013"

// testDueDate is within the 4-digit factor window (9734 days after the
// 1997-10-07 epoch).
var testDueDate = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func buildBarcode(t *testing.T, factor int, cents int64) string {
	t.Helper()
	require.LessOrEqual(t, factor, 9999, "due-date factor must fit the 4-digit field")
	code := barcodePrefix + fmt.Sprintf("%04d%010d", factor, cents)
	require.Len(t, code, 47)
	return code
}

func dueDateFactor(due time.Time) int {
	epoch := time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)
	return int(due.Sub(epoch).Hours() / 24)
}

func TestIsPlausibleBarcode(t *testing.T) {
	valid47 := buildBarcode(t, 1000, 150000)

	assert.True(t, IsPlausibleBarcode(valid47))
	assert.True(t, IsPlausibleBarcode(valid47+"7"))
	assert.True(t, IsPlausibleBarcode("999"+strings.Repeat("0", 44)))

	// Wrong length
	assert.False(t, IsPlausibleBarcode(valid47[:46]))
	assert.False(t, IsPlausibleBarcode(valid47+"77"))
	assert.False(t, IsPlausibleBarcode(""))

	// Non-digit
	assert.False(t, IsPlausibleBarcode(valid47[:46]+"X"))

	// Bank prefix out of range
	assert.False(t, IsPlausibleBarcode("000"+strings.Repeat("1", 44)))
}

func TestFindBarcodeGrouped(t *testing.T) {
	digits := buildBarcode(t, 1000, 150000)
	printed := digits[0:5] + "." + digits[5:10] + " " +
		digits[10:15] + "." + digits[15:21] + " " +
		digits[21:26] + "." + digits[26:32] + " " +
		digits[32:33] + " " + digits[33:47]

	text := "BANCO DO BRASIL\n" + printed + "\nVENCIMENTO: 15/03/2025"

	candidate, found := FindBarcode(text)
	require.True(t, found)
	assert.Equal(t, digits, candidate.Digits)
	assert.Equal(t, "grouped", candidate.Strategy)
}

func TestFindBarcodeCondensed(t *testing.T) {
	digits := buildBarcode(t, 1000, 150000)
	// Broken across a line at a non-group boundary
	text := "linha " + digits[:20] + "\n" + digits[20:] + " fim"

	candidate, found := FindBarcode(text)
	require.True(t, found)
	assert.Equal(t, digits, candidate.Digits)
	assert.Equal(t, "condensed", candidate.Strategy)
}

func TestFindBarcodeSlidingWindow(t *testing.T) {
	digits := buildBarcode(t, 1000, 150000)
	// Leading noise digits glue onto the code, so only the brute-force
	// window at the right offset passes validation.
	text := "nota 000" + digits

	candidate, found := FindBarcode(text)
	require.True(t, found)
	assert.Equal(t, digits, candidate.Digits)
	assert.Equal(t, "window", candidate.Strategy)
}

func TestFindBarcodeNotFound(t *testing.T) {
	_, found := FindBarcode("VENCIMENTO: 15/03/2025 VALOR: 1.500,00")
	assert.False(t, found)

	_, found = FindBarcode("")
	assert.False(t, found)
}

func TestDecodeBarcodeAmountRoundTrip(t *testing.T) {
	digits := buildBarcode(t, 1000, 123456)

	fields := DecodeBarcodeFields(digits)
	require.NotNil(t, fields.Amount)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(*fields.Amount))
}

func TestDecodeBarcodeAmountZeroMeansAbsent(t *testing.T) {
	fields := DecodeBarcodeFields(buildBarcode(t, 1000, 0))
	assert.Nil(t, fields.Amount)
}

func TestDecodeBarcodeDueDateRoundTrip(t *testing.T) {
	digits := buildBarcode(t, dueDateFactor(testDueDate), 150000)

	fields := DecodeBarcodeFields(digits)
	require.NotNil(t, fields.DueDate)
	assert.True(t, testDueDate.Equal(*fields.DueDate))
}

func TestDecodeBarcodeDueDateZeroMeansAbsent(t *testing.T) {
	fields := DecodeBarcodeFields(buildBarcode(t, 0, 150000))
	assert.Nil(t, fields.DueDate, "factor 0 must decode to absent, not the epoch")
}

func TestDecodeBarcodeDueDateImplausibleYearDiscarded(t *testing.T) {
	// 100 days after the 1997 epoch lands in 1998, outside [2000, 2100]
	fields := DecodeBarcodeFields(buildBarcode(t, 100, 150000))
	assert.Nil(t, fields.DueDate)
}

func TestDecodeBarcode48Digits(t *testing.T) {
	// Same layout as the 47-digit code with one extra digit at position
	// 37: the factor stays at 0-indexed 33-36 and the amount is still the
	// trailing 10 digits.
	digits48 := barcodePrefix + fmt.Sprintf("%04d", dueDateFactor(testDueDate)) + "6" + fmt.Sprintf("%010d", int64(123456))
	require.Len(t, digits48, 48)

	fields := DecodeBarcodeFields(digits48)
	require.NotNil(t, fields.Amount)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(*fields.Amount))
	require.NotNil(t, fields.DueDate)
	assert.True(t, testDueDate.Equal(*fields.DueDate))
}

func TestDecodeITFBarcodeFields(t *testing.T) {
	code := "00191" + fmt.Sprintf("%04d%010d", dueDateFactor(testDueDate), int64(123456)) + strings.Repeat("0", 25)
	require.Len(t, code, 44)

	fields := DecodeITFBarcodeFields(code)
	require.NotNil(t, fields.Amount)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(*fields.Amount))
	require.NotNil(t, fields.DueDate)
	assert.True(t, testDueDate.Equal(*fields.DueDate))

	// Wrong length or non-digit yields nothing
	assert.Nil(t, DecodeITFBarcodeFields(code[:43]).Amount)
	assert.Nil(t, DecodeITFBarcodeFields(code[:43]+"X").Amount)
}
