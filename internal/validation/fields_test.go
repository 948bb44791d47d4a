package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fieldCase struct {
	name  string
	value string
	want  bool
}

func runFieldCases(t *testing.T, fn CheckFunc, cases []fieldCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fn(tc.value), "value %q", tc.value)
		})
	}
}

func TestValidators_RejectEmpty(t *testing.T) {
	validators := map[string]CheckFunc{
		"identifier": ValidateIdentifier,
		"datetime":   ValidateDateTime,
		"date":       ValidateDate,
		"number":     ValidateNumber,
		"sku":        ValidateSKU,
		"title":      ValidateTitle,
		"currency":   ValidateCurrency,
	}

	for name, fn := range validators {
		t.Run(name, func(t *testing.T) {
			assert.False(t, fn(""))
			assert.False(t, fn("\x00\xff garbage {}"))
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	runFieldCases(t, ValidateIdentifier, []fieldCase{
		{"v4", "550e8400-e29b-41d4-a716-446655440000", true},
		{"v1 uppercase", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", true},
		{"nil uuid", "00000000-0000-0000-0000-000000000000", true},
		{"not a uuid", "not-a-uuid", false},
		{"no hyphens", "550e8400e29b41d4a716446655440000", false},
		{"braced", "{550e8400-e29b-41d4-a716-446655440000}", false},
		{"urn", "urn:uuid:550e8400-e29b-41d4-a716-446655440000", false},
		{"bad hex", "550e8400-e29b-41d4-a716-44665544000g", false},
		{"misplaced hyphen", "550e840-0e29b-41d4-a716-446655440000", false},
	})
}

func TestValidateDateTime(t *testing.T) {
	runFieldCases(t, ValidateDateTime, []fieldCase{
		{"six fraction digits", "2024-03-01T10:15:30.123456", true},
		{"one fraction digit", "2024-03-01T10:15:30.1", true},
		{"leap day", "2024-02-29T00:00:00.000000", true},
		{"no fraction", "2024-03-01T10:15:30", false},
		{"seven fraction digits", "2024-03-01T10:15:30.1234567", false},
		{"zone suffix", "2024-03-01T10:15:30.123456Z", false},
		{"offset suffix", "2024-03-01T10:15:30.123456+02:00", false},
		{"space separator", "2024-03-01 10:15:30.123456", false},
		{"hour 24", "2024-03-01T24:00:00.0", false},
		{"feb 30", "2024-02-30T10:15:30.5", false},
		{"single digit month", "2024-3-01T10:15:30.5", false},
	})
}

func TestValidateDate(t *testing.T) {
	runFieldCases(t, ValidateDate, []fieldCase{
		{"plain", "2024-03-01", true},
		{"leap day", "2024-02-29", true},
		{"feb 30", "2024-02-30", false},
		{"non leap feb 29", "2023-02-29", false},
		{"month 13", "2024-13-01", false},
		{"slashes", "2024/02/29", false},
		{"datetime", "2024-02-29T00:00:00.0", false},
		{"trailing space", "2024-02-29 ", false},
	})
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-02-29")
	assert.True(t, ok)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 29, d.Day())

	_, ok = ParseDate("29-02-2024")
	assert.False(t, ok)
}

func TestValidateNumber(t *testing.T) {
	runFieldCases(t, ValidateNumber, []fieldCase{
		{"integer", "42", true},
		{"decimal", "19.99", true},
		{"negative", "-3.5", true},
		{"plus sign", "+7", true},
		{"leading dot", ".5", true},
		{"exponent", "1e3", true},
		{"surrounding whitespace", "  12.50 ", true},
		{"text", "twelve", false},
		{"whitespace only", "   ", false},
		{"nan", "NaN", false},
		{"infinity", "inf", false},
		{"overflow", "1e999", false},
		{"hex", "0x1p-2", false},
		{"comma decimal", "12,50", false},
	})
}

func TestParseNumber(t *testing.T) {
	f, ok := ParseNumber(" 10.25 ")
	assert.True(t, ok)
	assert.InDelta(t, 10.25, f, 1e-9)

	_, ok = ParseNumber("abc")
	assert.False(t, ok)
}

func TestValidateSKU(t *testing.T) {
	runFieldCases(t, ValidateSKU, []fieldCase{
		{"letters", "ABC-12345678", true},
		{"mixed", "a1Z-00000000", true},
		{"two leading", "AB-12345678", false},
		{"seven digits", "ABC-1234567", false},
		{"nine digits", "ABC-123456789", false},
		{"letter in digits", "ABC-1234567A", false},
		{"no hyphen", "ABC12345678", false},
		{"prefix garbage", "xABC-12345678", false},
		{"trailing newline", "ABC-12345678\n", false},
	})
}

func TestValidateTitle(t *testing.T) {
	runFieldCases(t, ValidateTitle, []fieldCase{
		{"ascii", "Blue Shirt 42", true},
		{"accents", "Camión Pequeño Ñandú", true},
		{"upper accents", "ÁÉÍÓÚ", true},
		{"single space", " ", true},
		{"punctuation", "Shirt, blue", false},
		{"hyphen", "T-Shirt", false},
		{"other accent", "Crème", false},
		{"tab", "Blue\tShirt", false},
	})
}

func TestValidateCurrency(t *testing.T) {
	runFieldCases(t, ValidateCurrency, []fieldCase{
		{"usd", "USD", true},
		{"lowercase", "eur", true},
		{"digits", "123", true},
		{"two chars", "US", false},
		{"four chars", "USDT", false},
		{"symbol", "US$", false},
	})
}
