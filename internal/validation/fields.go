package validation

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// =============================================================================
// FIELD VALIDATORS
// =============================================================================
// Each validator takes the raw text of a present cell and reports whether it
// has the expected shape. Null cells never reach a validator; the rule table
// maps them to Absent.

var (
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,6}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	skuPattern      = regexp.MustCompile(`^[A-Za-z0-9]{3}-[0-9]{8}$`)
	titlePattern    = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ0-9 ]+$`)
	currencyPattern = regexp.MustCompile(`^[A-Za-z0-9]{3}$`)
)

const (
	dateLayout = "2006-01-02"

	// The fractional seconds are matched by dateTimePattern; time.Parse
	// accepts them after the seconds field without a layout element.
	dateTimeLayout = "2006-01-02T15:04:05"

	canonicalUUIDLength = 36
)

// ValidateIdentifier reports whether value is a UUID in canonical hyphenated
// form (8-4-4-4-12 hex digits). Any version is accepted.
func ValidateIdentifier(value string) bool {
	// uuid.Parse also accepts braced, URN and unhyphenated forms.
	if len(value) != canonicalUUIDLength {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// ValidateDateTime reports whether value is YYYY-MM-DDTHH:MM:SS.ffffff with
// one to six fractional digits and a real calendar date and clock time.
func ValidateDateTime(value string) bool {
	if !dateTimePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(dateTimeLayout, value)
	return err == nil
}

// ValidateDate reports whether value is a real calendar date in YYYY-MM-DD form.
func ValidateDate(value string) bool {
	_, ok := ParseDate(value)
	return ok
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, bool) {
	if !datePattern.MatchString(value) {
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ValidateNumber reports whether value parses as a finite number.
func ValidateNumber(value string) bool {
	_, ok := ParseNumber(value)
	return ok
}

// ParseNumber converts value to a float64. Surrounding whitespace, a sign, a
// decimal point and an exponent are accepted; NaN, infinities and hex
// notation are not.
func ParseNumber(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" || strings.ContainsAny(s, "xX") {
		return 0, false
	}

	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ValidateSKU reports whether value is three alphanumerics, a hyphen and
// eight digits.
func ValidateSKU(value string) bool {
	return skuPattern.MatchString(value)
}

// ValidateTitle reports whether value is a non-empty run of letters (ASCII,
// accented vowels, Ñ/ñ), digits and spaces.
func ValidateTitle(value string) bool {
	return titlePattern.MatchString(value)
}

// ValidateCurrency reports whether value is exactly three alphanumerics.
func ValidateCurrency(value string) bool {
	return currencyPattern.MatchString(value)
}
