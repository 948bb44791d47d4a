// =============================================================================
// Order Line Cleaner - Validation Engine
// =============================================================================
//
// This module decides whether a single order line is usable. It checks every
// schema field against a fixed rule and reduces the field outcomes to one
// row verdict.
//
// VALIDATION STRATEGY:
//   1. Field-level: the rule table maps each field to a validator
//   2. Row-level: the verdict is the AND of all non-advisory field outcomes
//
// ERROR HANDLING:
//   - Validators never fail; malformed values are simply Invalid
//   - Null cells are reported as Absent, which also fails the row
//   - Failures are collected on the result for debug logging
//
// =============================================================================

package validation

import (
	"fmt"

	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

// =============================================================================
// OUTCOME
// =============================================================================

// Outcome is the result of checking one field.
type Outcome uint8

const (
	// Absent means the cell was null or the column was missing.
	Absent Outcome = iota

	// Invalid means the cell was present but had the wrong shape.
	Invalid

	// Valid means the cell passed its rule.
	Valid
)

// OK reports whether the outcome counts as a pass.
func (o Outcome) OK() bool {
	return o == Valid
}

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "absent"
	}
}

// =============================================================================
// RULE TABLE
// =============================================================================

// CheckFunc tests the raw text of a present cell.
type CheckFunc func(value string) bool

// FieldRule binds a field to the validator that checks it.
type FieldRule struct {
	// Field is the column name.
	Field string

	// Rule is a short name for the check, used in log output.
	Rule string

	// Check is the validator.
	Check CheckFunc

	// Advisory rules are evaluated and reported but do not take part in the
	// row verdict.
	Advisory bool
}

// Evaluate checks the field on rec.
func (fr FieldRule) Evaluate(rec types.Record) Outcome {
	v, ok := rec.Get(fr.Field)
	if !ok {
		return Absent
	}
	if fr.Check(v) {
		return Valid
	}
	return Invalid
}

func rule(field, name string, check CheckFunc) FieldRule {
	return FieldRule{Field: field, Rule: name, Check: check}
}

// OrderLineRules is the fixed rule table for the order line export.
//
// purchased_month_ended is advisory: it is checked and reported but never
// rejects a row.
var OrderLineRules = []FieldRule{
	rule(types.FieldOrderID, "identifier", ValidateIdentifier),
	rule(types.FieldPurchasedAt, "datetime", ValidateDateTime),
	rule(types.FieldPurchasedDate, "date", ValidateDate),
	{Field: types.FieldPurchasedMonthEnded, Rule: "date", Check: ValidateDate, Advisory: true},
	rule(types.FieldOrderItemID, "number", ValidateNumber),
	rule(types.FieldSKU, "sku", ValidateSKU),
	rule(types.FieldProductTitle, "title", ValidateTitle),
	rule(types.FieldProductNameFull, "title", ValidateTitle),
	rule(types.FieldCurrency, "currency", ValidateCurrency),
	rule(types.FieldItemPrice, "number", ValidateNumber),
	rule(types.FieldItemTax, "number", ValidateNumber),
	rule(types.FieldShippingPrice, "number", ValidateNumber),
	rule(types.FieldShippingTax, "number", ValidateNumber),
	rule(types.FieldGiftWrapPrice, "number", ValidateNumber),
	rule(types.FieldGiftWrapTax, "number", ValidateNumber),
	rule(types.FieldItemPromoDiscount, "number", ValidateNumber),
	rule(types.FieldShipmentPromoDiscount, "number", ValidateNumber),
	rule(types.FieldShipServiceLevel, "title", ValidateTitle),
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Failure describes one field that did not pass.
type Failure struct {
	Field   string
	Rule    string
	Outcome Outcome
	Value   string
}

// String formats the failure for logs.
func (f Failure) String() string {
	if f.Outcome == Absent {
		return fmt.Sprintf("%s: absent", f.Field)
	}
	return fmt.Sprintf("%s: %q is not a valid %s", f.Field, f.Value, f.Rule)
}

// Result holds the per-field outcomes for one record and the row verdict.
type Result struct {
	// Fields maps each checked field to its outcome, advisory fields included.
	Fields map[string]Outcome

	// ValidRow is the AND of every non-advisory outcome.
	ValidRow bool

	// Failures lists the non-passing fields in rule order, advisory ones
	// included.
	Failures []Failure
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier applies a rule table to records.
type Classifier struct {
	rules []FieldRule
}

// NewClassifier creates a Classifier over rules. A nil table selects
// OrderLineRules.
func NewClassifier(rules []FieldRule) *Classifier {
	if rules == nil {
		rules = OrderLineRules
	}
	return &Classifier{rules: rules}
}

// Rules returns the rule table in use.
func (c *Classifier) Rules() []FieldRule {
	return c.rules
}

// Classify checks every rule against rec and reduces the outcomes.
func (c *Classifier) Classify(rec types.Record) Result {
	result := Result{
		Fields:   make(map[string]Outcome, len(c.rules)),
		ValidRow: true,
	}

	for _, fr := range c.rules {
		outcome := fr.Evaluate(rec)
		result.Fields[fr.Field] = outcome

		if outcome.OK() {
			continue
		}

		result.Failures = append(result.Failures, Failure{
			Field:   fr.Field,
			Rule:    fr.Rule,
			Outcome: outcome,
			Value:   rec[fr.Field],
		})

		if !fr.Advisory {
			result.ValidRow = false
		}
	}

	return result
}

// Classify checks rec against OrderLineRules.
func Classify(rec types.Record) Result {
	return defaultClassifier.Classify(rec)
}

var defaultClassifier = NewClassifier(nil)
