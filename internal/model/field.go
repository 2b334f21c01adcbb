package model

// Field is one of the canonical columns downstream stages operate on.
type Field string

const (
	FieldSupplier Field = "supplier"
	FieldSpend    Field = "spend"
	FieldCategory Field = "category"
	FieldYear     Field = "year"
)

// Fields lists the canonical fields in export column order.
var Fields = []Field{FieldSupplier, FieldSpend, FieldCategory, FieldYear}

// Required reports whether a source must carry a column for the field.
func (f Field) Required() bool {
	return f == FieldSupplier || f == FieldSpend
}

// DropReason explains why a row was excluded from the clean set.
type DropReason string

const (
	DropEmptySupplier DropReason = "empty_supplier"
	DropInvalidSpend  DropReason = "invalid_spend"
	DropNegativeSpend DropReason = "negative_spend"
	DropMissingYear   DropReason = "missing_year"
)

// DropReasons lists every reason in report order.
var DropReasons = []DropReason{DropEmptySupplier, DropInvalidSpend, DropNegativeSpend, DropMissingYear}
