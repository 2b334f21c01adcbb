package model

import "github.com/shopspring/decimal"

// RawRecord is one source row as read. Values pair positionally with
// RawTable.Headers.
type RawRecord struct {
	Row    int // 1-based line or sheet row in the source
	Values []string
	// Numbers holds the unformatted literal of typed numeric cells at the
	// same positions as Values, "" for text cells. Nil when the source has
	// no cell types.
	Numbers []string
}

// RawTable is an untyped tabular source.
type RawTable struct {
	Source  string
	Sheet   string // empty for delimited sources
	Headers []string
	Records []RawRecord
}

// CanonicalRecord is a row after header mapping. Values are still untyped.
type CanonicalRecord struct {
	Row         int
	Supplier    string
	Spend       string
	SpendNumber string // set when the spend cell was a typed number
	Category    string
	Year        string
	HasCategory bool
	HasYear     bool
}

// CleanRecord is a row that passed value cleaning.
type CleanRecord struct {
	Row      int
	Supplier string
	Spend    decimal.Decimal // rounded to cents
	Category string          // may be empty
	Year     int             // 0 when the source has no year column
}
