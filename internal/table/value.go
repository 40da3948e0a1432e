package table

import (
	"strconv"
	"time"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindTime
)

// Value is a single cell. The zero value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	t    time.Time
}

// Null is the missing-value cell.
var Null = Value{}

// String creates a text cell.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Time creates a date/time cell.
func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// Kind returns the cell's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the text content. Valid only for KindString cells.
func (v Value) Str() string { return v.str }

// Num returns the numeric content. Valid only for KindNumber cells.
func (v Value) Num() float64 { return v.num }

// Date returns the time content. Valid only for KindTime cells.
func (v Value) Date() time.Time { return v.t }

// AsNumber attempts a numeric view of the cell. Strings are parsed,
// numbers pass through, everything else reports false.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsString renders the cell as text. Numbers are rendered without a
// trailing ".0" so that a supplier code read as 4567 becomes "4567",
// dates render as ISO dates, and null renders empty.
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num == float64(int64(v.num)) {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.t.Format("2006-01-02")
	default:
		return ""
	}
}
