package card

import (
	"fmt"
	"strings"
)

// Placeholders rendered for fields that could not be extracted.
// The Key struct itself keeps absent fields as empty strings so that
// "unknown" is explicit rather than a magic string; the placeholders
// only appear in rendered form.
const (
	UnknownSetCode = "UNK"
	UnknownNumber  = "XXX"
)

// Key is the identity of a card across sources: set code, zero-padded
// number and variant. Empty SetCode or Number means the field could not
// be extracted. Two records missing the same field share a key and will
// merge during reconciliation; that collapse is deliberate and tested.
type Key struct {
	SetCode string
	Number  string
	Variant Variant
}

// KeyOf derives the identity key for a record. Derivation is a pure
// function of set code, number and variant: the set code is used
// verbatim, the number is canonicalized with CanonicalNumber, and a
// missing variant defaults to Normal.
func KeyOf(c Card) Key {
	v := c.Variant
	if v == "" {
		v = VariantNormal
	}
	return Key{
		SetCode: c.SetCode,
		Number:  CanonicalNumber(c.Number),
		Variant: v,
	}
}

// String renders the key with UNK/XXX placeholders for absent fields,
// matching the form used in snapshots and reports.
func (k Key) String() string {
	set := k.SetCode
	if set == "" {
		set = UnknownSetCode
	}
	num := k.Number
	if num == "" {
		num = UnknownNumber
	}
	return fmt.Sprintf("%s_%s_%s", set, num, k.Variant)
}

// Less orders keys by set code, number, then variant rank. Used for
// deterministic iteration over reconciled tables.
func (k Key) Less(other Key) bool {
	if k.SetCode != other.SetCode {
		return k.SetCode < other.SetCode
	}
	if k.Number != other.Number {
		return k.Number < other.Number
	}
	return variantRank(k.Variant) < variantRank(other.Variant)
}

func variantRank(v Variant) int {
	switch v {
	case VariantNormal:
		return 0
	case VariantReverseHolo:
		return 1
	case VariantHolo:
		return 2
	default:
		return 99
	}
}

// CanonicalNumber zero-pads purely numeric card numbers to three digits
// so "1", "01" and "001" all match. Non-numeric numbers (promo suffixes
// and the like) are returned verbatim, and the empty string stays empty.
func CanonicalNumber(number string) string {
	if number == "" {
		return ""
	}
	if !isDigits(number) {
		return number
	}
	trimmed := strings.TrimLeft(number, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	if len(trimmed) >= 3 {
		return trimmed
	}
	return strings.Repeat("0", 3-len(trimmed)) + trimmed
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
