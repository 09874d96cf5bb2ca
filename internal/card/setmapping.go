package card

import "strings"

// SetMapping maps set codes to canonical set names. It is built once
// from catalog records and treated as immutable afterwards.
type SetMapping map[string]string

// BuildSetMapping collects set code → set name pairs from records that
// carry both fields. Catalog records are authoritative for naming; later
// records for the same code overwrite earlier ones.
func BuildSetMapping(cards []Card) SetMapping {
	m := make(SetMapping)
	for _, c := range cards {
		if c.SetCode != "" && c.SetName != "" {
			m[c.SetCode] = c.SetName
		}
	}
	return m
}

// Marketplace listings for promotional sets sometimes use names that
// never appear in the catalog under the same code. These are remapped
// onto the catalog's set before name resolution.
var setAliases = map[string]struct {
	code string
	name string
}{
	"McDonald's Dragon Discovery": {code: "M24", name: "McDonald's Dragon Discovery 2024"},
}

// Resolve backfills the set name on a record whose code is known to the
// mapping. Marketplace records carry placeholder names ("Set XYZ") until
// the catalog source for that code has been seen; records with codes the
// catalog never mentions keep their placeholder, which surfaces as an
// identifiable "unknown set" bucket in reports.
func (m SetMapping) Resolve(c *Card) {
	for fragment, alias := range setAliases {
		if strings.Contains(c.SetName, fragment) {
			c.SetCode = alias.code
			c.SetName = alias.name
			return
		}
	}
	if name, ok := m[c.SetCode]; ok && c.SetCode != "" {
		c.SetName = name
	}
}
