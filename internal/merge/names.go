package merge

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperCaser = cases.Upper(language.AmericanEnglish)

// CanonicalRegionName normalizes a human region name for name-keyed
// joins: the annual AQI summary keys counties as "Cook County" while
// boundary sources carry "Cook". Trailing "County" is dropped and the
// name upper-cased.
func CanonicalRegionName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, " County")
	name = strings.TrimSuffix(name, " county")
	return upperCaser.String(strings.TrimSpace(name))
}

// CoerceFIPS normalizes a county FIPS code: spreadsheet exports leak a
// trailing ".0" and strip leading zeros, so the code is cleaned and
// left-padded back to five digits.
func CoerceFIPS(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")
	for len(s) < 5 {
		s = "0" + s
	}
	return s
}
