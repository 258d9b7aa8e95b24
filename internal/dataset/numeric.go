package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// commaGrouped matches values like "1,200" or "12,500,000" where commas can
// only be digit grouping.
var commaGrouped = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+$`)

// parseNumeric parses survey cells such as "12", "3,5", "1.000,25" or "40%".
// Separators follow opt when set and are auto-detected otherwise.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)

	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0, commaGrouped.MatchString(raw):
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// naValues are cell texts treated as missing, matching common spreadsheet
// and pandas exports.
var naValues = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {}, "#n/a": {}, "-": {},
}

func isMissing(v string) bool {
	_, ok := naValues[strings.ToLower(v)]
	return ok
}
