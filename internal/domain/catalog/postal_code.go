package catalog

import (
	"regexp"
	"strings"
)

// postalCodePatterns maps ISO country codes to postal code formats for the
// markets the catalog ships to. Countries absent from this table are
// treated as having an unknown format and are not validated.
var postalCodePatterns = map[string]*regexp.Regexp{
	"IT": regexp.MustCompile(`^\d{5}$`),
	"FR": regexp.MustCompile(`^\d{5}$`),
	"DE": regexp.MustCompile(`^\d{5}$`),
	"ES": regexp.MustCompile(`^\d{5}$`),
	"AT": regexp.MustCompile(`^\d{4}$`),
	"CH": regexp.MustCompile(`^\d{4}$`),
	"SI": regexp.MustCompile(`^\d{4}$`),
	"PT": regexp.MustCompile(`^\d{4}-\d{3}$`),
	"NL": regexp.MustCompile(`^\d{4}\s?[A-Za-z]{2}$`),
	"US": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
	"GB": regexp.MustCompile(`^[A-Za-z]{1,2}\d[A-Za-z\d]?\s?\d[A-Za-z]{2}$`),
}

// ValidatePostalCode checks a postal code against the format of the given
// ISO country code. The second return value reports whether the country's
// format is known; validation is skipped entirely for unknown formats.
func ValidatePostalCode(iso, code string) (valid bool, known bool) {
	pattern, ok := postalCodePatterns[strings.ToUpper(iso)]
	if !ok {
		return false, false
	}
	return pattern.MatchString(strings.TrimSpace(code)), true
}
