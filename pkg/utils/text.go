package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars   = regexp.MustCompile("[^a-z0-9-]")
	repeatedHyphen = regexp.MustCompile("-+")
	nonDigits      = regexp.MustCompile(`\D`)
)

// Slugify converts a school name to a URL-friendly tenant slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = repeatedHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizePhone strips everything but digits and folds the local
// "07xx" form into the "2547xx" international form, so guardian phones
// typed differently still compare equal.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(digits, "0") && len(digits) == 10 {
		return "254" + digits[1:]
	}
	return digits
}
