// Package stringlib provides string functions beyond goLang primitives
package stringlib

import (
	"regexp"
	"strconv"
	"strings"
)

/***************************************************************************************************************
****************************************************************************************************************
* String functions *********************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote, the curly apostrophe
	"“", `"`, // left double quote
	"”", `"`, // right double quote
)

// RmNewLines removes any newline found on the input string
func RmNewLines(t string) string {
	var re = regexp.MustCompile(`(\n+)`)
	t = re.ReplaceAllString(t, "")

	return t
}

// IsNumeric tells whether input is a number or not
func IsNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// NormalizeQuotes turns typographic quotes and apostrophes into their ASCII
// forms, so that "Harry's" tokenizes the same whichever way it was typeset
func NormalizeQuotes(t string) string {
	return quoteReplacer.Replace(t)
}

// StripBOM removes a leading UTF-8 byte order mark, common on downloaded ebook text files
func StripBOM(t string) string {
	return strings.TrimPrefix(t, "\uFEFF")
}
