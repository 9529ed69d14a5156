package jsonedit

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coerce turns edited field text into a JSON scalar.
//
// "true", "false" and "null" map to their literals and the empty string stays
// a string. Anything else becomes a json.Number only when the parsed number
// renders back to exactly the same text, so "007", "1.0" or "1e3" stay strings.
// Coerce never fails.
func Coerce(text string) any {
	switch text {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	case "":
		return ""
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return text
	}
	if formatNumber(f) != text {
		return text
	}
	return json.Number(text)
}

// formatNumber renders f the way ECMAScript Number#toString does: plain
// decimal in [1e-6, 1e21), exponent form elsewhere, and no negative zero.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + exp[:1] + digits
}
