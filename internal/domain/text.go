package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower folds s for case-insensitive matching using Polish casing rules.
// A Caser is stateful, so one is created per call.
func Lower(s string) string {
	return cases.Lower(language.Polish).String(s)
}

func Upper(s string) string {
	return cases.Upper(language.Polish).String(s)
}
