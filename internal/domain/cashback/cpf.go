package cashback

import "strings"

// NormalizeCPF reduces a CPF to its canonical digits-only form, stripping
// punctuation such as dots and dashes. It is total over all inputs and
// idempotent; an empty input yields an empty output.
func NormalizeCPF(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}
