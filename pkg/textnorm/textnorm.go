// Package textnorm normaliza texto de entrada: búsqueda sin acentos y matrículas (funcional).
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita diacríticos y pasa a minúsculas: "João" → "joao".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// ContainsFolded informa si needle aparece en haystack ignorando acentos y mayúsculas.
func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// NormalizeFuncional lleva la matrícula a solo dígitos. La primera letra a..i se
// traduce a 1..9 (formato de usuario de red: "c123456" → "3123456"); del resto
// se conservan únicamente los dígitos.
func NormalizeFuncional(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range lower {
		switch {
		case i == 0 && r >= 'a' && r <= 'i':
			b.WriteRune('1' + (r - 'a'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
