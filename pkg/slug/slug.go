// Package slug формирует URL-безопасные идентификаторы из человекочитаемых названий.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const separator = '-'

// Make строит slug из названия: границы camelCase превращаются в разделители,
// диакритика удаляется, буквы приводятся к нижнему регистру, любая серия
// небуквенно-цифровых символов сворачивается в один дефис, края обрезаются.
func Make(name string) string {
	spaced := splitCamelCase(name)
	flat := stripDiacritics(spaced)
	lower := strings.ToLower(flat)

	var b strings.Builder
	b.Grow(len(lower))
	pendingSep := false
	for _, r := range lower {
		if isAlphanumeric(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}

// WithSuffix добавляет числовой суффикс к базовому slug: "name" -> "name-2".
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + string(separator) + strconv.Itoa(n)
}

// splitCamelCase вставляет пробел на границе строчная/прописная буква.
func splitCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range s {
		if prevLower && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		prevLower = unicode.IsLower(r)
		b.WriteRune(r)
	}

	return b.String()
}

// stripDiacritics удаляет комбинируемые диакритические знаки через NFD-разложение.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
