package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical validation bounds. The production importers disagreed on the
// level cap (200 vs 300) and name length (30 vs 40); 200 and 40 are the
// canonical values here, matching the character creation form.
const (
	minNameLength = 1
	maxNameLength = 40
	minLevel      = 1
	maxLevel      = 200
	maxNoteLength = 500
	maxQueryLen   = 50
)

// Character names: latin letters including the accented ranges, hyphen and
// square brackets. Validated against the normalized form.
var nameRegex = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\-\[\]]+$`)

// characterClasses is the canonical class enum. "Cra" is accepted as an
// input alias for "Crâ" (players rarely type the circumflex).
var characterClasses = []string{
	"Feca", "Osamodas", "Enutrof", "Sram", "Xelor", "Ecaflip", "Eniripsa",
	"Iop", "Crâ", "Sadida", "Sacrieur", "Pandawa", "Roublard", "Zobal",
	"Steamer", "Eliotrope", "Huppermage", "Ouginak", "Forgelance",
}

var classSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(characterClasses))
	for _, class := range characterClasses {
		set[class] = struct{}{}
	}
	return set
}()

// CanonicalClass resolves a class name to its canonical enum value.
// Returns false when the class is unknown.
func CanonicalClass(class string) (string, bool) {
	if class == "Cra" {
		class = "Crâ"
	}
	_, ok := classSet[class]
	return class, ok
}

// zero-width and byte-order-mark characters that must never survive
// normalization: they are invisible and would defeat name uniqueness.
func isZeroWidth(r rune) bool {
	return (r >= '\u200B' && r <= '\u200D') || r == '\uFEFF'
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7F
}

// NormalizeName brings a character name to its canonical form: NFKC
// composition, zero-width characters stripped, surrounding space trimmed.
// Normalizing an already-normalized name is a no-op, so the stored form is
// a stable uniqueness key.
func NormalizeName(input string) string {
	normalized := norm.NFKC.String(input)
	normalized = strings.Map(func(r rune) rune {
		if isZeroWidth(r) {
			return -1
		}
		return r
	}, normalized)
	return strings.TrimSpace(normalized)
}

// ValidName reports whether a normalized name satisfies the length and
// alphabet constraints.
func ValidName(name string) bool {
	n := len([]rune(name))
	return n >= minNameLength && n <= maxNameLength && nameRegex.MatchString(name)
}

// ValidLevel reports whether a character level is inside the canonical bounds.
func ValidLevel(level int) bool {
	return level >= minLevel && level <= maxLevel
}

func sanitizeText(input string, maxRunes int) string {
	sanitized := norm.NFKC.String(input)
	sanitized = strings.Map(func(r rune) rune {
		if isZeroWidth(r) || isControl(r) {
			return -1
		}
		return r
	}, sanitized)
	sanitized = strings.TrimSpace(sanitized)
	if runes := []rune(sanitized); len(runes) > maxRunes {
		sanitized = string(runes[:maxRunes])
	}
	return sanitized
}

// SanitizeNote cleans a selection note: NFKC, invisible and control
// characters stripped, trimmed, clamped to 500 characters.
func SanitizeNote(input string) string {
	return sanitizeText(input, maxNoteLength)
}

// SanitizeQuery cleans a quest search query the same way, clamped to 50.
func SanitizeQuery(input string) string {
	return sanitizeText(input, maxQueryLen)
}
