package versioning

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DataLanguages are the content languages of the catalog in display order.
var DataLanguages = []string{"fi", "sv", "en", "se", "smn", "sms"}

var (
	dataTags = func() []language.Tag {
		tags := make([]language.Tag, 0, len(DataLanguages))
		for _, code := range DataLanguages {
			tags = append(tags, language.MustParse(code))
		}
		return tags
	}()
	matcher = language.NewMatcher(dataTags)
)

// NormalizeLanguage turns a BCP 47 tag such as "FI" or "sv-FI" into the data
// language code it denotes.
func NormalizeLanguage(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	base, _ := tag.Base()
	normalized := base.String()
	if !slices.Contains(DataLanguages, normalized) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return normalized, nil
}

// NormalizeLanguages normalizes and deduplicates codes, keeping catalog order.
func NormalizeLanguages(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized, err := NormalizeLanguage(code)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, normalized) {
			out = append(out, normalized)
		}
	}
	SortLanguages(out)
	return out, nil
}

// MatchLanguage picks the best data language for an Accept-Language header.
// Finnish is returned when nothing matches.
func MatchLanguage(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DataLanguages[0]
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DataLanguages[0]
	}
	return DataLanguages[index]
}

// Fallbacks returns preferred followed by the remaining data languages.
func Fallbacks(preferred string) []string {
	out := make([]string, 0, len(DataLanguages))
	if preferred != "" {
		out = append(out, preferred)
	}
	for _, code := range DataLanguages {
		if code != preferred {
			out = append(out, code)
		}
	}
	return out
}

// SortLanguages orders codes by catalog order; unknown codes go last.
func SortLanguages(codes []string) {
	rank := func(code string) int {
		if i := slices.Index(DataLanguages, code); i >= 0 {
			return i
		}
		return len(DataLanguages)
	}
	slices.SortStableFunc(codes, func(a, b string) int {
		if d := rank(a) - rank(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
}
