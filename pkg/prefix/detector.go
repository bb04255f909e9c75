// Package prefix detects typed shorthand prefixes and manages the structured
// prefix state they turn into.
package prefix

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"tableflip.dev/outline/pkg/document"
)

// Kind identifies a prefix behaviour.
type Kind int

const (
	// Bullet is a "- " or "* " list marker.
	Bullet Kind = iota
	// Checkbox is a task box, open or ticked.
	Checkbox
	// Tag is a short "[label] " marker.
	Tag
)

// Kinds lists every prefix kind in detection priority order.
var Kinds = []Kind{Bullet, Checkbox, Tag}

func (k Kind) String() string {
	switch k {
	case Bullet:
		return "bullet"
	case Checkbox:
		return "checkbox"
	case Tag:
		return "tag"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a configuration name onto a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("prefix: unknown kind %q", s)
}

// Set is a set of enabled kinds.
type Set uint8

// NewSet returns a set holding kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// SetFromFeatures returns the prefix kinds a document enables.
func SetFromFeatures(f document.Features) Set {
	var kinds []Kind
	if f.Bullet {
		kinds = append(kinds, Bullet)
	}
	if f.Checkbox {
		kinds = append(kinds, Checkbox)
	}
	if f.Tag {
		kinds = append(kinds, Tag)
	}
	return NewSet(kinds...)
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

var (
	bulletLiterals    = []string{"- ", "* "}
	uncheckedLiterals = []string{"[] ", "[ ] "}
	checkedLiterals   = []string{"[x] ", "[X] "}
	tagPattern        = regexp.MustCompile(`^\[(\w+)\] `)
)

// Match is a detected prefix.
type Match struct {
	Kind Kind
	// Length is the number of runes of text the prefix consumed.
	Length int
	// Checked is the checkbox payload.
	Checked bool
	// Tag is the tag payload, at most document.MaxTagLength runes.
	Tag string
}

// Detector finds the first enabled prefix at the start of a line's text.
type Detector struct {
	Enabled Set
}

// Detect returns at most one match: bullet, then checkbox, then tag, each
// only when enabled. Empty text never matches.
func (d Detector) Detect(text string) (Match, bool) {
	if text == "" {
		return Match{}, false
	}
	if d.Enabled.Has(Bullet) {
		if lit, ok := hasAnyPrefix(text, bulletLiterals); ok {
			return Match{Kind: Bullet, Length: utf8.RuneCountInString(lit)}, true
		}
	}
	if d.Enabled.Has(Checkbox) {
		if lit, ok := hasAnyPrefix(text, uncheckedLiterals); ok {
			return Match{Kind: Checkbox, Length: utf8.RuneCountInString(lit)}, true
		}
		if lit, ok := hasAnyPrefix(text, checkedLiterals); ok {
			return Match{Kind: Checkbox, Length: utf8.RuneCountInString(lit), Checked: true}, true
		}
	}
	if d.Enabled.Has(Tag) {
		if sub := tagPattern.FindStringSubmatch(text); sub != nil {
			tag := sub[1]
			if utf8.RuneCountInString(tag) > document.MaxTagLength {
				tag = string([]rune(tag)[:document.MaxTagLength])
			}
			return Match{Kind: Tag, Length: utf8.RuneCountInString(sub[0]), Tag: tag}, true
		}
	}
	return Match{}, false
}

func hasAnyPrefix(text string, literals []string) (string, bool) {
	for _, lit := range literals {
		if strings.HasPrefix(text, lit) {
			return lit, true
		}
	}
	return "", false
}
