package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/conneroisu/s2l/internal/errors"
)

// MaxPrefixLen is the longest prefix the editor accepts without a warning.
const MaxPrefixLen = 5

// ValidatePrefix checks a file name prefix. The conversion itself passes any
// prefix through; this is advisory and meant for user-facing warnings.
func ValidatePrefix(prefix string) error {
	if n := utf8.RuneCountInString(prefix); n > MaxPrefixLen {
		return errors.NewValidationError(errors.CodeInvalidPrefix,
			fmt.Sprintf("prefix %q is %d characters long, the limit is %d", prefix, n, MaxPrefixLen)).
			WithContext("prefix", prefix)
	}
	if strings.ContainsAny(prefix, `/\`) {
		return errors.NewValidationError(errors.CodeInvalidPrefix,
			fmt.Sprintf("prefix %q contains a path separator", prefix)).
			WithContext("prefix", prefix)
	}
	return nil
}

// fillKeywords are the paint values accepted by CheckFill besides colors.
var fillKeywords = map[string]bool{
	"none":         true,
	"currentcolor": true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
	"transparent":  true,
	"context-fill": true,
}

// namedColors is the CSS level 2 basic palette plus the few extended
// names that turn up most often in icon sets.
var namedColors = map[string]bool{
	"black": true, "silver": true, "gray": true, "grey": true, "white": true,
	"maroon": true, "red": true, "purple": true, "fuchsia": true, "green": true,
	"lime": true, "olive": true, "yellow": true, "navy": true, "blue": true,
	"teal": true, "aqua": true, "orange": true, "magenta": true, "cyan": true,
	"pink": true, "brown": true, "gold": true, "indigo": true, "violet": true,
}

// CheckFill reports fill values that look unlikely to render. Hex colors
// are parsed with go-colorful; keywords, common named colors, functional
// notations such as rgb(...) and url(#id) references are accepted as is.
// Like ValidatePrefix it is advisory: the value is never rewritten.
func CheckFill(fill string) error {
	if fill == "" {
		return nil
	}
	lower := strings.ToLower(strings.TrimSpace(fill))

	switch {
	case fillKeywords[lower], namedColors[lower]:
		return nil
	case strings.HasPrefix(lower, "#"):
		if _, err := colorful.Hex(lower); err != nil {
			return invalidFill(fill, "is not a valid hex color")
		}
		return nil
	case strings.HasSuffix(lower, ")") && hasFunctionPrefix(lower):
		return nil
	case strings.Contains(lower, "{{") || strings.Contains(lower, "{%"):
		// Liquid expressions are resolved at render time.
		return nil
	}
	return invalidFill(fill, "is not a known color")
}

func invalidFill(fill, reason string) error {
	return errors.NewValidationError(errors.CodeInvalidFill, fmt.Sprintf("fill %q %s", fill, reason)).
		WithContext("fill", fill)
}

func hasFunctionPrefix(s string) bool {
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "url(", "var("} {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	return false
}
