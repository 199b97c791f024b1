// Package lang validates the two-letter language hints handed to the
// recognition engine.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Parse normalizes a language hint and checks it against the ISO 639 registry.
// Only two-letter codes are accepted ("en", "FR", " de "); region suffixes and
// three-letter codes are rejected because the engine keys its vocabulary on
// the ISO 639-1 form.
func Parse(hint string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(hint))
	if len(code) != 2 {
		return "", fmt.Errorf("%w: %q is not a two-letter code", ErrInvalid, hint)
	}

	base, err := language.ParseBase(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalid, hint, err)
	}
	if base.String() != code {
		return "", fmt.Errorf("%w: %q resolves to %q", ErrInvalid, hint, base.String())
	}

	return code, nil
}
