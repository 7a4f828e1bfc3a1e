package cleaner

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// Selector is a compiled CSS selector together with its source text.
type Selector struct {
	Source  string
	Matcher cascadia.Selector
}

// CompileSelectors compiles each CSS selector in order. Compilation happens
// once at startup; a bad selector is a programming error reported here
// rather than at match time.
func CompileSelectors(sources ...string) ([]Selector, error) {
	out := make([]Selector, 0, len(sources))
	for _, src := range sources {
		sel, err := cascadia.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("cleaner: compile selector %q: %w", src, err)
		}
		out = append(out, Selector{Source: src, Matcher: sel})
	}
	return out, nil
}

// MustCompileSelectors is CompileSelectors for package-level tables.
func MustCompileSelectors(sources ...string) []Selector {
	sels, err := CompileSelectors(sources...)
	if err != nil {
		panic(err)
	}
	return sels
}
