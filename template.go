package promptvault

import (
	"maps"
	"regexp"
	"slices"
)

const (
	// BaseTag is the type tag of the base Template variant.
	BaseTag = "BaseTemplate"
	// DefaultVersion is assigned by NewTemplate when no version is given.
	DefaultVersion = "1.0"
)

// placeholderPattern matches {identifier} where identifier is Unicode letters, digits and
// underscores; no nesting, escaping or format specs.
var placeholderPattern = regexp.MustCompile(`\{([\p{L}\p{N}_]+)\}`)

// Template is the base template variant. Other variants embed it and declare
// extra fields with `prompt:"name"` struct tags.
// The type tag is not part of the constructor path; see TagOf.
type Template struct {
	Text    string `prompt:"template"`
	Version string `prompt:"version"`
	tag     string
}

// Variant is implemented by every template kind (any struct embedding Template).
type Variant interface {
	Base() *Template
}

var _ Variant = (*Template)(nil)

// NewTemplate builds a base template with DefaultVersion and applies options.
// Variants may embed the dereferenced result; the tag is derived from their own type.
func NewTemplate(text string, opts ...Option) *Template {
	t := &Template{Text: text, Version: DefaultVersion}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Base returns the embedded base template (itself for the base variant).
func (t *Template) Base() *Template { return t }

// Variables returns the unique placeholder names in Text, sorted.
// Recomputed on every call so it always reflects the current Text.
func (t *Template) Variables() []string {
	return ExtractVariables(t.Text)
}

// Render substitutes every {name} placeholder with its binding.
// Returns *MissingVariablesError when a placeholder has no binding; extra bindings are ignored.
// Braces that do not form a placeholder are copied unchanged.
func (t *Template) Render(bindings map[string]string) (string, error) {
	expected := t.Variables()
	var missing []string
	for _, name := range expected {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", &MissingVariablesError{Missing: missing, Expected: expected}
	}
	// Only names in expected can match here, and all of them are bound.
	return placeholderPattern.ReplaceAllStringFunc(t.Text, func(m string) string {
		return bindings[m[1:len(m)-1]]
	}), nil
}

// ExtractVariables returns the unique identifiers of {identifier} placeholders in text, sorted.
func ExtractVariables(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		seen[m[1]] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
