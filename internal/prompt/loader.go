// Package prompt loads named text templates and fills their placeholders.
// Placeholders use the {name} form; the set a template references is
// checked against the argument set the caller supplies, so a typo in
// either fails loudly instead of leaking a literal "{asset}" into an
// LLM request.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// Store loads templates from a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the named template file from the store's directory.
func (s *Store) Load(name string) (*Template, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", name, err)
	}
	return newTemplate(name, string(data)), nil
}

// Template is a raw template plus the placeholder set it references.
type Template struct {
	name         string
	text         string
	placeholders []string
}

func newTemplate(name, text string) *Template {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return &Template{name: name, text: text, placeholders: names}
}

// Placeholders returns the sorted placeholder names the template uses.
func (t *Template) Placeholders() []string {
	return append([]string(nil), t.placeholders...)
}

// Render substitutes vars into the template. Every placeholder the
// template references must be supplied and every supplied name must be
// referenced; either mismatch is an error.
func (t *Template) Render(vars map[string]string) (string, error) {
	for _, name := range t.placeholders {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("template %s: missing argument %q", t.name, name)
		}
	}
	for name := range vars {
		if !contains(t.placeholders, name) {
			return "", fmt.Errorf("template %s: unknown argument %q", t.name, name)
		}
	}

	out := t.text
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
