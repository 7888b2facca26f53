package lang

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry looks languages up by file extension
type Registry struct {
	languages       []*Language
	byExt           map[string]*Language
	defaultLanguage string
}

// NewRegistry builds a registry. Later entries win on duplicate extensions.
// defaultLanguage is a file extension or a language name.
func NewRegistry(languages []Language, defaultLanguage string) *Registry {
	r := &Registry{
		byExt:           make(map[string]*Language),
		defaultLanguage: strings.ToLower(defaultLanguage),
	}
	for i := range languages {
		l := languages[i]
		l.FileExt = normaliseExt(l.FileExt)
		if prev, ok := r.byExt[l.FileExt]; ok {
			*prev = l
			continue
		}
		r.languages = append(r.languages, &l)
		r.byExt[l.FileExt] = &l
	}
	return r
}

// Languages returns all languages sorted by name
func (r *Registry) Languages() []*Language {
	out := make([]*Language, len(r.languages))
	copy(out, r.languages)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// FromExt finds a language by extension, with or without the leading dot
func (r *Registry) FromExt(ext string) (*Language, bool) {
	l, ok := r.byExt[normaliseExt(ext)]
	return l, ok
}

// Lookup finds a language by extension or, failing that, by name
func (r *Registry) Lookup(key string) (*Language, bool) {
	if l, ok := r.FromExt(key); ok {
		return l, true
	}
	for _, l := range r.languages {
		if strings.EqualFold(l.Name, key) {
			return l, true
		}
	}
	return nil, false
}

// FromFile finds the language of path by its extension
func (r *Registry) FromFile(path string) (*Language, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("%w: file has no extension: %s", ErrUnknownLanguage, path)
	}
	l, ok := r.FromExt(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, path)
	}
	return l, nil
}

// Known reports whether path has an extension of a configured language
func (r *Registry) Known(path string) bool {
	_, ok := r.FromExt(filepath.Ext(path))
	return ok && filepath.Ext(path) != ""
}

// Default returns the configured default language, if any
func (r *Registry) Default() (*Language, bool) {
	if r.defaultLanguage == "" {
		return nil, false
	}
	return r.Lookup(r.defaultLanguage)
}

func normaliseExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
