package manifest

import (
	"fmt"
	"strings"
)

// GrammarError reports malformed manifest text. Line is 1-based.
type GrammarError struct {
	Line int
	Msg  string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Manifest is the parsed form of one manifest text: a mapping from field name
// to either a string or an ordered string list. It is built once per Parse
// call and not mutated afterwards.
type Manifest struct {
	strings map[string]string
	lists   map[string][]string
}

// New returns an empty manifest. Mostly useful for tests that need to build
// mappings the grammar itself cannot produce.
func New() *Manifest {
	return &Manifest{
		strings: make(map[string]string),
		lists:   make(map[string][]string),
	}
}

// SetString stores key as a scalar string field.
func (m *Manifest) SetString(key, value string) { m.strings[key] = value }

// SetList stores key as a list field.
func (m *Manifest) SetList(key string, values []string) { m.lists[key] = values }

// Has reports whether key was present in the source text, regardless of kind.
func (m *Manifest) Has(key string) bool {
	if _, ok := m.strings[key]; ok {
		return true
	}
	_, ok := m.lists[key]
	return ok
}

// String returns the scalar value for key, and whether key decoded as a string.
func (m *Manifest) String(key string) (string, bool) {
	v, ok := m.strings[key]
	return v, ok
}

// List returns the list value for key, and whether key decoded as a list.
func (m *Manifest) List(key string) ([]string, bool) {
	v, ok := m.lists[key]
	return v, ok
}

// Parse reads manifest text line by line into a typed mapping governed by
// schema. Blank lines and full-line # comments are skipped. Every other line
// must be `key = value` where key belongs to the schema and has not appeared
// before, and value is a string literal or a list of string literals
// according to the key's kind. The first grammar violation aborts the parse.
func Parse(text string, schema Schema) (*Manifest, error) {
	m := New()
	for idx, line := range strings.Split(text, "\n") {
		lineNo := idx + 1
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		eq := strings.Index(stripped, "=")
		if eq < 0 {
			return nil, &GrammarError{Line: lineNo, Msg: "missing '='"}
		}
		key := strings.TrimSpace(stripped[:eq])
		raw := strings.TrimSpace(stripped[eq+1:])
		kind, ok := schema.Fields[key]
		if !ok {
			return nil, &GrammarError{Line: lineNo, Msg: fmt.Sprintf("unknown key '%s'", key)}
		}
		if m.Has(key) {
			return nil, &GrammarError{Line: lineNo, Msg: fmt.Sprintf("duplicate key '%s'", key)}
		}
		switch kind {
		case KindString:
			value, err := parseStringLiteral(raw)
			if err != nil {
				return nil, &GrammarError{Line: lineNo, Msg: err.Error()}
			}
			m.strings[key] = value
		case KindList:
			values, err := parseListLiteral(raw)
			if err != nil {
				return nil, &GrammarError{Line: lineNo, Msg: err.Error()}
			}
			m.lists[key] = values
		}
	}
	return m, nil
}

func parseStringLiteral(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || !strings.HasPrefix(raw, `"`) || !strings.HasSuffix(raw, `"`) {
		return "", fmt.Errorf("invalid string literal")
	}
	return raw[1 : len(raw)-1], nil
}

// parseListLiteral splits the bracketed interior on every comma before
// unquoting, so a quoted item containing a literal comma cannot be
// represented. That limitation is part of the grammar.
func parseListLiteral(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "[]" {
		return []string{}, nil
	}
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return nil, fmt.Errorf("invalid list syntax")
	}
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return []string{}, nil
	}
	items := []string{}
	for _, segment := range strings.Split(inner, ",") {
		item := strings.TrimSpace(segment)
		if item == "" {
			return nil, fmt.Errorf("empty list item")
		}
		value, err := parseStringLiteral(item)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	return items, nil
}
