package parser

import (
	"strings"
)

// Header is a scanned frontmatter block. Nested keys are addressed as
// "parent.key"; list values are stored comma-joined.
type Header struct {
	file   string
	keys   []string
	values map[string]string
	blocks map[string]bool
}

func newHeader() *Header {
	return &Header{
		values: make(map[string]string),
		blocks: make(map[string]bool),
	}
}

// Keys returns every key in first-seen order, including nested "parent.key" keys.
func (h *Header) Keys() []string {
	out := make([]string, len(h.keys))
	copy(out, h.keys)
	return out
}

// Has reports whether key appeared in the header.
func (h *Header) Has(key string) bool {
	_, ok := h.values[key]
	return ok
}

// HasBlock reports whether key introduced a nested mapping.
func (h *Header) HasBlock(key string) bool {
	return h.blocks[key]
}

// String returns the scalar value for key, or "" when absent.
// A nested mapping where a string is required is an *InvalidValueError.
func (h *Header) String(key string) (string, error) {
	if h.blocks[key] {
		return "", &InvalidValueError{File: h.file, Key: key, Want: "a string, got a nested mapping"}
	}
	return h.values[key], nil
}

// StringOr is String with a fallback for absent keys.
func (h *Header) StringOr(key, def string) (string, error) {
	if !h.Has(key) {
		return def, nil
	}
	return h.String(key)
}

// Bool parses key as true/false, case-insensitively. Any other spelling, an
// absent key, or a mapping yields def.
func (h *Header) Bool(key string, def bool) bool {
	if h.blocks[key] {
		return def
	}
	v, ok := h.values[key]
	if !ok {
		return def
	}
	switch {
	case strings.EqualFold(v, "true"):
		return true
	case strings.EqualFold(v, "false"):
		return false
	default:
		return def
	}
}

// List returns the comma-separated items stored under key.
func (h *Header) List(key string) ([]string, error) {
	v, err := h.String(key)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

func (h *Header) apply(e entry) {
	if _, ok := h.values[e.key]; !ok {
		h.keys = append(h.keys, e.key)
	}
	if e.block {
		h.blocks[e.key] = true
		if _, ok := h.values[e.key]; !ok {
			h.values[e.key] = ""
		}
		return
	}
	h.values[e.key] = e.value
}

// entry is one assignment produced by the scanner.
type entry struct {
	key   string
	value string
	block bool
}

type srcLine struct {
	num  int
	text string
}

// scanState is everything the scanner carries between lines.
type scanState struct {
	parent  string
	pending []string
	mapping bool
}

// ParseHeader scans a raw header block. firstLine is the document line number
// of the block's first line and is only used for error positions.
func ParseHeader(block string, firstLine int) (*Header, error) {
	var lines []srcLine
	for i, text := range strings.Split(block, "\n") {
		lines = append(lines, srcLine{num: firstLine + i, text: strings.TrimRight(text, "\r")})
	}

	h := newHeader()
	st := scanState{}
	for _, ln := range lines {
		next, out, err := step(st, ln)
		if err != nil {
			return nil, err
		}
		for _, e := range out {
			h.apply(e)
		}
		st = next
	}
	for _, e := range flush(st) {
		h.apply(e)
	}
	return h, nil
}

// step advances the scanner by one line and returns the assignments it completed.
func step(st scanState, ln srcLine) (scanState, []entry, error) {
	trimmed := strings.TrimSpace(ln.text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return st, nil, nil
	}

	if isListItem(trimmed) {
		if st.parent == "" {
			return st, nil, &ParseError{Line: ln.num, Reason: "list item without a parent key"}
		}
		if st.mapping {
			return st, nil, &ParseError{Line: ln.num, Reason: "list item inside a nested mapping"}
		}
		item, _, err := scalarValue(strings.TrimSpace(trimmed[1:]), ln.num)
		if err != nil {
			return st, nil, err
		}
		pending := make([]string, len(st.pending), len(st.pending)+1)
		copy(pending, st.pending)
		st.pending = append(pending, item)
		return st, nil, nil
	}

	key, raw, ok := splitKeyValue(trimmed)
	if !ok {
		return st, nil, &ParseError{Line: ln.num, Reason: "expected 'key: value', got " + quoteForError(trimmed)}
	}

	if indented(ln.text) {
		if st.parent == "" {
			return st, nil, &ParseError{Line: ln.num, Reason: "indented key " + quoteForError(key) + " without a parent key"}
		}
		if len(st.pending) > 0 {
			return st, nil, &ParseError{Line: ln.num, Reason: "nested key after list items under " + quoteForError(st.parent)}
		}
		value, block, err := scalarValue(raw, ln.num)
		if err != nil {
			return st, nil, err
		}
		st.mapping = true
		return st, []entry{
			{key: st.parent, block: true},
			{key: st.parent + "." + key, value: value, block: block},
		}, nil
	}

	out := flush(st)
	if raw == "" {
		return scanState{parent: key}, append(out, entry{key: key}), nil
	}
	value, block, err := scalarValue(raw, ln.num)
	if err != nil {
		return st, nil, err
	}
	return scanState{}, append(out, entry{key: key, value: value, block: block}), nil
}

// flush emits the pending list of the current parent, if any.
func flush(st scanState) []entry {
	if st.parent == "" || len(st.pending) == 0 {
		return nil
	}
	return []entry{{key: st.parent, value: strings.Join(st.pending, ",")}}
}

func isListItem(trimmed string) bool {
	return trimmed == "-" || strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "-\t")
}

func indented(text string) bool {
	return strings.HasPrefix(text, " ") || strings.HasPrefix(text, "\t")
}

func splitKeyValue(trimmed string) (key, value string, ok bool) {
	idx := strings.Index(trimmed, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = trimmed[:idx]
	for _, r := range key {
		if !isKeyRune(r) {
			return "", "", false
		}
	}
	rest := trimmed[idx+1:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", "", false
	}
	return key, strings.TrimSpace(rest), true
}

func isKeyRune(r rune) bool {
	return r == '_' || r == '-' || r == '.' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// scalarValue interprets a raw value: quoted strings are unquoted, bracketed
// lists are flattened to comma-joined form, and flow mappings are reported as
// blocks.
func scalarValue(raw string, line int) (string, bool, error) {
	if raw == "" {
		return "", false, nil
	}
	switch raw[0] {
	case '"', '\'':
		v, rest, err := unquote(raw, line)
		if err != nil {
			return "", false, err
		}
		if rest = strings.TrimSpace(rest); rest != "" && !strings.HasPrefix(rest, "#") {
			return "", false, &ParseError{Line: line, Reason: "unexpected text after quoted value"}
		}
		return v, false, nil
	case '[':
		inner := stripComment(raw)
		if !strings.HasSuffix(inner, "]") {
			return "", false, &ParseError{Line: line, Reason: "unterminated list value"}
		}
		var items []string
		for _, part := range strings.Split(inner[1:len(inner)-1], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if part[0] == '"' || part[0] == '\'' {
				v, _, err := unquote(part, line)
				if err != nil {
					return "", false, err
				}
				part = v
			}
			items = append(items, part)
		}
		return strings.Join(items, ","), false, nil
	case '{':
		return "", true, nil
	}
	return stripComment(raw), false, nil
}

func stripComment(raw string) string {
	if idx := strings.Index(raw, " #"); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

// unquote reads one quoted string from the front of raw and returns the text
// that follows it.
func unquote(raw string, line int) (string, string, error) {
	q := raw[0]
	var b strings.Builder
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		switch {
		case q == '\'' && c == '\'':
			if i+1 < len(raw) && raw[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			return b.String(), raw[i+1:], nil
		case q == '"' && c == '\\' && i+1 < len(raw):
			i++
			switch raw[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(raw[i])
			}
		case q == '"' && c == '"':
			return b.String(), raw[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", &ParseError{Line: line, Reason: "unterminated quoted value"}
}

func quoteForError(s string) string {
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return "'" + s + "'"
}

// File is the name passed to Parse, used in decode errors.
func (h *Header) File() string { return h.file }
