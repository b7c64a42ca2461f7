package parser

import (
	"strings"
)

// FieldKind selects how a Field is written.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldBool
	FieldList
	FieldBlock
)

// Field is one header entry in output order.
type Field struct {
	Key      string
	Kind     FieldKind
	Value    string
	Bool     bool
	Items    []string
	Children []Field
}

// String builds a quoted-as-needed string field.
func String(key, value string) Field {
	return Field{Key: key, Kind: FieldString, Value: value}
}

// Bool builds a bare true/false field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Kind: FieldBool, Bool: value}
}

// List builds a "- item" list field.
func List(key string, items ...string) Field {
	return Field{Key: key, Kind: FieldList, Items: items}
}

// Block builds a nested mapping written one level deep.
func Block(key string, children ...Field) Field {
	return Field{Key: key, Kind: FieldBlock, Children: children}
}

// Serialize writes fields between delimiters, then a blank line and body.
// The result always ends with exactly one newline.
func Serialize(fields []Field, body string) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	for _, f := range fields {
		writeField(&b, f, "")
	}
	b.WriteString(delimiter + "\n")
	body = strings.TrimRight(body, "\r\n")
	if body == "" {
		return b.String()
	}
	b.WriteString("\n" + body + "\n")
	return b.String()
}

func writeField(b *strings.Builder, f Field, indent string) {
	b.WriteString(indent)
	b.WriteString(f.Key)
	b.WriteString(":")
	switch f.Kind {
	case FieldBool:
		if f.Bool {
			b.WriteString(" true\n")
		} else {
			b.WriteString(" false\n")
		}
	case FieldList:
		if len(f.Items) == 0 {
			b.WriteString(" []\n")
			return
		}
		b.WriteString("\n")
		for _, item := range f.Items {
			b.WriteString(indent + "  - " + quoteValue(item) + "\n")
		}
	case FieldBlock:
		b.WriteString("\n")
		for _, child := range f.Children {
			writeField(b, child, indent+"  ")
		}
	default:
		b.WriteString(" " + quoteValue(f.Value) + "\n")
	}
}

// quoteValue double-quotes values the header scanner would otherwise read
// differently, and YAML readers would reject or retype.
func quoteValue(v string) string {
	if !needsQuotes(v) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(v) + `"`
}

func needsQuotes(v string) bool {
	if v == "" || strings.TrimSpace(v) != v {
		return true
	}
	switch strings.ToLower(v) {
	case "true", "false", "null", "yes", "no", "~":
		return true
	}
	if strings.ContainsAny(v[:1], `"'[]{}*&!|>%@,-?#:`+"`") {
		return true
	}
	return strings.Contains(v, " #") || strings.Contains(v, ": ") ||
		strings.HasSuffix(v, ":") || strings.ContainsAny(v, "\n\t")
}
