package slugs

import "testing"

func TestRuleSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"python-style", "python-style"},
		{"Python Style", "python-style"},
		{"my_rule", "my-rule"},
		{"  Go   Testing  ", "go-testing"},
		{"typescript.mdc", "typescript"},
		{"react.instructions.md", "react"},
		{"api--rules", "api-rules"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := RuleSlug(tt.input); got != tt.expected {
				t.Errorf("RuleSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"python-style", "Python Style"},
		{"go_testing", "Go Testing"},
		{"api", "Api"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleCase(tt.input); got != tt.expected {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
