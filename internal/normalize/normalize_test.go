package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and trim",
			input: "  Netflix  ",
			want:  "netflix",
		},
		{
			name:  "collapses internal whitespace",
			input: "Amazon   Web    Services",
			want:  "amazon web services",
		},
		{
			name:  "strips comma suffix",
			input: "OpenAI, Inc.",
			want:  "openai",
		},
		{
			name:  "strips trailing legal entity",
			input: "Anthropic PBC",
			want:  "anthropic",
		},
		{
			name:  "strips Inc without period",
			input: "Acme Inc",
			want:  "acme",
		},
		{
			name:  "hyphenated name merges",
			input: "Open-AI",
			want:  "openai",
		},
		{
			name:  "dotted name merges",
			input: "Notion.so",
			want:  "notionso",
		},
		{
			name:  "legal suffix alone is kept",
			input: "Inc",
			want:  "inc",
		},
		{
			name:  "empty stays empty",
			input: "",
			want:  "",
		},
		{
			name:  "punctuation only",
			input: "--..--",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"OpenAI, Inc.",
		"Amazon   Web Services LLC",
		"Open-AI",
		"  Spotify AB  ",
		"",
		"日本語 サービス",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "exact after normalization", a: "OpenAI, Inc.", b: "openai", want: true},
		{name: "substring match", a: "Spotify", b: "Spotify Premium", want: true},
		{name: "substring match reversed", a: "Spotify Premium", b: "Spotify", want: true},
		{name: "different services", a: "Netflix", b: "Spotify", want: false},
		{name: "empty never matches", a: "", b: "netflix", want: false},
		{name: "both empty never match", a: "", b: "", want: false},
		{name: "punctuation-only never matches", a: "...", b: "netflix", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesMatch(tt.a, tt.b))
		})
	}
}
