package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "bare array",
			content: `[{"service_name": "Netflix"}]`,
			want:    `[{"service_name": "Netflix"}]`,
		},
		{
			name:    "fenced with language tag",
			content: "```json\n[{\"a\": 1}]\n```",
			want:    `[{"a": 1}]`,
		},
		{
			name:    "fenced without language tag",
			content: "```\n[]\n```",
			want:    `[]`,
		},
		{
			name:    "prose around the array",
			content: "Here are the candidates I found:\n[{\"a\": 1}]\nLet me know if you need more.",
			want:    `[{"a": 1}]`,
		},
		{
			name:    "nested arrays balanced",
			content: `[{"tags": ["a", "b"]}]`,
			want:    `[{"tags": ["a", "b"]}]`,
		},
		{
			name:    "brackets inside strings ignored",
			content: `[{"notes": "see [1] for details"}]`,
			want:    `[{"notes": "see [1] for details"}]`,
		},
		{
			name:    "no array at all",
			content: "I could not find any subscriptions.",
			wantErr: true,
		},
		{
			name:    "unterminated array",
			content: `[{"a": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
