package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			in:    `{"a":1}`,
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "object wrapped in prose",
			in:    `Sure! {"urgencyLevel":"severe","confidenceScore":92} Hope that helps`,
			want:  `{"urgencyLevel":"severe","confidenceScore":92}`,
			found: true,
		},
		{
			name:  "nested objects stay balanced",
			in:    `text {"a":{"b":2},"c":3} trailing {"d":4}`,
			want:  `{"a":{"b":2},"c":3}`,
			found: true,
		},
		{
			name:  "brace inside string does not close the span",
			in:    `{"note":"use } carefully","x":1}`,
			want:  `{"note":"use } carefully","x":1}`,
			found: true,
		},
		{
			name:  "escaped quote inside string",
			in:    `{"note":"he said \"}\" loudly","x":1}`,
			want:  `{"note":"he said \"}\" loudly","x":1}`,
			found: true,
		},
		{
			name:  "plain prose without braces",
			in:    "I recommend you rest and drink fluids.",
			found: false,
		},
		{
			name:  "unbalanced open brace",
			in:    `start {"a":1 and it never closes`,
			found: false,
		},
		{
			name:  "empty input",
			in:    "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := firstJSONObject(tt.in)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
