package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	input := strings.Join([]string{
		"class_a, class_b",
		"merged",
		"Marks",
		"Total",
		"3",
		"n",
	}, "\n") + "\n"

	var out bytes.Buffer
	cfg := Default()
	require.NoError(t, Prompt(strings.NewReader(input), &out, cfg))

	assert.Equal(t, []string{"class_a", "class_b"}, cfg.Inputs)
	assert.Equal(t, "merged", cfg.OutputPath)
	assert.Equal(t, "Marks", cfg.SheetName)
	assert.Equal(t, "Total", cfg.SortColumn)
	assert.Equal(t, 3, cfg.StartColumn)
	assert.False(t, cfg.SkipNonNumeric)
	assert.Contains(t, out.String(), "[y/n]")
}

func TestPromptErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"non integer start", "a\nout\nSheet\n\nthree\ny\n"},
		{"bad skip answer", "a\nout\nSheet\n\n3\nmaybe\n"},
		{"input ends early", "a\nout\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Prompt(strings.NewReader(tt.input), &bytes.Buffer{}, Default())
			assert.Error(t, err)
		})
	}
}
