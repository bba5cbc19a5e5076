package formwizard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formwizard"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{name: "plain", input: "set name web\n", want: "set name web\n"},
		{name: "ansi escape", input: "set name \x1b[31mweb\x1b[0m", want: "set name [31mweb[0m"},
		{name: "null and bell", input: "a\x00b\x07c\td", want: "abc\td"},
		{name: "invalid utf8", input: "\xff\xfe", err: formwizard.ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formwizard.SanitizeInput(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeInput_SizeLimit(t *testing.T) {
	t.Setenv("FORMWIZARD_MAX_INPUT_SIZE", "8")

	_, err := formwizard.SanitizeInput(strings.Repeat("x", 9))
	assert.ErrorIs(t, err, formwizard.ErrInputTooLarge)

	got, err := formwizard.SanitizeInput(strings.Repeat("x", 8))
	require.NoError(t, err)
	assert.Len(t, got, 8)
}
