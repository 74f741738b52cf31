package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAskConfirmation(t *testing.T) {
	tests := []struct {
		input string
		force bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		in := &InputUtils{In: strings.NewReader(tt.input), Out: &out}
		assert.Equal(t, tt.want, in.AskConfirmation("Overwrite?", tt.force), "input %q", tt.input)
		if tt.force {
			assert.Empty(t, out.String())
		} else {
			assert.Contains(t, out.String(), "Overwrite? (y/N): ")
		}
	}
}

func TestGetUserChoice(t *testing.T) {
	var out bytes.Buffer
	in := &InputUtils{In: strings.NewReader("maybe\nMySQL\n"), Out: &out}

	choice := in.GetUserChoice([]string{"postgresql", "mysql", "sqlite"}, "Database", false)
	assert.Equal(t, "mysql", choice)
	assert.Contains(t, out.String(), "Invalid option")
}

func TestGetUserChoiceDefaults(t *testing.T) {
	var out bytes.Buffer
	in := &InputUtils{In: strings.NewReader(""), Out: &out}
	assert.Equal(t, "postgresql", in.GetUserChoice([]string{"postgresql", "mysql"}, "Database", false))

	in = &InputUtils{In: strings.NewReader("mysql\n"), Out: &out}
	assert.Equal(t, "postgresql", in.GetUserChoice([]string{"postgresql", "mysql"}, "Database", true))
}
