package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTelefone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "already formatted mobile", input: "(21) 99876-5432", expected: "(21) 99876-5432"},
		{name: "digits only mobile", input: "21998765432", expected: "(21) 99876-5432"},
		{name: "international notation", input: "+55 21 99876-5432", expected: "(21) 99876-5432"},
		{name: "landline", input: "(21) 2345-6789", expected: "(21) 2345-6789"},
		{name: "too short", input: "12345", wantErr: true},
		{name: "letters", input: "telefone", wantErr: true},
		{name: "foreign number", input: "+1 650 253 0000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatTelefone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsValidTelefone(tt.input))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, IsValidTelefone(tt.input))
		})
	}
}
