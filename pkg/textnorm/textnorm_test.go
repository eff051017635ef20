package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agenda-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "joao conceicao", textnorm.Fold("  João Conceição "))
	assert.Equal(t, "sao paulo", textnorm.Fold("SÃO PAULO"))
	assert.True(t, textnorm.ContainsFolded("Antônio Gonçalves", "GONCAL"))
	assert.False(t, textnorm.ContainsFolded("Maria", "joao"))
}

func TestNormalizeFuncional(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"9444168", "9444168"},
		{"c123456", "3123456"},
		{"C123456", "3123456"},
		{"i00-12", "90012"},
		{"j123", "123"},
		{"a1b2c3", "1123"},
		{" 12 34 ", "1234"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.NormalizeFuncional(tt.in))
		})
	}
}
