package orcid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full name", "Charles Michael Greenspon", "C. M. Greenspon"},
		{"already initialed", "A. B. Carter", "A. B. Carter"},
		{"mixed", "Charles M. Greenspon", "C. M. Greenspon"},
		{"two tokens", "Sliman Bensmaia", "S. Bensmaia"},
		{"single token", "Plato", "Plato"},
		{"empty", "", ""},
		{"extra spaces", "Charles  Greenspon", "C. Greenspon"},
		{"non-ascii initial", "Élodie Martin", "É. Martin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initialize(tt.in))
		})
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	once := Initialize("Charles Michael Greenspon")
	assert.Equal(t, once, Initialize(once))
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Charles", FirstName("Charles Michael Greenspon"))
	assert.Equal(t, "Plato", FirstName("Plato"))
}
