package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptionsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{"zero defaults", ListOptions{}, ListOptions{Limit: DefaultListLimit}},
		{"negative limit", ListOptions{Limit: -5, Offset: 3}, ListOptions{Limit: DefaultListLimit, Offset: 3}},
		{"limit clamped", ListOptions{Limit: 1000}, ListOptions{Limit: MaxListLimit}},
		{"negative offset", ListOptions{Limit: 5, Offset: -1}, ListOptions{Limit: 5}},
		{"unchanged", ListOptions{Limit: 50, Offset: 10}, ListOptions{Limit: 50, Offset: 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}
