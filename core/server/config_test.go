package server_test

import (
	"testing"

	"track-matcher/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name string
		mb   int
		want int
	}{
		{"Default", 0, 64 * 1024 * 1024},
		{"Negative", -5, 64 * 1024 * 1024},
		{"Small", 1, 1024 * 1024},
		{"Large", 256, 256 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{MaxUploadMB: tt.mb}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}
