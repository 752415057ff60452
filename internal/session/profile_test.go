package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"name wins", Profile{"name": "Alice Smith", "email": "bob@example.com"}, "Alice"},
		{"firstName fallback", Profile{"firstName": "Carol"}, "Carol"},
		{"given_name fallback", Profile{"given_name": "Dave"}, "Dave"},
		{"username fallback", Profile{"username": "eve42"}, "eve42"},
		{"displayName fallback", Profile{"displayName": "Frank J"}, "Frank"},
		{"email local part", Profile{"email": "grace@example.com"}, "grace"},
		{"first match wins even over later keys", Profile{"name": "Heidi", "email": "other@example.com"}, "Heidi"},
		{"non-string values skipped", Profile{"name": 42, "email": "ivan@example.com"}, "ivan"},
		{"empty profile", Profile{}, "User"},
		{"nil profile", nil, "User"},
		{"leading delimiter", Profile{"name": "@handle"}, "User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}
