package validator

import (
	"strings"
	"testing"

	"utsav/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignup(t *testing.T) {
	v := NewAuthValidator()

	tests := []struct {
		name string
		req  model.SignupRequest
		want []string
	}{
		{
			name: "valid",
			req:  model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: "secret1"},
		},
		{
			name: "short username and password",
			req:  model.SignupRequest{Username: "as", Email: "asha@example.com", Password: "123"},
			want: []string{"Username must be at least 3 characters long", "Password must be at least 6 characters long"},
		},
		{
			name: "bad email",
			req:  model.SignupRequest{Username: "asha", Email: "not-an-email", Password: "secret1"},
			want: []string{"Please enter a valid email address"},
		},
		{
			name: "long username",
			req:  model.SignupRequest{Username: strings.Repeat("a", 31), Email: "asha@example.com", Password: "secret1"},
			want: []string{"Username cannot exceed 30 characters"},
		},
		{
			name: "multibyte password over the bcrypt byte limit",
			req:  model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: strings.Repeat("पा", 20)},
			want: []string{"Password cannot exceed 72 characters"},
		},
		{
			name: "multibyte password within the byte limit",
			req:  model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: strings.Repeat("पा", 12)},
		},
		{
			name: "ascii password over the limit reported once",
			req:  model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: strings.Repeat("a", 73)},
			want: []string{"Password cannot exceed 72 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.ValidateSignup(&tt.req))
		})
	}
}

func TestHasMissing(t *testing.T) {
	assert.False(t, HasMissing("a", "b"))
	assert.True(t, HasMissing("a", "  "))
	assert.True(t, HasMissing(""))
}
