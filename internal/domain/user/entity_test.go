package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/LexConnect/pkg/errors"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name  string
		user  User
		valid bool
	}{
		{"ok", User{Name: "Asha", Email: "asha@example.com"}, true},
		{"ok with role", User{Name: "Asha", Email: "asha@example.com", Role: RoleLawyer}, true},
		{"missing name", User{Email: "asha@example.com"}, false},
		{"missing email", User{Name: "Asha"}, false},
		{"bad email", User{Name: "Asha", Email: "not-an-email"}, false},
		{"bad role", User{Name: "Asha", Email: "asha@example.com", Role: "judge"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
			}
		})
	}
}

func TestUser_Public(t *testing.T) {
	u := &User{ID: "1", PasswordHash: "secret"}
	pub := u.Public()
	assert.Empty(t, pub.PasswordHash)
	assert.Equal(t, "secret", u.PasswordHash)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", NormalizeEmail("  Asha@Example.COM "))
}

//Personal.AI order the ending
