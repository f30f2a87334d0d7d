package account

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/internal/infrastructure/storage/jsonfile"
	"github.com/turtacn/LexConnect/pkg/errors"
)

func newTestService(t *testing.T) (Service, user.Repository) {
	t.Helper()
	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"), jsonfile.Options{})
	require.NoError(t, err)
	repo := store.Users()
	return NewService(repo, logging.NewNopLogger(), WithBcryptCost(bcrypt.MinCost)), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: " Asha ", Email: "Asha@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, user.RoleClient, u.Role)
	assert.Empty(t, u.PasswordHash)

	stored, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegister_Rejections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   RegisterInput
		code errors.ErrorCode
	}{
		{"missing name", RegisterInput{Email: "b@example.com", Password: "secret1"}, errors.CodeInvalidParam},
		{"bad email", RegisterInput{Name: "B", Email: "nope", Password: "secret1"}, errors.CodeInvalidParam},
		{"short password", RegisterInput{Name: "B", Email: "b@example.com", Password: "12345"}, errors.ErrCodeWeakPassword},
		{"duplicate email", RegisterInput{Name: "C", Email: "A@EXAMPLE.COM", Password: "secret1"}, errors.ErrCodeUserAlreadyExists},
		{"unknown role", RegisterInput{Name: "D", Email: "d@example.com", Password: "secret1", Role: "judge"}, errors.CodeInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1", Role: user.RoleLawyer})
	require.NoError(t, err)

	u, err := svc.Login(ctx, " A@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.Equal(t, user.RoleLawyer, u.Role)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Login(ctx, "a@example.com", "wrong-password")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))
}

func TestGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	u, err := svc.Get(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

//Personal.AI order the ending
