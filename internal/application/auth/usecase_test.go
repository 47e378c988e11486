package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func newUseCase(repo *mockUserRepo) *AuthUseCase {
	return NewAuthUseCase(repo, JWTConfig{Secret: "s3cret", ExpMinutes: 5, Issuer: "test"}, zerolog.Nop())
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_OK(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(&entity.User{ID: 3, Name: "Ana", Email: "ana@example.com", Role: entity.RoleVendedor, PasswordHash: hashed(t, "clave123")}, nil)

	out, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: " ana@example.com ", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.User.ID)

	id, err := jwt.Parse("s3cret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.UserID)
	assert.Equal(t, "Ana", id.Name)
	assert.Equal(t, entity.RoleVendedor, id.Role)
	repo.AssertExpectations(t)
}

func TestLogin_Failures(t *testing.T) {
	cases := []struct {
		name string
		user *entity.User
		err  error
		want error
	}{
		{"usuario inexistente", nil, nil, domain.ErrUserNotFound},
		{"password incorrecto", &entity.User{ID: 1, PasswordHash: hashed(t, "otra")}, nil, domain.ErrUnauthorized},
		{"password en texto plano", &entity.User{ID: 1, PasswordHash: "clave123"}, nil, domain.ErrUnauthorized},
		{"error de base", nil, domain.ErrConnectionUnavailable, domain.ErrConnectionUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(tc.user, tc.err)

			_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "clave123"})
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}
