package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopuntos/reciclaje-api/internal/application/auth"
	"github.com/ecopuntos/reciclaje-api/internal/application/dto"
	"github.com/ecopuntos/reciclaje-api/internal/domain"
	"github.com/ecopuntos/reciclaje-api/internal/domain/entity"
	pkgjwt "github.com/ecopuntos/reciclaje-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]entity.User // por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.users[user.Email] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

func testJWTCfg() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secreto-test", ExpMinutes: 60, Issuer: "reciclaje-api-test"}
}

func TestRegister_RolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg())

	user, err := uc.Register(dto.RegisterRequest{Email: "ana@ecopuntos.co", Password: "secreto123"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUsuario, user.Role)
	assert.Equal(t, "active", user.Status)
	// Sin nombre explícito se usa el email
	assert.Equal(t, "ana@ecopuntos.co", user.Name)

	stored := repo.users["ana@ecopuntos.co"]
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "el password nunca se guarda en claro")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), testJWTCfg())

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@ecopuntos.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@ecopuntos.co", Password: "otro456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), testJWTCfg())

	_, err := uc.Register(dto.RegisterRequest{Email: "", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@ecopuntos.co", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@ecopuntos.co", Password: "secreto123", Role: entity.RoleRecolector})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@ecopuntos.co", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := pkgjwt.Parse("secreto-test", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleRecolector, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@ecopuntos.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@ecopuntos.co", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@ecopuntos.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioSuspendido(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@ecopuntos.co", Password: "secreto123"})
	require.NoError(t, err)

	u := repo.users["ana@ecopuntos.co"]
	u.Status = "suspended"
	repo.users["ana@ecopuntos.co"] = u

	_, err = uc.Login(dto.LoginRequest{Email: "ana@ecopuntos.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
