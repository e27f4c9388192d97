package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usm-ti/almacen-api/internal/application/auth"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/testutil"
	pkgjwt "github.com/usm-ti/almacen-api/pkg/jwt"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func buildAuth(t *testing.T) (*auth.AuthUseCase, *testutil.AlmacenMemoria) {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	uc := auth.NewAuthUseCase(alm.UsuariosRepo(), auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
	return uc, alm
}

func registro() dto.RegisterRequest {
	return dto.RegisterRequest{
		NombreCompleto: "Ana Pérez",
		Email:          "ana@usm.cl",
		Usuario:        "aperez",
		Password:       "clave-segura",
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Registro
// ─────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConRolPorDefecto(t *testing.T) {
	uc, alm := buildAuth(t)

	user, err := uc.Register(registro())

	require.NoError(t, err)
	assert.Equal(t, entity.RolUsuario, user.Rol, "sin rol explícito se asigna usuario")
	assert.True(t, user.Activo)

	creado := alm.Usuarios[user.ID]
	require.NotNil(t, creado)
	assert.NotEqual(t, "clave-segura", creado.PasswordHash, "la contraseña nunca se guarda en plano")
	assert.NotEmpty(t, creado.PasswordHash)
}

func TestRegister_UsuarioYEmailDuplicados(t *testing.T) {
	uc, _ := buildAuth(t)
	_, err := uc.Register(registro())
	require.NoError(t, err)

	// Mismo usuario, distinto email.
	dup := registro()
	dup.Email = "otra@usm.cl"
	_, err = uc.Register(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Mismo email, distinto usuario.
	dup = registro()
	dup.Usuario = "aperez2"
	_, err = uc.Register(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_PasswordCorta(t *testing.T) {
	uc, _ := buildAuth(t)
	in := registro()
	in.Password = "abc"

	_, err := uc.Register(in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_IgnoraRolSolicitado(t *testing.T) {
	uc, _ := buildAuth(t)
	in := registro()
	in.Rol = entity.RolAdmin

	user, err := uc.Register(in)

	require.NoError(t, err)
	assert.Equal(t, entity.RolUsuario, user.Rol, "el autoservicio nunca otorga admin")
}

// ─────────────────────────────────────────────────────────────────────────────
// Alta de cuentas (flujo admin)
// ─────────────────────────────────────────────────────────────────────────────

func TestCreateUser_RespetaRolExplicito(t *testing.T) {
	uc, _ := buildAuth(t)
	in := registro()
	in.Rol = entity.RolAdmin

	user, err := uc.CreateUser(in)

	require.NoError(t, err)
	assert.Equal(t, entity.RolAdmin, user.Rol)
}

func TestCreateUser_RolDesconocido(t *testing.T) {
	uc, _ := buildAuth(t)
	in := registro()
	in.Rol = "superusuario"

	_, err := uc.CreateUser(in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenValido(t *testing.T) {
	uc, _ := buildAuth(t)
	user, err := uc.Register(registro())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-segura"})

	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	userID, rol, err := pkgjwt.Parse("test-secret-key-for-unit-tests", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RolUsuario, rol)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := buildAuth(t)

	_, err := uc.Login(dto.LoginRequest{Usuario: "fantasma", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := buildAuth(t)
	_, err := uc.Register(registro())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "incorrecta"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	uc, alm := buildAuth(t)
	user, err := uc.Register(registro())
	require.NoError(t, err)
	alm.Usuarios[user.ID].Activo = false

	_, err = uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-segura"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─────────────────────────────────────────────────────────────────────────────
// Cambio de contraseña
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdatePassword_ConClaveActual(t *testing.T) {
	uc, _ := buildAuth(t)
	user, err := uc.Register(registro())
	require.NoError(t, err)

	require.NoError(t, uc.UpdatePassword(user.ID, dto.UpdatePasswordRequest{
		PasswordActual: "clave-segura",
		Password:       "clave-nueva",
	}))

	// La clave vieja deja de servir, la nueva entra.
	_, err = uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-nueva"})
	assert.NoError(t, err)
}

func TestUpdatePassword_ClaveActualIncorrecta(t *testing.T) {
	uc, alm := buildAuth(t)
	user, err := uc.Register(registro())
	require.NoError(t, err)
	hashAntes := alm.Usuarios[user.ID].PasswordHash

	err = uc.UpdatePassword(user.ID, dto.UpdatePasswordRequest{
		PasswordActual: "adivinada",
		Password:       "clave-nueva",
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, hashAntes, alm.Usuarios[user.ID].PasswordHash, "el hash no se toca si la clave actual falla")
}

func TestUpdatePassword_CuentaInexistente(t *testing.T) {
	uc, _ := buildAuth(t)

	err := uc.UpdatePassword(999, dto.UpdatePasswordRequest{PasswordActual: "x", Password: "clave-nueva"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
