package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usm-ti/almacen-api/internal/application/auth"
	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	apphttp "github.com/usm-ti/almacen-api/internal/interfaces/http"
	"github.com/usm-ti/almacen-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAuthApp levanta el router completo con el caso de uso de auth sobre el
// almacén en memoria. Las demás dependencias quedan en cero: sus rutas no se
// tocan en estos tests.
func buildAuthApp(t *testing.T) (*fiber.App, *auth.AuthUseCase, *testutil.AlmacenMemoria) {
	t.Helper()
	alm := testutil.NuevoAlmacen()
	uc := auth.NewAuthUseCase(alm.UsuariosRepo(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: uc, JWTSecret: testJWTSecret})
	return app, uc, alm
}

// doJSON lanza una petición con cuerpo JSON y header Authorization opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, body, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// registrarYLoguear crea la cuenta de Ana y devuelve su token Bearer.
func registrarYLoguear(t *testing.T, uc *auth.AuthUseCase) (int64, string) {
	t.Helper()
	user, err := uc.Register(dto.RegisterRequest{
		NombreCompleto: "Ana Pérez",
		Email:          "ana@usm.cl",
		Usuario:        "aperez",
		Password:       "clave-segura",
	})
	require.NoError(t, err)
	resp, err := uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-segura"})
	require.NoError(t, err)
	return user.ID, "Bearer " + resp.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de contraseña — la ruta exige token y contraseña vigente
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePassword_SinTokenRetorna401(t *testing.T) {
	app, uc, alm := buildAuthApp(t)
	userID, _ := registrarYLoguear(t, uc)
	hashAntes := alm.Usuarios[userID].PasswordHash

	resp := doJSON(t, app, http.MethodPut, "/api/auth/password",
		`{"password_actual":"clave-segura","password":"robada1"}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"sin token la ruta de contraseña debe rechazar")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
	assert.Equal(t, hashAntes, alm.Usuarios[userID].PasswordHash,
		"un anónimo no puede tocar el hash de nadie")
}

func TestUpdatePassword_ConTokenYClaveVigente(t *testing.T) {
	app, uc, _ := buildAuthApp(t)
	_, token := registrarYLoguear(t, uc)

	resp := doJSON(t, app, http.MethodPut, "/api/auth/password",
		`{"password_actual":"clave-segura","password":"clave-nueva"}`, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// La cuenta del token es la que cambió.
	_, err := uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-nueva"})
	assert.NoError(t, err)
	_, err = uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdatePassword_ClaveVigenteIncorrectaRetorna401(t *testing.T) {
	app, uc, alm := buildAuthApp(t)
	userID, token := registrarYLoguear(t, uc)
	hashAntes := alm.Usuarios[userID].PasswordHash

	resp := doJSON(t, app, http.MethodPut, "/api/auth/password",
		`{"password_actual":"adivinada","password":"robada1"}`, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, hashAntes, alm.Usuarios[userID].PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles — el registro público no otorga admin; el alta con rol es ruta admin
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_PublicoNoOtorgaAdmin(t *testing.T) {
	app, _, alm := buildAuthApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register",
		`{"nombre_completo":"Intruso","email":"intruso@usm.cl","usuario":"intruso","password":"123456","rol":"admin"}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	for _, u := range alm.Usuarios {
		assert.Equal(t, entity.RolUsuario, u.Rol, "toda cuenta autoregistrada nace con rol usuario")
	}
}

func TestCreateUser_ExigeRolAdmin(t *testing.T) {
	app, uc, _ := buildAuthApp(t)
	_, token := registrarYLoguear(t, uc) // rol usuario

	resp := doJSON(t, app, http.MethodPost, "/api/usuarios",
		`{"nombre_completo":"Luis Soto","email":"lsoto@usm.cl","usuario":"lsoto","password":"123456","rol":"admin"}`, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"solo un admin puede crear cuentas con rol")
}

func TestCreateUser_AdminCreaCuentaConRol(t *testing.T) {
	app, uc, alm := buildAuthApp(t)
	userID, _ := registrarYLoguear(t, uc)
	alm.Usuarios[userID].Rol = entity.RolAdmin
	loginResp, err := uc.Login(dto.LoginRequest{Usuario: "aperez", Password: "clave-segura"})
	require.NoError(t, err)
	token := "Bearer " + loginResp.Token

	resp := doJSON(t, app, http.MethodPost, "/api/usuarios",
		`{"nombre_completo":"Luis Soto","email":"lsoto@usm.cl","usuario":"lsoto","password":"123456","rol":"admin"}`, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	creado, err := alm.UsuariosRepo().FindByUsuario("lsoto")
	require.NoError(t, err)
	require.NotNil(t, creado)
	assert.Equal(t, entity.RolAdmin, creado.Rol)
}
