package auth

import (
	"strings"

	"github.com/usm-ti/almacen-api/internal/application/dto"
	"github.com/usm-ti/almacen-api/internal/domain"
	"github.com/usm-ti/almacen-api/internal/domain/entity"
	"github.com/usm-ti/almacen-api/internal/domain/repository"
	"github.com/usm-ti/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, alta de cuentas
// y cambio de contraseña.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta de autoservicio. El rol solicitado se ignora: toda
// cuenta registrada públicamente nace con el rol base, asignar otro rol queda
// reservado a CreateUser. Devuelve ErrDuplicate si el nombre de usuario o el
// email ya existen.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.crearCuenta(in, entity.RolUsuario)
}

// CreateUser crea una cuenta con rol explícito. Pensado para el flujo de
// administración; el handler lo expone solo tras RequireAdmin.
func (uc *AuthUseCase) CreateUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	rol := in.Rol
	if rol == "" {
		rol = entity.RolUsuario
	}
	if rol != entity.RolAdmin && rol != entity.RolUsuario {
		return nil, domain.ErrInvalidInput
	}
	return uc.crearCuenta(in, rol)
}

func (uc *AuthUseCase) crearCuenta(in dto.RegisterRequest, rol string) (*dto.UserResponse, error) {
	in.Usuario = strings.TrimSpace(in.Usuario)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Usuario == "" || in.Email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	if existente, _ := uc.usuarioRepo.FindByUsuario(in.Usuario); existente != nil {
		return nil, domain.ErrDuplicate
	}
	if existente, _ := uc.usuarioRepo.FindByEmail(in.Email); existente != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nombre := in.NombreCompleto
	if nombre == "" {
		nombre = in.Usuario
	}
	usuario := &entity.Usuario{
		NombreCompleto: nombre,
		Email:          in.Email,
		Usuario:        in.Usuario,
		PasswordHash:   string(hash),
		Rol:            rol,
		Activo:         true,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return toUserResponse(usuario), nil
}

// Login verifica usuario/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.FindByUsuario(strings.TrimSpace(in.Usuario))
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !usuario.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(usuario),
	}, nil
}

// UpdatePassword cambia la contraseña de la cuenta identificada por userID
// (tomado del token). Exige la contraseña vigente: si no coincide devuelve
// ErrUnauthorized y el hash queda intacto.
func (uc *AuthUseCase) UpdatePassword(userID int64, in dto.UpdatePasswordRequest) error {
	if len(in.Password) < 6 {
		return domain.ErrInvalidInput
	}
	usuario, err := uc.usuarioRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.PasswordActual)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.usuarioRepo.UpdatePassword(userID, string(hash))
}

// ListUsers lista todas las cuentas (sin hashes).
func (uc *AuthUseCase) ListUsers() ([]dto.UserResponse, error) {
	usuarios, err := uc.usuarioRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// SetActivo activa o desactiva una cuenta.
func (uc *AuthUseCase) SetActivo(id int64, activo bool) error {
	usuario, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrUserNotFound
	}
	return uc.usuarioRepo.SetActivo(id, activo)
}

func toUserResponse(u *entity.Usuario) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		NombreCompleto: u.NombreCompleto,
		Email:          u.Email,
		Usuario:        u.Usuario,
		Rol:            u.Rol,
		FechaRegistro:  u.FechaRegistro,
		Activo:         u.Activo,
	}
}
