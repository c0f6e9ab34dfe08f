package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// access tokenの有効期限
const accessTokenTTL = 24 * time.Hour

const minPasswordLen = 8

type AuthUsecase struct {
	cfg   config.Config
	users repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"nombre"`
	Phone    string `json:"telefono"`
	Address  string `json:"direccion"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserOutput struct {
	ID      int64      `json:"id"`
	Email   string     `json:"email"`
	Name    string     `json:"nombre"`
	Phone   string     `json:"telefono,omitempty"`
	Address string     `json:"direccion,omitempty"`
	Role    model.Role `json:"rol"`
}

type LoginOutput struct {
	User        UserOutput `json:"usuario"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return UserOutput{}, errValidation("email inválido")
	}
	if len(in.Password) < minPasswordLen {
		return UserOutput{}, errValidation("la contraseña debe tener al menos 8 caracteres")
	}
	if strings.TrimSpace(in.Name) == "" {
		return UserOutput{}, errValidation("el nombre es obligatorio")
	}

	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return UserOutput{}, NewHTTPError(http.StatusConflict, CodeConflict, "el email ya está registrado")
	} else if err != repo.ErrNotFound {
		return UserOutput{}, errInternal()
	}

	// パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, errInternal()
	}

	user := model.User{
		Email:        in.Email,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		PasswordHash: string(pwHash),
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		// email重複などはuniqueIndexでここに落ちる
		return UserOutput{}, NewHTTPError(http.StatusConflict, CodeConflict, "el email ya está registrado")
	}

	return toUserOutput(user), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		// 存在の有無は漏らさない
		return LoginOutput{}, errUnauthorized()
	}
	if !user.IsActive {
		return LoginOutput{}, errUnauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, errUnauthorized()
	}

	token, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return LoginOutput{}, errInternal()
	}

	return LoginOutput{
		User:        toUserOutput(user),
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, errUnauthorized()
	}
	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, errUnauthorized()
	}
	if err != nil {
		return UserOutput{}, errInternal()
	}
	return toUserOutput(user), nil
}

func (u *AuthUsecase) issueAccessToken(user model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub": user.ID,
		"rol": string(user.Role),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int(accessTokenTTL.Seconds()), nil
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}
