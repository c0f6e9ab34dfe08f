package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(users *UserRepoMock) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(testConfig(), users)
}

func TestAuthUsecase_Register_HashesPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users)

	users.On("FindByEmail", mock.Anything, "ana@test.cl").Return(model.User{}, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文が保存されていないこと
		return u.PasswordHash != "secreta123" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreta123")) == nil &&
			u.Role == model.RoleCustomer
	})).Return(nil)

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email: "Ana@Test.cl", Password: "secreta123", Name: "Ana",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ana@test.cl", out.Email)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_ShortPassword(t *testing.T) {
	uc := newAuthUsecase(new(UserRepoMock))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email: "ana@test.cl", Password: "corta", Name: "Ana",
	})
	assertHTTPCode(t, err, http.StatusBadRequest, usecase.CodeValidation)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users)

	users.On("FindByEmail", mock.Anything, "ana@test.cl").Return(model.User{ID: 1}, nil)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email: "ana@test.cl", Password: "secreta123", Name: "Ana",
	})
	assertHTTPCode(t, err, http.StatusConflict, usecase.CodeConflict)
}

func TestAuthUsecase_Login_IssuesTokenWithClaims(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	users.On("FindByEmail", mock.Anything, "ana@test.cl").Return(model.User{
		ID: 1, Email: "ana@test.cl", PasswordHash: string(hash),
		Role: model.RoleKitchen, IsActive: true,
	}, nil)

	out, err := uc.Login(context.Background(), usecase.LoginInput{
		Email: "ana@test.cl", Password: "secreta123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)

	token, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testConfig().JWTSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["sub"])
	assert.Equal(t, "cocinero", claims["rol"])
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "ana@test.cl").Return(model.User{
		ID: 1, PasswordHash: string(hash), IsActive: true,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email: "ana@test.cl", Password: "otra-clave",
	})
	assertHTTPCode(t, err, http.StatusUnauthorized, usecase.CodeUnauthorized)
}

func TestAuthUsecase_Login_InactiveUser(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "ana@test.cl").Return(model.User{
		ID: 1, PasswordHash: string(hash), IsActive: false,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email: "ana@test.cl", Password: "secreta123",
	})
	assertHTTPCode(t, err, http.StatusUnauthorized, usecase.CodeUnauthorized)
}

func TestAuthUsecase_Login_UnknownEmailDoesNotLeakExistence(t *testing.T) {
	users := new(UserRepoMock)
	uc := newAuthUsecase(users)

	users.On("FindByEmail", mock.Anything, "nadie@test.cl").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), usecase.LoginInput{
		Email: "nadie@test.cl", Password: "cualquiera",
	})
	assertHTTPCode(t, err, http.StatusUnauthorized, usecase.CodeUnauthorized)
}
