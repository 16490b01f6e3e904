package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限（設定が無いとき）
const defaultAccessTokenTTL = 15 * time.Minute

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type JwtAccessTokenDTO struct {
	AccessToken  string `json:"accessToken"`
	ExpiresIn    int    `json:"expiresIn"`
	TokenVersion int    `json:"tokenVersion"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type AuthUsecase struct {
	cfg   config.Config
	users repo.UserRepository
	now   func() time.Time
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register は顧客アカウントを作ってそのままログイン状態にする
func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (AuthResponse, error) {
	if fields := validator.ValidateRegister(req.Email, req.Password); !fields.OK() {
		return AuthResponse{}, NewValidationError(fields)
	}

	user, err := u.createUser(ctx, normalizeEmail(req.Email), strings.TrimSpace(req.Name), req.Password, model.RoleUser)
	if err != nil {
		return AuthResponse{}, err
	}
	return u.respond(user)
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (AuthResponse, error) {
	if fields := validator.ValidateLogin(req.Email, req.Password); !fields.OK() {
		return AuthResponse{}, NewValidationError(fields)
	}

	user, err := u.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repo.ErrNotFound) {
		return AuthResponse{}, NewHTTPError(http.StatusUnauthorized, i18n.MsgInvalidCredential)
	}
	if err != nil {
		slog.ErrorContext(ctx, "find user", "err", err)
		return AuthResponse{}, errDB()
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusUnauthorized, i18n.MsgInvalidCredential)
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return AuthResponse{}, NewHTTPError(http.StatusForbidden, i18n.MsgUserInactive)
	}

	//last_login更新
	now := u.now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		slog.WarnContext(ctx, "update last login", "user_id", user.ID, "err", err)
	}

	return u.respond(user)
}

// Logout はトークン版を上げ、発行済みのアクセストークンをすべて無効にする
func (u *AuthUsecase) Logout(ctx context.Context, userID string) error {
	err := u.users.IncrementTokenVersion(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusUnauthorized, i18n.MsgUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "increment token version", "user_id", userID, "err", err)
		return errDB()
	}
	return nil
}

// SeedAdmin は管理者がまだ居なければ作る。既に居れば何もしない。
func (u *AuthUsecase) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != model.RoleAdmin {
			slog.WarnContext(ctx, "seed admin: email belongs to a non-admin user", "email", email)
		}
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	if _, err := u.createUser(ctx, email, "admin", password, model.RoleAdmin); err != nil {
		return err
	}
	slog.InfoContext(ctx, "admin user seeded", "email", email)
	return nil
}

func (u *AuthUsecase) createUser(ctx context.Context, email, name, password string, role model.Role) (*model.User, error) {
	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, i18n.MsgInternal)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(pwHash),
		Role:         role,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, NewHTTPError(http.StatusConflict, i18n.MsgEmailTaken)
		}
		slog.ErrorContext(ctx, "create user", "err", err)
		return nil, errDB()
	}
	return user, nil
}

func (u *AuthUsecase) respond(user *model.User) (AuthResponse, error) {
	token, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgInternal)
	}
	return AuthResponse{
		User: toUserDTO(user),
		Token: JwtAccessTokenDTO{
			AccessToken:  token,
			ExpiresIn:    expiresIn,
			TokenVersion: user.TokenVersion,
		},
	}, nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	ttl := u.cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}
	now := u.now()

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"tv":   user.TokenVersion,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int(ttl.Seconds()), nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}
