package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/config"
	"storefront/internal/i18n"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // string
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int

	// ブラウザのWebSocketはヘッダを付けられないのでクエリでも受ける
	TokenQueryParam = "token"
)

type accessClaims struct {
	UserID       string
	Role         string
	TokenVersion int
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return deny(c, http.StatusUnauthorized, i18n.MsgUnauthorized)
			}
			claims, err := parseAccessToken(cfg.JWTSecret, raw)
			if err != nil {
				return deny(c, http.StatusUnauthorized, i18n.MsgUnauthorized)
			}
			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuthJWT はトークンがあれば検証して context に入れる。
// 無い・不正なときはゲストとして通す。
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := extractToken(c); raw != "" {
				if claims, err := parseAccessToken(cfg.JWTSecret, raw); err == nil {
					setClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}

// UserIDFrom は AuthJWT が入れたユーザーID
func UserIDFrom(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxUserIDKey).(string)
	return id, ok && id != ""
}

func setClaims(c echo.Context, claims accessClaims) {
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxUserRoleKey, claims.Role)
	c.Set(CtxTokenVersionKey, claims.TokenVersion)
}

// Authorization: Bearer を優先し、無ければ ?token=
func extractToken(c echo.Context) string {
	if authz := c.Request().Header.Get(echo.HeaderAuthorization); authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(c.QueryParam(TokenQueryParam))
}

func parseAccessToken(secret, raw string) (accessClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return accessClaims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return accessClaims{}, errors.New("invalid claims")
	}

	userID, err := parseString(claims["sub"])
	if err != nil || userID == "" {
		return accessClaims{}, errors.New("invalid sub")
	}

	//roleを取り出す（USER/ADMIN）
	role, err := parseString(claims["role"])
	if err != nil || role == "" {
		return accessClaims{}, errors.New("invalid role")
	}

	tv, err := parseInt(claims["tv"])
	if err != nil || tv < 0 {
		return accessClaims{}, errors.New("invalid tv")
	}

	return accessClaims{UserID: userID, Role: role, TokenVersion: tv}, nil
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

func parseInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return 0, err
		}
		return int(i64), nil
	default:
		return 0, errors.New("invalid int")
	}
}
