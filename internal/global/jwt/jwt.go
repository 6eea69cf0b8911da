package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt"
	"sportify/config"
	"sportify/internal/model"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Payload 写入令牌的用户身份
type Payload struct {
	UserID   uint       `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

type Claims struct {
	Payload
	jwtlib.StandardClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role.IsAdmin()
}

func CreateToken(p Payload) (string, error) {
	cfg := config.Get().JWT
	return createToken(p, []byte(cfg.AccessSecret), time.Duration(cfg.AccessExpire)*time.Second)
}

func createToken(p Payload, secret []byte, expire time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Payload: p,
		StandardClaims: jwtlib.StandardClaims{
			Subject:   strconv.FormatUint(uint64(p.UserID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(expire).Unix(),
			Issuer:    "sportify",
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken 过期返回 ErrTokenExpired，其余失败一律 ErrTokenInvalid
func ParseToken(token string) (*Claims, error) {
	return parseToken(token, []byte(config.Get().JWT.AccessSecret))
}

func parseToken(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		var ve *jwtlib.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwtlib.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
