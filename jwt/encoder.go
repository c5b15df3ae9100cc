package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/bobinette/bookshelf/errors"
)

const issuer = "bookshelf"

// EncodeDecoder signs and verifies short lived tokens carrying a user id,
// used for password resets.
type EncodeDecoder struct {
	key []byte
	ttl time.Duration
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewEncodeDecoder(key []byte, ttl time.Duration) *EncodeDecoder {
	return &EncodeDecoder{
		key: key,
		ttl: ttl,
	}
}

func (e *EncodeDecoder) Encode(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.key)
}

// Decode returns the user id of a valid token. Invalid or expired tokens give
// a bad request error.
func (e *EncodeDecoder) Decode(bearer string) (string, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return e.key, nil
	})
	if err != nil {
		return "", errors.New("that is an invalid or expired token", errors.BadRequest(), errors.WithCause(err))
	}

	if !token.Valid || claims.Issuer != issuer || claims.UserID == "" {
		return "", errors.New("that is an invalid or expired token", errors.BadRequest())
	}
	return claims.UserID, nil
}
