package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"adrenaline/domain"
	"adrenaline/shared/configs"
)

// JWTData is the claim set carried by the session cookie.
type JWTData struct {
	Id string `json:"id"`
	jwt.RegisteredClaims
}

func IssueJWT(userId string) (string, error) {
	claims := JWTData{
		Id: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(configs.JWTCookie.MaxAge) * time.Second)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(configs.Envs.JWT_KEY)
}

func VerifyJWT(tokenString string) (JWTData, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTData{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidSigningAlg
		}
		return configs.Envs.JWT_KEY, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSigningAlg) {
			return JWTData{}, err
		}
		return JWTData{}, domain.ErrCorruptedToken
	}

	if claims, ok := token.Claims.(*JWTData); ok && token.Valid {
		return *claims, nil
	}

	return JWTData{}, domain.ErrCorruptedToken
}
