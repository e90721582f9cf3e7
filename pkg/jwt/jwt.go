package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token de sesión del dispositivo: quién opera, con qué escáner y en qué bodega.
type Claims struct {
	jwt.RegisteredClaims
	Operator string `json:"operator"`
	DeviceID string `json:"device_id"`
	Bodega   string `json:"bodega"`
}

// SessionClaims datos de sesión extraídos de un token válido.
type SessionClaims struct {
	Operator string
	DeviceID string
	Bodega   string
}

// Generate genera un token de sesión firmado (HS256).
func Generate(secret, issuer string, s SessionClaims, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.DeviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Operator: s.Operator,
		DeviceID: s.DeviceID,
		Bodega:   s.Bodega,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los datos de sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (SessionClaims, error) {
	if secret == "" {
		return SessionClaims{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return SessionClaims{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return SessionClaims{}, fmt.Errorf("claims inválidos")
	}
	return SessionClaims{Operator: claims.Operator, DeviceID: claims.DeviceID, Bodega: claims.Bodega}, nil
}
