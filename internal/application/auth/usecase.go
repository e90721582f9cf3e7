// Package auth conexión simulada del escáner: emite y verifica los tokens de sesión de dispositivo.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SettingsProvider configuración vigente (operadores permitidos, bodega por defecto).
type SettingsProvider interface {
	Current(ctx context.Context) (*entity.Settings, error)
}

// SessionUseCase conecta dispositivos y resuelve la sesión a partir del token.
type SessionUseCase struct {
	settings SettingsProvider
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewSessionUseCase construye el caso de uso de sesión.
func NewSessionUseCase(settings SettingsProvider, jwtCfg JWTConfig) *SessionUseCase {
	return &SessionUseCase{settings: settings, jwtCfg: jwtCfg, now: time.Now}
}

// Connect valida el operador contra la configuración y emite el token del dispositivo.
func (uc *SessionUseCase) Connect(ctx context.Context, in dto.SessionRequest) (*dto.SessionResponse, error) {
	operator := strings.TrimSpace(in.Operator)
	device := strings.TrimSpace(in.DeviceID)
	if operator == "" || device == "" {
		return nil, fmt.Errorf("%w: operador y dispositivo requeridos", domain.ErrInvalidInput)
	}
	s, err := uc.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !s.HasOperator(operator) {
		return nil, fmt.Errorf("%w: operador %q no configurado", domain.ErrUnauthorized, operator)
	}
	bodega := strings.TrimSpace(in.Bodega)
	if bodega == "" {
		bodega = s.Bodega
	}

	claims := jwt.SessionClaims{Operator: operator, DeviceID: device, Bodega: bodega}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, claims, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Token:     token,
		Operator:  operator,
		DeviceID:  device,
		Bodega:    bodega,
		ExpiresAt: uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}, nil
}

// Resolve devuelve la sesión del token; un token vacío o inválido da una sesión desconectada.
func (uc *SessionUseCase) Resolve(token string) entity.Session {
	if token == "" {
		return entity.Session{}
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return entity.Session{}
	}
	return entity.Session{
		Operator:  claims.Operator,
		DeviceID:  claims.DeviceID,
		Bodega:    claims.Bodega,
		Connected: true,
	}
}
