package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-ledger/internal/application/auth"
	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/usecase"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/memory"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "bodega-ledger-test"}

func newSession(t *testing.T, operators ...string) *auth.SessionUseCase {
	t.Helper()
	settings := usecase.NewSettingsUseCase(memory.NewStore().Settings(), "Bodega Central", "PEN")
	if len(operators) > 0 {
		_, err := settings.Save(context.Background(), dto.SettingsRequest{Bodega: "Don Pepe", Currency: "PEN", Operators: operators})
		require.NoError(t, err)
	}
	return auth.NewSessionUseCase(settings, testJWT)
}

func TestConnect_EmiteTokenYResolveLoRecupera(t *testing.T) {
	uc := newSession(t, "ana", "luis")

	resp, err := uc.Connect(context.Background(), dto.SessionRequest{Operator: " ana ", DeviceID: "scanner-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.Operator)
	assert.Equal(t, "Don Pepe", resp.Bodega, "sin bodega se usa la configurada")

	s := uc.Resolve(resp.Token)
	assert.True(t, s.Connected)
	assert.Equal(t, "ana", s.Operator)
	assert.Equal(t, "scanner-1", s.DeviceID)
	assert.Equal(t, "Don Pepe", s.Bodega)
}

func TestConnect_OperadorNoConfigurado(t *testing.T) {
	uc := newSession(t, "ana")

	_, err := uc.Connect(context.Background(), dto.SessionRequest{Operator: "pedro", DeviceID: "scanner-1"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestConnect_SinOperadoresAceptaCualquiera(t *testing.T) {
	uc := newSession(t)

	resp, err := uc.Connect(context.Background(), dto.SessionRequest{Operator: "pedro", DeviceID: "d", Bodega: "Sucursal"})
	require.NoError(t, err)
	assert.Equal(t, "Sucursal", resp.Bodega)
}

func TestConnect_DatosIncompletos(t *testing.T) {
	_, err := newSession(t).Connect(context.Background(), dto.SessionRequest{Operator: "ana"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_TokenInvalidoDaSesionDesconectada(t *testing.T) {
	uc := newSession(t)

	assert.False(t, uc.Resolve("").Connected)
	assert.False(t, uc.Resolve("token.invalido.aqui").Connected)

	other := auth.NewSessionUseCase(usecase.NewSettingsUseCase(memory.NewStore().Settings(), "B", "PEN"),
		auth.JWTConfig{Secret: "otro-secreto", ExpMinutes: 60})
	resp, err := other.Connect(context.Background(), dto.SessionRequest{Operator: "ana", DeviceID: "d"})
	require.NoError(t, err)
	assert.False(t, uc.Resolve(resp.Token).Connected, "firma de otro secreto")
}
