package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/infrastructure/ws"
)

type fakeClient struct {
	mu     sync.Mutex
	msgs   [][]byte
	closed bool
	fail   bool
}

func (f *fakeClient) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("conexión caída")
	}
	f.msgs = append(f.msgs, data)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) messages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.msgs...)
}

func (f *fakeClient) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func runHub(t *testing.T) (*ws.Hub, context.CancelFunc) {
	t.Helper()
	hub := ws.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func TestHub_DifundeEventos(t *testing.T) {
	hub, _ := runHub(t)
	c := &fakeClient{}
	hub.Register <- c
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	hub.EventApplied(context.Background(), &entity.AppliedEvent{
		EventID:  "e1",
		Kind:     entity.EventIngreso,
		Product:  entity.Product{SKU: "A", Name: "Arroz"},
		Movement: entity.Movement{Type: entity.MovementIngreso, SKU: "A", Quantity: 3},
	})
	hub.EventRejected(context.Background(), entity.EventVenta, domain.ErrInsufficientStock)

	require.Eventually(t, func() bool { return len(c.messages()) == 2 }, time.Second, 5*time.Millisecond)
	msgs := c.messages()

	var applied ws.Message
	require.NoError(t, json.Unmarshal(msgs[0], &applied))
	assert.Equal(t, "event_applied", applied.Type)
	require.NotNil(t, applied.Event)
	assert.Equal(t, "e1", applied.Event.EventID)

	var rejected ws.Message
	require.NoError(t, json.Unmarshal(msgs[1], &rejected))
	assert.Equal(t, "event_rejected", rejected.Type)
	assert.Equal(t, "venta", rejected.Kind)
	assert.Equal(t, string(domain.KindInsufficientStock), rejected.ErrorKind)
}

func TestHub_ClienteCaidoSeDesregistra(t *testing.T) {
	hub, _ := runHub(t)
	bad := &fakeClient{fail: true}
	good := &fakeClient{}
	hub.Register <- bad
	hub.Register <- good

	hub.EventRejected(context.Background(), entity.EventIngreso, domain.ErrNotConnected)

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, bad.isClosed())
	assert.Len(t, good.messages(), 1)

	hub.Unregister <- good
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, good.isClosed())
}

func TestHub_AlCancelarCierraClientes(t *testing.T) {
	hub, cancel := runHub(t)
	c := &fakeClient{}
	hub.Register <- c
	cancel()
	require.Eventually(t, c.isClosed, time.Second, 5*time.Millisecond)
}

func TestHub_DetenidoNoBloqueaAltasNiBajas(t *testing.T) {
	hub, cancel := runHub(t)
	c := &fakeClient{}
	require.True(t, hub.Join(c))
	cancel()

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("el hub no terminó")
	}
	assert.True(t, c.isClosed())

	left := make(chan struct{})
	go func() {
		hub.Leave(c)
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("Leave quedó bloqueado con el hub detenido")
	}
	assert.False(t, hub.Join(&fakeClient{}))
}
