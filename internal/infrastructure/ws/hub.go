// Package ws difunde los eventos del libro a las vistas conectadas por WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/application/inventory"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/pkg/logger"
)

var _ inventory.Observer = (*Hub)(nil)

// Client conexión de una vista; *websocket.Conn la implementa.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Message sobre enviado a las vistas.
type Message struct {
	Type      string                    `json:"type"` // event_applied | event_rejected
	Event     *dto.AppliedEventResponse `json:"event,omitempty"`
	Kind      string                    `json:"kind,omitempty"`
	ErrorKind string                    `json:"error_kind,omitempty"`
	Error     string                    `json:"error,omitempty"`
}

// Hub registro de clientes y cola de difusión.
type Hub struct {
	clients    map[Client]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub crea el hub; la cola de difusión descarta mensajes si se llena.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[Client]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log.Component("ws"),
	}
}

// Run atiende registros y difusiones hasta que ctx termina. Se llama una sola vez.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				_ = c.Close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case c := <-h.Register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()
			h.log.Debug().Msg("vista conectada")

		case c := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = c.Close()
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Done se cierra cuando Run termina.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Join registra c. Devuelve false si el hub ya terminó.
func (h *Hub) Join(c Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave desregistra c; con el hub detenido no hay nada que hacer (Run ya cerró los clientes).
func (h *Hub) Leave(c Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// Clients cantidad de vistas conectadas.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// EventApplied difunde el evento aceptado.
func (h *Hub) EventApplied(_ context.Context, evt *entity.AppliedEvent) {
	out := dto.FromAppliedEvent(evt)
	h.publish(Message{Type: "event_applied", Event: &out})
}

// EventRejected difunde el rechazo (las vistas muestran el aviso).
func (h *Hub) EventRejected(_ context.Context, kind entity.EventKind, err error) {
	h.publish(Message{
		Type:      "event_rejected",
		Kind:      string(kind),
		ErrorKind: string(domain.KindOf(err)),
		Error:     err.Error(),
	})
}

func (h *Hub) publish(m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		h.log.Error().Err(err).Msg("serializar mensaje")
		return
	}
	select {
	case h.Broadcast <- b:
	default:
		h.log.Warn().Str("type", m.Type).Msg("cola de difusión llena, mensaje descartado")
	}
}
