package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/yourorg/turnero/internal/models"
)

// Tipos de evento emitidos a las pantallas de la fila
const (
	EventPersonaCreada    = "persona_creada"
	EventPersonaTerminada = "persona_terminada"
	EventPersonaEliminada = "persona_eliminada"
)

// Event es un cambio en la fila enviado a los clientes conectados
type Event struct {
	Type      string          `json:"type"`
	ID        int64           `json:"id"`
	Persona   *models.Persona `json:"persona,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publica eventos de la fila sin bloquear al llamador
type Publisher interface {
	Publish(ev Event)
}

const (
	// tiempo máximo para escribir un evento a una pantalla
	writeWait = 10 * time.Second
	// eventos pendientes por pantalla antes de desconectarla
	sendQueueSize = 32
)

// client es lo que el hub necesita de una conexión WebSocket
type client interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// subscriber es una pantalla conectada con su cola de envío
type subscriber struct {
	conn client
	send chan []byte
}

// Hub maneja las conexiones WebSocket de las pantallas de la fila.
// Solo Run toca el mapa de clientes; cada pantalla escribe en su propia
// goroutine, así una pantalla lenta nunca frena a Run ni a Publish.
type Hub struct {
	clients    map[client]*subscriber
	count      atomic.Int64
	broadcast  chan []byte
	register   chan client
	unregister chan client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[client]*subscriber),
		broadcast:  make(chan []byte, 256),
		register:   make(chan client),
		unregister: make(chan client),
		done:       make(chan struct{}),
	}
}

// Run procesa altas, bajas y envíos hasta que ctx se cancela.
// Al salir cierra todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return

		case c := <-h.register:
			sub := &subscriber{conn: c, send: make(chan []byte, sendQueueSize)}
			h.clients[c] = sub
			h.count.Add(1)
			go h.writePump(sub)
			log.Printf("🔌 Pantalla conectada. Total clientes: %d", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				log.Printf("🔌 Pantalla desconectada. Total clientes: %d", len(h.clients))
			}

		case message := <-h.broadcast:
			for c, sub := range h.clients {
				select {
				case sub.send <- message:
				default:
					log.Printf("⚠️  Pantalla sin leer eventos, desconectando")
					h.remove(c)
				}
			}
		}
	}
}

// remove cierra la cola y la conexión. Solo se llama desde Run.
func (h *Hub) remove(c client) {
	sub := h.clients[c]
	delete(h.clients, c)
	h.count.Add(-1)
	close(sub.send)
	c.Close()
}

// writePump envía los eventos encolados de una pantalla
func (h *Hub) writePump(sub *subscriber) {
	for message := range sub.send {
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Error enviando evento a pantalla: %v", err)
			select {
			case h.unregister <- sub.conn:
			case <-h.done:
			}
			return
		}
	}
}

// ClientCount retorna la cantidad de pantallas conectadas
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish serializa el evento y lo encola. Si no hay clientes o el
// canal está lleno, el evento se descarta.
func (h *Hub) Publish(ev Event) {
	if h.ClientCount() == 0 {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error al serializar evento %s: %v", ev.Type, err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
	}
}

// Serve atiende una conexión WebSocket hasta que el cliente se desconecta
func (h *Hub) Serve(conn *websocket.Conn) {
	h.serve(conn, conn.ReadMessage)
}

func (h *Hub) serve(c client, read func() (int, []byte, error)) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Close()
		return
	}

	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	// los mensajes entrantes se ignoran; solo detectan el cierre
	for {
		if _, _, err := read(); err != nil {
			return
		}
	}
}
