package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Hub - conexiones websocket suscritas a cambios del libro de transacciones.
// El servidor solo empuja eventos de cambio; los clientes vuelven a pedir el
// snapshot completo. El motor de métricas no sabe nada de esto.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

type changeEvent struct {
	Event         string `json:"event"`
	TransactionID string `json:"transaction_id,omitempty"`
	At            string `json:"at"`
}

// Broadcast: notifica a todos los clientes que la colección cambió
func (h *Hub) Broadcast(event, transactionID string) {
	payload, err := json.Marshal(changeEvent{
		Event:         event,
		TransactionID: transactionID,
		At:            time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("No se pudo serializar el evento: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error enviando evento a un cliente: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("Cliente websocket conectado. Total: %d", total)
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("Cliente websocket desconectado. Quedan: %d", total)
}

// Upgrade: middleware que exige una conexión websocket
func Upgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// GET /api/ws
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.register(conn)
		defer h.unregister(conn)

		// solo se lee para detectar el cierre, el canal es unidireccional
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
