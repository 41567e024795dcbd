package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"storefront/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// orderEvent — событие ленты заказов, отправляемое подключённым админам.
type orderEvent struct {
	Type  string       `json:"type"`
	Order domain.Order `json:"order"`
}

// orderHub держит активные websocket-соединения админки и рассылает
// события заказов. Реализует service.OrderNotifier.
type orderHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newOrderHub() *orderHub {
	return &orderHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *orderHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *orderHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *orderHub) OrderCreated(o domain.Order) { h.broadcast(orderEvent{Type: "order_created", Order: o}) }
func (h *orderHub) OrderUpdated(o domain.Order) { h.broadcast(orderEvent{Type: "order_updated", Order: o}) }

func (h *orderHub) broadcast(ev orderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(ev); err != nil {
			// dead peer, drop it
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// @Summary Live order feed
// @Description Upgrades to websocket and streams order events
// @Tags admin
// @Security BearerAuth
// @Router /admin/orders/ws [get]
func (s *Server) orderFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.hub.add(conn)
	// reader loop only detects disconnect, inbound messages are ignored
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
