package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/whattheframe/engraving-app/models"
	"github.com/whattheframe/engraving-app/utils"
)

// Event types pushed to dashboard clients.
const (
	EventOrderCreated    = "order_created"
	EventOrderClaimed    = "order_claimed"
	EventOrderCompleted  = "order_completed"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the connected dashboard clients (designers, engravers,
// admin) and fans order events out to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a new order to every client.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderClaimed announces a claim so other engravers drop it
// from their queue.
func BroadcastOrderClaimed(order models.Order) {
	broadcast(Message{Event: EventOrderClaimed, Data: order})
}

// BroadcastOrderCompleted announces a completion.
func BroadcastOrderCompleted(order models.Order) {
	broadcast(Message{Event: EventOrderCompleted, Data: order})
}

// BroadcastDashboardUpdate pushes refreshed dashboard counters.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending event to client: %v", err)
		}
	}
}
