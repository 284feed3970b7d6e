package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
)

// Event types
const (
	EventOrderCreate = "order_create"
	EventOrderUpdate = "order_update"
	EventTableUpdate = "table_update"
	EventWaiterCall  = "waiter_call"
	EventBillClosed  = "bill_closed"
	EventSnapshot    = "snapshot"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected admin dashboard client for broadcasting.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> adds a connection to the set with its role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> releases a connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreate -> novo pedido chegou na cozinha
func BroadcastOrderCreate(order models.Order) {
	Broadcast(Message{Event: EventOrderCreate, Data: order})
}

// BroadcastOrderUpdate -> mudança de status de um pedido
func BroadcastOrderUpdate(order models.Order) {
	Broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastTableUpdate -> mudança de status de uma mesa
func BroadcastTableUpdate(table models.Table) {
	Broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastWaiterCall -> chamado de garçom criado ou atualizado
func BroadcastWaiterCall(call models.WaiterCall) {
	Broadcast(Message{Event: EventWaiterCall, Data: call})
}

// Broadcast sends a message to every connected client. Clients that fail
// to receive are dropped from the hub.
func Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("failed to marshal event %s: %v", msg.Event, err)
		}
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount reports how many dashboards are connected.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}
