package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ordena-app/ordena/events"
	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler -> websocket do painel admin (pedidos, chamados, mesas)
func EventsHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "admin" && role != "staff" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	events.RegisterClient(ws, role)
	sendDashboardSnapshot(ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	events.UnregisterClient(ws)
}

// sendDashboardSnapshot entrega o estado atual (pedidos abertos e
// chamados não resolvidos) ao painel recém-conectado, para que ele não
// fique cego até o próximo broadcast.
func sendDashboardSnapshot(ws *websocket.Conn) {
	db := utils.GetDB()
	if db == nil {
		return
	}

	var orders []models.Order
	db.Preload("OrderItems").Preload("OrderItems.Product").Preload("Table").
		Where("status != ?", models.OrderClosed).
		Order("created_at asc").
		Find(&orders)

	var calls []models.WaiterCall
	db.Preload("Table").
		Where("status != ?", models.CallResolved).
		Order("created_at asc").
		Find(&calls)

	payload, err := json.Marshal(events.Message{
		Event: events.EventSnapshot,
		Data: gin.H{
			"orders":       orders,
			"waiter_calls": calls,
		},
	})
	if err != nil {
		return
	}
	if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		utils.ErrorLogger.Printf("failed to send dashboard snapshot: %v", err)
	}
}
