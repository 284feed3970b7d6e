package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/billing"
	"github.com/ordena-app/ordena/cart"
	"github.com/ordena-app/ordena/events"
	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
	"github.com/ordena-app/ordena/wire"
)

type OrderController struct {
	DB    *gorm.DB
	Store *cart.Store
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Store: cart.NewStore(db)}
}

// CreateOrder -> cliente da mesa envia o pedido no contrato wire
func (oc *OrderController) CreateOrder(c *gin.Context) {
	table, err := findTableByCode(oc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var body wire.OrderSubmissionWire
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// O uuid do payload identifica a mesa; precisa bater com a rota
	if body.UUID != "" && body.UUID != table.Code {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"uuid do payload não corresponde à mesa"})
		return
	}

	if len(body.Itens) == 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"pedido sem itens"})
		return
	}

	tx := oc.DB.Begin()

	order := models.Order{
		TableID:      table.ID,
		Status:       models.OrderConfirmed,
		GeneralNotes: body.ObservacoesGerais,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	lineItems := make([]billing.LineItem, 0, len(body.Itens))
	for _, item := range body.Itens {
		if item.Quantidade <= 0 {
			tx.Rollback()
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"quantidade inválida"})
			return
		}

		var product models.Product
		if err := tx.First(&product, item.ProdutoID).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusBadRequest,
				&CustomError{fmt.Sprintf("produto %d não encontrado", item.ProdutoID)})
			return
		}
		if !product.Available {
			tx.Rollback()
			utils.RespondError(c, http.StatusConflict,
				&CustomError{fmt.Sprintf("produto %s indisponível", product.Name)})
			return
		}

		orderItem := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  item.Quantidade,
			Price:     product.Price,
			Notes:     item.Observacoes,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		lineItems = append(lineItems, billing.LineItem{
			ID:        strconv.FormatInt(item.ProdutoID, 10),
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantidade,
		})
	}

	order.TotalAmount = billing.SumLineItems(lineItems)
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Mesa passa a ocupada no primeiro pedido
	if table.Status == models.TableAvailable {
		table.Status = models.TableOccupied
		if err := tx.Save(&table).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Pedido enviado esvazia o carrinho da mesa
	if err := oc.Store.Clear(table.Code); err != nil {
		utils.ErrorLogger.Printf("failed to clear cart for table %s: %v", table.Code, err)
	}

	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Product").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderCreate(order)
	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Order #%d created for table %s (total=%s)",
		order.ID, table.Number, utils.FormatCurrencyBRL(order.TotalAmount))
	utils.RespondJSON(c, http.StatusCreated, "Order created", orderToWire(order))
}

// GetTableOrders -> pedidos da mesa no contrato wire (acompanhamento do cliente)
func (oc *OrderController) GetTableOrders(c *gin.Context) {
	table, err := findTableByCode(oc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Product").
		Where("table_id = ? AND status != ?", table.ID, models.OrderClosed).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]wire.OrderWire, len(orders))
	for i, o := range orders {
		out[i] = orderToWire(o)
	}
	utils.RespondJSON(c, http.StatusOK, "Table orders", out)
}

// GetAllOrders -> painel admin; ?status= filtra, padrão exclui fechados
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems").Preload("OrderItems.Product").Preload("Table")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status != ?", models.OrderClosed)
	}

	var orders []models.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detalhe de um pedido (admin)
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Product").Preload("Table").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// validTransitions: confirmed -> preparing -> delivered
var validTransitions = map[string]string{
	models.OrderConfirmed: models.OrderPreparing,
	models.OrderPreparing: models.OrderDelivered,
}

// UpdateOrderStatus -> cozinha avança o pedido de estado
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Status string `json:"status" binding:"required,oneof=preparing delivered"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Product").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if validTransitions[order.Status] != body.Status {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidTransition)
		return
	}

	order.Status = body.Status
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)

	utils.InfoLogger.Printf("Order #%d moved to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
