package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/billing"
	"github.com/ordena-app/ordena/config"
	"github.com/ordena-app/ordena/events"
	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
)

type BillingController struct {
	DB *gorm.DB
}

func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{DB: db}
}

type splitItemReq struct {
	ID            string  `json:"id"`
	Nome          string  `json:"nome"`
	PrecoUnitario float64 `json:"precoUnitario"`
	Quantidade    int     `json:"quantidade"`
	Participantes []int   `json:"participantes"`
}

type splitReq struct {
	Itens         []splitItemReq `json:"itens" binding:"required"`
	Participantes int            `json:"participantes" binding:"required"`
	TaxaServico   *float64       `json:"taxaServico"`
	Finalizar     bool           `json:"finalizar"`
}

// SplitBill -> prévia (ou fechamento) da divisão da conta entre a mesa.
// Itens sem participantes são permitidos na prévia, mas bloqueiam o
// fechamento (finalizar=true).
func (bc *BillingController) SplitBill(c *gin.Context) {
	if _, err := findTableByCode(bc.DB, c.Param("code")); err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var req splitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items := make([]billing.SplitLineItem, len(req.Itens))
	for i, item := range req.Itens {
		participants := item.Participantes
		if participants == nil {
			participants = []int{}
		}
		items[i] = billing.SplitLineItem{
			LineItem: billing.LineItem{
				ID:        item.ID,
				Name:      item.Nome,
				UnitPrice: item.PrecoUnitario,
				Quantity:  item.Quantidade,
			},
			Participants: participants,
		}
	}

	if req.Finalizar && billing.HasUnassignedItems(items) {
		utils.RespondError(c, http.StatusBadRequest, ErrUnassignedItems)
		return
	}

	rate := config.ServiceFeeRate()
	if req.TaxaServico != nil {
		rate = *req.TaxaServico
	}

	result, err := billing.ComputeSplit(items, req.Participantes, rate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill split", gin.H{
		"split":                 result,
		"subtotal_formatted":    utils.FormatCurrencyBRL(result.BillSubtotal),
		"service_fee_formatted": utils.FormatCurrencyBRL(result.ServiceFee),
		"unassigned_items":      billing.HasUnassignedItems(items),
	})
}

type closeBillReq struct {
	Participantes int      `json:"participantes"`
	TaxaServico   *float64 `json:"taxaServico"`
}

// CloseBill -> fechamento da conta da mesa pelo painel: consolida os
// pedidos abertos, grava o recibo e libera a mesa (status dirty).
func (bc *BillingController) CloseBill(c *gin.Context) {
	table, err := findTableByCode(bc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var req closeBillReq
	// Corpo vazio é aceito: fecha com os defaults
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Participantes <= 0 {
		req.Participantes = 1
	}

	rate := config.ServiceFeeRate()
	if req.TaxaServico != nil {
		rate = *req.TaxaServico
	}

	var orders []models.Order
	if err := bc.DB.Preload("OrderItems").Preload("OrderItems.Product").
		Where("table_id = ? AND status != ?", table.ID, models.OrderClosed).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(orders) == 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrNothingToClose)
		return
	}

	// Todos os itens da mesa divididos igualmente entre os participantes
	everyone := make([]int, req.Participantes)
	for i := range everyone {
		everyone[i] = i
	}

	var items []billing.SplitLineItem
	orderIDs := make([]uint, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
		for _, item := range order.OrderItems {
			items = append(items, billing.SplitLineItem{
				LineItem: billing.LineItem{
					ID:        fmt.Sprintf("%d", item.ProductID),
					Name:      item.Product.Name,
					UnitPrice: item.Price,
					Quantity:  item.Quantity,
				},
				Participants: everyone,
			})
		}
	}

	split, err := billing.ComputeSplit(items, req.Participantes, rate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	breakdown, err := json.Marshal(split)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	idsJSON, err := json.Marshal(orderIDs)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx := bc.DB.Begin()

	receipt := models.Receipt{
		ReceiptNumber: fmt.Sprintf("RCB/%s/%06d", time.Now().Format("20060102"), orders[0].ID),
		TableID:       table.ID,
		OrderIDs:      string(idsJSON),
		Subtotal:      split.BillSubtotal,
		ServiceFee:    split.ServiceFee,
		Total:         split.BillSubtotal + split.ServiceFee,
		Participants:  req.Participantes,
		Breakdown:     string(breakdown),
		CreatedAt:     time.Now(),
	}
	if err := tx.Create(&receipt).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Model(&models.Order{}).
		Where("id IN ?", orderIDs).
		Update("status", models.OrderClosed).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table.Status = models.TableDirty
	if err := tx.Save(&table).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.Broadcast(events.Message{Event: events.EventBillClosed, Data: receipt})
	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Bill closed for table %s: %s (%d participants)",
		table.Number, utils.FormatCurrencyBRL(receipt.Total), receipt.Participants)
	utils.RespondJSON(c, http.StatusOK, "Bill closed", gin.H{
		"receipt":         receipt,
		"total_formatted": utils.FormatCurrencyBRL(receipt.Total),
	})
}

// GetReceipts -> histórico de fechamentos (admin)
func (bc *BillingController) GetReceipts(c *gin.Context) {
	var receipts []models.Receipt
	if err := bc.DB.Preload("Table").Order("created_at desc").Find(&receipts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipts", receipts)
}
