package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/events"
	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
)

type WaiterCallController struct {
	DB *gorm.DB
}

func NewWaiterCallController(db *gorm.DB) *WaiterCallController {
	return &WaiterCallController{DB: db}
}

// CreateCall -> cliente chama o garçom; um chamado pendente por mesa
func (wc *WaiterCallController) CreateCall(c *gin.Context) {
	table, err := findTableByCode(wc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var existing models.WaiterCall
	err = wc.DB.Where("table_id = ? AND status != ?", table.ID, models.CallResolved).
		First(&existing).Error
	if err == nil {
		// Já existe chamado aberto; devolve o mesmo em vez de duplicar
		utils.RespondJSON(c, http.StatusOK, "Waiter already called", existing)
		return
	}

	call := models.WaiterCall{
		TableID:   table.ID,
		Status:    models.CallPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := wc.DB.Create(&call).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	call.Table = table

	events.BroadcastWaiterCall(call)

	utils.InfoLogger.Printf("Waiter called at table %s", table.Number)
	utils.RespondJSON(c, http.StatusCreated, "Waiter called", call)
}

// GetTableCalls -> chamados da mesa (cliente acompanha o status)
func (wc *WaiterCallController) GetTableCalls(c *gin.Context) {
	table, err := findTableByCode(wc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var calls []models.WaiterCall
	if err := wc.DB.Where("table_id = ?", table.ID).
		Order("created_at desc").
		Find(&calls).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table calls", calls)
}

// GetAllCalls -> painel admin; padrão mostra só não resolvidos
func (wc *WaiterCallController) GetAllCalls(c *gin.Context) {
	query := wc.DB.Preload("Table")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status != ?", models.CallResolved)
	}

	var calls []models.WaiterCall
	if err := query.Order("created_at asc").Find(&calls).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter calls", calls)
}

// callTransitions: pending -> acknowledged -> resolved
var callTransitions = map[string]string{
	models.CallPending:      models.CallAcknowledged,
	models.CallAcknowledged: models.CallResolved,
}

// UpdateCall -> garçom confirma/resolve o chamado
func (wc *WaiterCallController) UpdateCall(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("call_id"))

	var body struct {
		Status string `json:"status" binding:"required,oneof=acknowledged resolved"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var call models.WaiterCall
	if err := wc.DB.Preload("Table").First(&call, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if callTransitions[call.Status] != body.Status {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidTransition)
		return
	}

	call.Status = body.Status
	call.UpdatedAt = time.Now()
	if err := wc.DB.Save(&call).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastWaiterCall(call)

	utils.RespondJSON(c, http.StatusOK, "Call updated", call)
}
