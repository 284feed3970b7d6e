package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/events"
	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// findTableByCode resolves the uuid printed on a table's QR code.
func findTableByCode(db *gorm.DB, code string) (models.Table, error) {
	var table models.Table
	err := db.Where("code = ?", code).First(&table).Error
	return table, err
}

// CreateTable -> cadastra mesa nova; o código uuid vai impresso no QR
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
		Status string `json:"status"` // optional, default "available"
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Code:   uuid.NewString(),
		Number: req.Number,
		Status: models.TableAvailable,
	}
	if req.Status != "" {
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("New table created: %s (code=%s)", table.Number, table.Code)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> lista todas as mesas
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	query := tc.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// ScanTable -> consulta pública feita quando o cliente escaneia o QR
func (tc *TableController) ScanTable(c *gin.Context) {
	table, err := findTableByCode(tc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus -> admin muda status da mesa
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required,oneof=available occupied dirty"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := findTableByCode(tc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %s status changed to %s", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> remove mesa
func (tc *TableController) DeleteTable(c *gin.Context) {
	table, err := findTableByCode(tc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %s deleted", table.Number)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}
