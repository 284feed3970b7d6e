package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/controllers"
	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
)

func setupBillingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Table{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Receipt{},
	))

	db.Create(&models.Table{Code: testTableCode, Number: "A1", Status: models.TableOccupied})
	return db
}

func setupBillingRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	billingCtrl := controllers.NewBillingController(db)
	r.POST("/mesas/:code/conta/dividir", billingCtrl.SplitBill)
	r.POST("/admin/mesas/:code/fechar-conta", billingCtrl.CloseBill)
	return r
}

type splitResponse struct {
	Message string `json:"message"`
	Data    struct {
		Split struct {
			PerParticipantSubtotal   []float64 `json:"per_participant_subtotal"`
			BillSubtotal             float64   `json:"bill_subtotal"`
			ServiceFee               float64   `json:"service_fee"`
			PerParticipantServiceFee float64   `json:"per_participant_service_fee"`
		} `json:"split"`
		UnassignedItems bool `json:"unassigned_items"`
	} `json:"data"`
}

func postSplit(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/mesas/"+testTableCode+"/conta/dividir", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSplitBillPreviewEqualSplit(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	w := postSplit(t, r, `{
		"itens": [
			{"id": "1", "nome": "Pizza", "precoUnitario": 30, "quantidade": 2, "participantes": [0, 1, 2]}
		],
		"participantes": 3,
		"taxaServico": 0.1
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp splitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Split.PerParticipantSubtotal, 3)
	for _, share := range resp.Data.Split.PerParticipantSubtotal {
		assert.InDelta(t, 20.0, share, 1e-9)
	}
	assert.InDelta(t, 60.0, resp.Data.Split.BillSubtotal, 1e-9)
	assert.InDelta(t, 6.0, resp.Data.Split.ServiceFee, 1e-9)
	assert.InDelta(t, 2.0, resp.Data.Split.PerParticipantServiceFee, 1e-9)
	assert.False(t, resp.Data.UnassignedItems)
}

func TestSplitBillPreviewAllowsUnassignedItems(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	w := postSplit(t, r, `{
		"itens": [
			{"id": "1", "nome": "Pizza", "precoUnitario": 30, "quantidade": 1, "participantes": [0]},
			{"id": "2", "nome": "Suco", "precoUnitario": 8, "quantidade": 1, "participantes": []}
		],
		"participantes": 2,
		"taxaServico": 0
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp splitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Item sem participantes fica fora da prévia, mas é sinalizado
	assert.InDelta(t, 30.0, resp.Data.Split.BillSubtotal, 1e-9)
	assert.True(t, resp.Data.UnassignedItems)
}

func TestSplitBillFinalizeBlocksUnassignedItems(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	w := postSplit(t, r, `{
		"itens": [
			{"id": "1", "nome": "Pizza", "precoUnitario": 30, "quantidade": 1, "participantes": []}
		],
		"participantes": 2,
		"finalizar": true
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "without participants")
}

func TestSplitBillRejectsInvalidParticipants(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	w := postSplit(t, r, `{
		"itens": [
			{"id": "1", "nome": "Pizza", "precoUnitario": 30, "quantidade": 1, "participantes": [5]}
		],
		"participantes": 2
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCloseBillWritesReceiptAndClosesOrders(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	db.Create(&models.Product{Name: "X-Burger", Price: 25, Available: true})
	order := models.Order{TableID: 1, Status: models.OrderDelivered, TotalAmount: 50}
	require.NoError(t, db.Create(&order).Error)
	db.Create(&models.OrderItem{OrderID: order.ID, ProductID: 1, Quantity: 2, Price: 25})

	req := httptest.NewRequest(http.MethodPost, "/admin/mesas/"+testTableCode+"/fechar-conta",
		strings.NewReader(`{"participantes": 2, "taxaServico": 0.1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var receipt models.Receipt
	require.NoError(t, db.First(&receipt).Error)
	assert.InDelta(t, 50.0, receipt.Subtotal, 1e-9)
	assert.InDelta(t, 5.0, receipt.ServiceFee, 1e-9)
	assert.InDelta(t, 55.0, receipt.Total, 1e-9)
	assert.Equal(t, 2, receipt.Participants)
	assert.Contains(t, receipt.ReceiptNumber, "RCB/")

	var closed models.Order
	require.NoError(t, db.First(&closed, order.ID).Error)
	assert.Equal(t, models.OrderClosed, closed.Status)

	var table models.Table
	require.NoError(t, db.Where("code = ?", testTableCode).First(&table).Error)
	assert.Equal(t, models.TableDirty, table.Status)
}

func TestCloseBillEmptyBodyUsesDefaults(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	db.Create(&models.Product{Name: "X-Burger", Price: 25, Available: true})
	order := models.Order{TableID: 1, Status: models.OrderDelivered, TotalAmount: 25}
	require.NoError(t, db.Create(&order).Error)
	db.Create(&models.OrderItem{OrderID: order.ID, ProductID: 1, Quantity: 1, Price: 25})

	req := httptest.NewRequest(http.MethodPost, "/admin/mesas/"+testTableCode+"/fechar-conta", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var receipt models.Receipt
	require.NoError(t, db.First(&receipt).Error)
	assert.Equal(t, 1, receipt.Participants)
	assert.InDelta(t, 25.0, receipt.Subtotal, 1e-9)
	// Taxa de serviço configurada (default 10%)
	assert.InDelta(t, 2.5, receipt.ServiceFee, 1e-9)
}

func TestCloseBillRejectsNegativeServiceFee(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	db.Create(&models.Product{Name: "X-Burger", Price: 25, Available: true})
	order := models.Order{TableID: 1, Status: models.OrderDelivered, TotalAmount: 25}
	require.NoError(t, db.Create(&order).Error)
	db.Create(&models.OrderItem{OrderID: order.ID, ProductID: 1, Quantity: 1, Price: 25})

	req := httptest.NewRequest(http.MethodPost, "/admin/mesas/"+testTableCode+"/fechar-conta",
		strings.NewReader(`{"participantes": 2, "taxaServico": -0.1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot be negative")

	// Nada muda quando a taxa é inválida
	var receipts int64
	db.Model(&models.Receipt{}).Count(&receipts)
	assert.EqualValues(t, 0, receipts)

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.OrderDelivered, unchanged.Status)
}

func TestCloseBillWithNoOpenOrders(t *testing.T) {
	utils.InitLogger()
	db := setupBillingTestDB(t)
	r := setupBillingRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/admin/mesas/"+testTableCode+"/fechar-conta",
		strings.NewReader(`{"participantes": 1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no open orders")
}
