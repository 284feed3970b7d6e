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

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Table{},
		&models.Category{},
		&models.Product{},
	))

	db.Create(&models.Table{Code: testTableCode, Number: "A1", Status: models.TableAvailable})
	db.Create(&models.Category{Name: "Lanches"})
	return db
}

func setupProductRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	productCtrl := controllers.NewProductController(db)
	r.GET("/mesas/:code/cardapio", productCtrl.GetMenu)
	r.POST("/produtos", productCtrl.CreateProduct)
	r.PATCH("/produtos/:product_id/disponibilidade", productCtrl.ToggleAvailability)
	return r
}

func TestCreateProductAppliesWireDefaults(t *testing.T) {
	utils.InitLogger()
	db := setupProductTestDB(t)
	r := setupProductRouter(db)

	// categoriaId 0 conta como "sem categoria", igual a null
	payload := `{
		"nome": "Pão de Queijo",
		"preco": 6.5,
		"categoriaId": 0,
		"tempoPreparoMinutos": 0,
		"disponivel": false
	}`
	req := httptest.NewRequest(http.MethodPost, "/produtos", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, db.Where("name = ?", "Pão de Queijo").First(&product).Error)

	assert.Nil(t, product.CategoryID)
	assert.Nil(t, product.ImageURL)
	// preparo 0 cai no default, mas disponivel=false explícito é mantido
	assert.Equal(t, 15, product.PrepTimeMinutes)
	assert.False(t, product.Available)
}

func TestGetMenuServesWireShape(t *testing.T) {
	utils.InitLogger()
	db := setupProductTestDB(t)
	r := setupProductRouter(db)

	catID := uint(1)
	img := "https://cdn.example.com/burger.jpg"
	db.Create(&models.Product{
		Name:            "X-Burger",
		Price:           25.5,
		CategoryID:      &catID,
		ImageURL:        &img,
		Available:       true,
		PrepTimeMinutes: 20,
		DietaryTags:     `["sem lactose"]`,
	})
	db.Create(&models.Product{
		Name:            "Mistério do Chef",
		Price:           30,
		Available:       true,
		PrepTimeMinutes: 15,
	})

	req := httptest.NewRequest(http.MethodGet, "/mesas/"+testTableCode+"/cardapio", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Categorias []struct {
				ID   int64  `json:"id"`
				Nome string `json:"nome"`
			} `json:"categorias"`
			Produtos []struct {
				Nome        string   `json:"nome"`
				CategoriaID *int64   `json:"categoriaId"`
				ImagemURL   *string  `json:"imagemUrl"`
				Restricoes  []string `json:"restricoes"`
			} `json:"produtos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data.Categorias, 1)
	assert.Equal(t, "Lanches", resp.Data.Categorias[0].Nome)

	require.Len(t, resp.Data.Produtos, 2)
	require.NotNil(t, resp.Data.Produtos[0].CategoriaID)
	assert.EqualValues(t, 1, *resp.Data.Produtos[0].CategoriaID)
	require.NotNil(t, resp.Data.Produtos[0].ImagemURL)
	assert.Equal(t, img, *resp.Data.Produtos[0].ImagemURL)
	assert.Equal(t, []string{"sem lactose"}, resp.Data.Produtos[0].Restricoes)

	// Produto sem categoria nem imagem viaja sem as chaves (omitempty)
	assert.Nil(t, resp.Data.Produtos[1].CategoriaID)
	assert.Nil(t, resp.Data.Produtos[1].ImagemURL)
}

func TestGetMenuUnknownTable(t *testing.T) {
	utils.InitLogger()
	db := setupProductTestDB(t)
	r := setupProductRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/mesas/nao-existe/cardapio", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleAvailability(t *testing.T) {
	utils.InitLogger()
	db := setupProductTestDB(t)
	r := setupProductRouter(db)

	db.Create(&models.Product{Name: "X-Burger", Price: 25.5, Available: true})

	req := httptest.NewRequest(http.MethodPatch, "/produtos/1/disponibilidade", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, db.First(&product, 1).Error)
	assert.False(t, product.Available)
}
