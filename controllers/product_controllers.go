package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/utils"
	"github.com/ordena-app/ordena/wire"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetMenu -> cardápio público da mesa: categorias + produtos no contrato wire
func (pc *ProductController) GetMenu(c *gin.Context) {
	if _, err := findTableByCode(pc.DB, c.Param("code")); err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var categories []models.Category
	if err := pc.DB.Order("id asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var products []models.Product
	if err := pc.DB.Order("id asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	categorias := make([]wire.CategoryWire, len(categories))
	for i, cat := range categories {
		categorias[i] = categoryToWire(cat)
	}
	produtos := make([]wire.ProductWire, len(products))
	for i, p := range products {
		produtos[i] = productToWire(p)
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{
		"categorias": categorias,
		"produtos":   produtos,
	})
}

// GetAllProducts -> listagem para o painel admin
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	query := pc.DB.Order("id asc")
	if catID := c.Query("categoria"); catID != "" {
		query = query.Where("category_id = ?", catID)
	}
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]wire.ProductWire, len(products))
	for i, p := range products {
		out[i] = productToWire(p)
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", out)
}

// CreateProduct -> cadastro pelo painel, payload no contrato wire
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var raw wire.ProductWire
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if raw.Nome == "" || raw.Preco < 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"nome e preco são obrigatórios"})
		return
	}

	if raw.CategoriaID != nil && *raw.CategoriaID != 0 {
		var category models.Category
		if err := pc.DB.First(&category, *raw.CategoriaID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"categoria inexistente"})
			return
		}
	}

	var product models.Product
	applyWireProduct(&product, raw)

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Product created: %s (id=%d)", product.Name, product.ID)
	utils.RespondJSON(c, http.StatusCreated, "Product created", productToWire(product))
}

// UpdateProduct -> atualização integral no contrato wire
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var raw wire.ProductWire
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	applyWireProduct(&product, raw)

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product updated", productToWire(product))
}

// ToggleAvailability -> atalho do painel para pausar um produto
func (pc *ProductController) ToggleAvailability(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	product.Available = !product.Available
	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product availability updated", productToWire(product))
}

// DeleteProduct
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	if err := pc.DB.Delete(&models.Product{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
