package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordena-app/ordena/billing"
	"github.com/ordena-app/ordena/cart"
	"github.com/ordena-app/ordena/utils"
	"github.com/ordena-app/ordena/wire"
)

type CartController struct {
	DB    *gorm.DB
	Store *cart.Store
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db, Store: cart.NewStore(db)}
}

// GetCart -> carrinho aberto da mesa, com total calculado
func (cc *CartController) GetCart(c *gin.Context) {
	table, err := findTableByCode(cc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	items := cc.Store.Get(table.Code)
	utils.RespondJSON(c, http.StatusOK, "Cart", gin.H{
		"items": items,
		"total": billing.SumLineItems(cartToLineItems(items)),
	})
}

// PutCart -> substitui o carrinho da mesa
func (cc *CartController) PutCart(c *gin.Context) {
	table, err := findTableByCode(cc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var items []wire.CartLineItem
	if err := c.ShouldBindJSON(&items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	for _, item := range items {
		if item.Quantity < 0 {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"quantidade não pode ser negativa"})
			return
		}
	}

	if err := cc.Store.Put(table.Code, items); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart updated", gin.H{
		"items": items,
		"total": billing.SumLineItems(cartToLineItems(items)),
	})
}

// ClearCart -> esvazia o carrinho da mesa
func (cc *CartController) ClearCart(c *gin.Context) {
	table, err := findTableByCode(cc.DB, c.Param("code"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	if err := cc.Store.Clear(table.Code); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}

func cartToLineItems(items []wire.CartLineItem) []billing.LineItem {
	out := make([]billing.LineItem, len(items))
	for i, item := range items {
		out[i] = billing.LineItem{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		}
	}
	return out
}
