package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/ordena-app/ordena/models"
	"github.com/ordena-app/ordena/wire"
)

// productToWire serves a catalog product in the client contract shape.
// The gorm model is lifted into the normalized wire view first, so the
// inverse mapping lives in wire.DenormalizeProduct next to its
// counterpart.
func productToWire(p models.Product) wire.ProductWire {
	view := wire.Product{
		ID:              strconv.FormatUint(uint64(p.ID), 10),
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		CategoryID:      wire.DefaultCategoryID,
		ImageURL:        wire.PlaceholderImage,
		Available:       p.Available,
		Popular:         p.Popular,
		PrepTimeMinutes: p.PrepTimeMinutes,
		DietaryTags:     decodeTags(p.DietaryTags),
	}
	if p.CategoryID != nil {
		view.CategoryID = strconv.FormatUint(uint64(*p.CategoryID), 10)
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		view.ImageURL = *p.ImageURL
	}
	return wire.DenormalizeProduct(view)
}

// applyWireProduct fills a catalog product from a wire payload, going
// through wire.NormalizeProduct so the contract's defaulting rules hold
// in one place only.
func applyWireProduct(p *models.Product, raw wire.ProductWire) {
	normalized := wire.NormalizeProduct(raw)

	p.Name = normalized.Name
	p.Description = normalized.Description
	p.Price = normalized.Price
	p.Available = normalized.Available
	p.Popular = normalized.Popular
	p.PrepTimeMinutes = normalized.PrepTimeMinutes
	p.DietaryTags = encodeTags(normalized.DietaryTags)

	if raw.CategoriaID != nil && *raw.CategoriaID != 0 {
		catID := uint(*raw.CategoriaID)
		p.CategoryID = &catID
	} else {
		p.CategoryID = nil
	}
	if normalized.ImageURL != wire.PlaceholderImage {
		img := normalized.ImageURL
		p.ImageURL = &img
	} else {
		p.ImageURL = nil
	}
}

func categoryToWire(c models.Category) wire.CategoryWire {
	return wire.CategoryWire{ID: int64(c.ID), Nome: c.Name}
}

// orderToWire serves a placed order in the client contract shape.
// Notes travel as explicit null when absent.
func orderToWire(o models.Order) wire.OrderWire {
	itens := make([]wire.OrderItemWire, len(o.OrderItems))
	for i, item := range o.OrderItems {
		itens[i] = wire.OrderItemWire{
			ProdutoID:     int64(item.ProductID),
			Nome:          item.Product.Name,
			Quantidade:    item.Quantity,
			PrecoUnitario: item.Price,
			Observacoes:   item.Notes,
		}
	}
	return wire.OrderWire{
		PedidoID:          int64(o.ID),
		Timestamp:         o.CreatedAt.UTC().Format(time.RFC3339),
		Status:            wire.DenormalizeStatus(wire.OrderStatus(o.Status)),
		ObservacoesGerais: o.GeneralNotes,
		Itens:             itens,
	}
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
