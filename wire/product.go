// Package wire defines the JSON contract spoken by the ordering clients
// (the "comanda" web app) and the adapters between that contract and the
// internal view models.
//
// Optional wire fields are pointer-typed so that absent/null can be told
// apart from zero values. The defaulting rules below intentionally mix
// strict nil-checking and falsy-coalescing per field; the mix matches the
// established client contract and must not be "fixed" wholesale.
package wire

import "strconv"

const (
	// DefaultCategoryID is assigned to products with no category.
	DefaultCategoryID = "outros"
	// PlaceholderImage is served when a product has no image.
	PlaceholderImage = "/placeholder.svg"
	// DefaultPrepTimeMinutes is assumed when no prep time is given.
	DefaultPrepTimeMinutes = 15
)

// CategoryWire is a menu category as it travels over the API.
type CategoryWire struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// ProductWire is a product as it travels over the API.
type ProductWire struct {
	ID                  int64    `json:"id"`
	Nome                string   `json:"nome"`
	Descricao           *string  `json:"descricao,omitempty"`
	Preco               float64  `json:"preco"`
	CategoriaID         *int64   `json:"categoriaId,omitempty"`
	ImagemURL           *string  `json:"imagemUrl,omitempty"`
	Disponivel          *bool    `json:"disponivel,omitempty"`
	Popular             *bool    `json:"popular,omitempty"`
	TempoPreparoMinutos *int     `json:"tempoPreparoMinutos,omitempty"`
	Restricoes          []string `json:"restricoes,omitempty"`
}

// Product is the normalized internal view of a catalog product. Every
// field is defaulted; consumers never need nil checks.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	CategoryID      string   `json:"category_id"`
	ImageURL        string   `json:"image_url"`
	Available       bool     `json:"available"`
	Popular         bool     `json:"popular"`
	PrepTimeMinutes int      `json:"prep_time_minutes"`
	DietaryTags     []string `json:"dietary_tags"`
}

// NormalizeProduct maps a wire product to the internal shape, applying
// the contract's defaulting rules:
//
//   - categoriaId: falsy-coalesced, so null AND the literal id 0 both map
//     to "outros". A category id of 0 is therefore indistinguishable from
//     "no category" — known quirk of the contract, kept on purpose.
//   - imagemUrl: empty string or null -> placeholder; anything else is
//     passed through without validation.
//   - disponivel: strict nil check. An explicit false is preserved.
//   - popular, tempoPreparoMinutos, restricoes: falsy-coalesced, so a
//     zero prep time or an empty restriction list falls back to the
//     default. Also a known coalescing quirk, not a bug to fix silently.
func NormalizeProduct(raw ProductWire) Product {
	p := Product{
		ID:              strconv.FormatInt(raw.ID, 10),
		Name:            raw.Nome,
		Price:           raw.Preco,
		CategoryID:      DefaultCategoryID,
		ImageURL:        PlaceholderImage,
		Available:       true,
		PrepTimeMinutes: DefaultPrepTimeMinutes,
		DietaryTags:     []string{},
	}

	if raw.Descricao != nil {
		p.Description = *raw.Descricao
	}
	if raw.CategoriaID != nil && *raw.CategoriaID != 0 {
		p.CategoryID = strconv.FormatInt(*raw.CategoriaID, 10)
	}
	if raw.ImagemURL != nil && *raw.ImagemURL != "" {
		p.ImageURL = *raw.ImagemURL
	}
	if raw.Disponivel != nil {
		p.Available = *raw.Disponivel
	}
	if raw.Popular != nil {
		p.Popular = *raw.Popular
	}
	if raw.TempoPreparoMinutos != nil && *raw.TempoPreparoMinutos != 0 {
		p.PrepTimeMinutes = *raw.TempoPreparoMinutos
	}
	if len(raw.Restricoes) > 0 {
		p.DietaryTags = raw.Restricoes
	}

	return p
}

// NormalizeProductList maps NormalizeProduct over the input, preserving
// order. Display order is meaningful for the menu.
func NormalizeProductList(raw []ProductWire) []Product {
	products := make([]Product, len(raw))
	for i, r := range raw {
		products[i] = NormalizeProduct(r)
	}
	return products
}

// DenormalizeProduct is the inverse mapping, used to serve catalog
// responses (menu and admin) in wire shape. Defaulted category, image
// and restrictions are omitted on the way out; disponivel, popular and
// tempoPreparoMinutos always travel explicitly.
func DenormalizeProduct(p Product) ProductWire {
	id, _ := strconv.ParseInt(p.ID, 10, 64)

	w := ProductWire{
		ID:    id,
		Nome:  p.Name,
		Preco: p.Price,
	}
	if p.Description != "" {
		w.Descricao = &p.Description
	}
	if p.CategoryID != "" && p.CategoryID != DefaultCategoryID {
		if catID, err := strconv.ParseInt(p.CategoryID, 10, 64); err == nil {
			w.CategoriaID = &catID
		}
	}
	if p.ImageURL != "" && p.ImageURL != PlaceholderImage {
		w.ImagemURL = &p.ImageURL
	}
	w.Disponivel = &p.Available
	w.Popular = &p.Popular
	prep := p.PrepTimeMinutes
	w.TempoPreparoMinutos = &prep
	if len(p.DietaryTags) > 0 {
		w.Restricoes = p.DietaryTags
	}
	return w
}
