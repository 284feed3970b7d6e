package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func i64Ptr(i int64) *int64   { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestNormalizeProductDefaults(t *testing.T) {
	raw := ProductWire{ID: 1, Nome: "Produto Simples", Preco: 10.0}

	p := NormalizeProduct(raw)

	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "Produto Simples", p.Name)
	assert.Equal(t, 10.0, p.Price)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, "outros", p.CategoryID)
	assert.Equal(t, "/placeholder.svg", p.ImageURL)
	assert.True(t, p.Available)
	assert.False(t, p.Popular)
	assert.Equal(t, 15, p.PrepTimeMinutes)
	assert.Equal(t, []string{}, p.DietaryTags)
}

func TestNormalizeProductFullPayload(t *testing.T) {
	raw := ProductWire{
		ID:                  42,
		Nome:                "Feijoada Completa",
		Descricao:           strPtr("Serve duas pessoas"),
		Preco:               89.9,
		CategoriaID:         i64Ptr(3),
		ImagemURL:           strPtr("https://cdn.example.com/feijoada.jpg"),
		Disponivel:          boolPtr(true),
		Popular:             boolPtr(true),
		TempoPreparoMinutos: intPtr(40),
		Restricoes:          []string{"contem porco"},
	}

	p := NormalizeProduct(raw)

	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Serve duas pessoas", p.Description)
	assert.Equal(t, "3", p.CategoryID)
	assert.Equal(t, "https://cdn.example.com/feijoada.jpg", p.ImageURL)
	assert.True(t, p.Available)
	assert.True(t, p.Popular)
	assert.Equal(t, 40, p.PrepTimeMinutes)
	assert.Equal(t, []string{"contem porco"}, p.DietaryTags)
}

// categoriaId usa coalescência de falsy: o id 0 cai no fallback "outros",
// igual a quando a categoria está ausente. Comportamento do contrato.
func TestNormalizeProductCategoryZeroQuirk(t *testing.T) {
	raw := ProductWire{ID: 7, Nome: "X", Preco: 1, CategoriaID: i64Ptr(0)}
	assert.Equal(t, "outros", NormalizeProduct(raw).CategoryID)

	raw.CategoriaID = nil
	assert.Equal(t, "outros", NormalizeProduct(raw).CategoryID)
}

func TestNormalizeProductAvailableStrictCheck(t *testing.T) {
	// disponivel usa checagem estrita de nil: false explícito é preservado
	raw := ProductWire{ID: 7, Nome: "X", Preco: 1, Disponivel: boolPtr(false)}
	assert.False(t, NormalizeProduct(raw).Available)

	raw.Disponivel = nil
	assert.True(t, NormalizeProduct(raw).Available)
}

func TestNormalizeProductCoalescingQuirks(t *testing.T) {
	// tempoPreparoMinutos e restricoes coalescem em falsy: 0 e lista vazia
	// caem nos defaults
	raw := ProductWire{
		ID: 7, Nome: "X", Preco: 1,
		TempoPreparoMinutos: intPtr(0),
		Restricoes:          []string{},
	}

	p := NormalizeProduct(raw)
	assert.Equal(t, 15, p.PrepTimeMinutes)
	assert.Equal(t, []string{}, p.DietaryTags)
}

func TestNormalizeProductEmptyImage(t *testing.T) {
	raw := ProductWire{ID: 7, Nome: "X", Preco: 1, ImagemURL: strPtr("")}
	assert.Equal(t, "/placeholder.svg", NormalizeProduct(raw).ImageURL)

	// Qualquer outra string passa sem validação de URL
	raw.ImagemURL = strPtr("not a url")
	assert.Equal(t, "not a url", NormalizeProduct(raw).ImageURL)
}

func TestNormalizeProductListPreservesOrder(t *testing.T) {
	raw := []ProductWire{
		{ID: 3, Nome: "C", Preco: 3},
		{ID: 1, Nome: "A", Preco: 1},
		{ID: 2, Nome: "B", Preco: 2},
	}

	products := NormalizeProductList(raw)

	assert.Len(t, products, 3)
	assert.Equal(t, "3", products[0].ID)
	assert.Equal(t, "1", products[1].ID)
	assert.Equal(t, "2", products[2].ID)
}

func TestNormalizeProductListEmpty(t *testing.T) {
	assert.Empty(t, NormalizeProductList(nil))
	assert.Empty(t, NormalizeProductList([]ProductWire{}))
}

func TestDenormalizeProductOmitsDefaults(t *testing.T) {
	p := Product{
		ID:              "7",
		Name:            "Caldo Verde",
		Price:           12,
		CategoryID:      DefaultCategoryID,
		ImageURL:        PlaceholderImage,
		Available:       true,
		PrepTimeMinutes: DefaultPrepTimeMinutes,
		DietaryTags:     []string{},
	}

	w := DenormalizeProduct(p)

	assert.EqualValues(t, 7, w.ID)
	// Categoria "outros" e imagem placeholder não voltam ao wire
	assert.Nil(t, w.Descricao)
	assert.Nil(t, w.CategoriaID)
	assert.Nil(t, w.ImagemURL)
	assert.Nil(t, w.Restricoes)

	// Flags e tempo de preparo sempre viajam explícitos
	if assert.NotNil(t, w.Disponivel) {
		assert.True(t, *w.Disponivel)
	}
	if assert.NotNil(t, w.Popular) {
		assert.False(t, *w.Popular)
	}
	if assert.NotNil(t, w.TempoPreparoMinutos) {
		assert.Equal(t, DefaultPrepTimeMinutes, *w.TempoPreparoMinutos)
	}
}

func TestDenormalizeProductRoundTrip(t *testing.T) {
	raw := ProductWire{
		ID:                  42,
		Nome:                "Moqueca",
		Descricao:           strPtr("com dendê"),
		Preco:               89.9,
		CategoriaID:         i64Ptr(3),
		ImagemURL:           strPtr("https://cdn.example.com/moqueca.jpg"),
		Disponivel:          boolPtr(false),
		Popular:             boolPtr(true),
		TempoPreparoMinutos: intPtr(40),
		Restricoes:          []string{"sem gluten"},
	}

	again := DenormalizeProduct(NormalizeProduct(raw))

	assert.Equal(t, raw, again)
}
