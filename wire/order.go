package wire

import (
	"strconv"
	"time"
)

// Order status values on the wire (Portuguese) and internally.
const (
	StatusConfirmadoWire = "confirmado"
	StatusPreparandoWire = "preparando"
	StatusEntregueWire   = "entregue"
)

type OrderStatus string

const (
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
)

// OrderItemWire is one order line as it travels over the API.
// Observacoes carries no omitempty: the contract requires an explicit
// null, never a missing key, on the way out.
type OrderItemWire struct {
	ProdutoID     int64   `json:"produtoId"`
	Nome          string  `json:"nome"`
	Quantidade    int     `json:"quantidade"`
	PrecoUnitario float64 `json:"precoUnitario"`
	Observacoes   *string `json:"observacoes"`
}

// OrderWire is an order as returned by the API.
type OrderWire struct {
	PedidoID          int64           `json:"pedidoId"`
	Timestamp         string          `json:"timestamp"` // ISO-8601
	Status            string          `json:"status"`
	ObservacoesGerais *string         `json:"observacoesGerais"`
	Itens             []OrderItemWire `json:"itens"`
}

// SubmissionItemWire is one line of an outbound order submission.
type SubmissionItemWire struct {
	ProdutoID   int64   `json:"produtoId"`
	Quantidade  int     `json:"quantidade"`
	Observacoes *string `json:"observacoes"`
}

// OrderSubmissionWire is the payload a table's client posts to place an
// order. UUID is the table identifier printed on the QR code.
type OrderSubmissionWire struct {
	UUID              string               `json:"uuid"`
	Itens             []SubmissionItemWire `json:"itens"`
	ObservacoesGerais *string              `json:"observacoesGerais"`
}

// CartLineItem is the normalized internal view of an order or cart line.
// Notes is nil when absent; a wire null always becomes nil here and a
// nil here always becomes a wire null — never the reverse pairing.
type CartLineItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	ImageURL    string  `json:"image_url"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Notes       *string `json:"notes,omitempty"`
}

// Order is the normalized internal view of a placed order.
type Order struct {
	ID              string         `json:"id"`
	Items           []CartLineItem `json:"items"`
	TimestampMs     int64          `json:"timestamp_ms"`
	Status          OrderStatus    `json:"status"`
	TableIdentifier string         `json:"table_identifier"`
	GeneralNotes    *string        `json:"general_notes,omitempty"`
}

// SubmissionItem is the caller-side shape handed to DenormalizeOrder.
type SubmissionItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes,omitempty"`
}

// NormalizeOrder maps a wire order to the internal shape. The ISO-8601
// timestamp becomes epoch milliseconds; an unparsable timestamp defaults
// to 0 rather than failing (malformed input is defaulted, never raised).
func NormalizeOrder(raw OrderWire, tableIdentifier string) Order {
	return Order{
		ID:              strconv.FormatInt(raw.PedidoID, 10),
		Items:           NormalizeOrderItems(raw.Itens),
		TimestampMs:     parseTimestampMs(raw.Timestamp),
		Status:          NormalizeStatus(raw.Status),
		TableIdentifier: tableIdentifier,
		GeneralNotes:    raw.ObservacoesGerais,
	}
}

// NormalizeOrderItems maps wire order lines to internal line items.
// Order lines never carry catalog metadata on the wire, so description
// and category default to "" and the image to the placeholder —
// deliberately different from product defaulting, where a category falls
// back to "outros".
func NormalizeOrderItems(raw []OrderItemWire) []CartLineItem {
	items := make([]CartLineItem, len(raw))
	for i, r := range raw {
		items[i] = CartLineItem{
			ID:        strconv.FormatInt(r.ProdutoID, 10),
			Name:      r.Nome,
			ImageURL:  PlaceholderImage,
			UnitPrice: r.PrecoUnitario,
			Quantity:  r.Quantidade,
			Notes:     r.Observacoes,
		}
	}
	return items
}

// DenormalizeOrder builds the outbound submission payload. A non-numeric
// item id is a caller contract violation; the id parses to 0 upstream.
func DenormalizeOrder(tableIdentifier string, items []SubmissionItem, generalNotes *string) OrderSubmissionWire {
	itens := make([]SubmissionItemWire, len(items))
	for i, item := range items {
		produtoID, _ := strconv.ParseInt(item.ID, 10, 64)
		itens[i] = SubmissionItemWire{
			ProdutoID:   produtoID,
			Quantidade:  item.Quantity,
			Observacoes: item.Notes,
		}
	}
	return OrderSubmissionWire{
		UUID:              tableIdentifier,
		Itens:             itens,
		ObservacoesGerais: generalNotes,
	}
}

// NormalizeStatus maps a wire status string to the internal enum.
// Unknown statuses collapse to confirmed, the safe starting state.
func NormalizeStatus(status string) OrderStatus {
	switch status {
	case StatusPreparandoWire:
		return StatusPreparing
	case StatusEntregueWire:
		return StatusDelivered
	default:
		return StatusConfirmed
	}
}

// DenormalizeStatus is the inverse of NormalizeStatus.
func DenormalizeStatus(status OrderStatus) string {
	switch status {
	case StatusPreparing:
		return StatusPreparandoWire
	case StatusDelivered:
		return StatusEntregueWire
	default:
		return StatusConfirmadoWire
	}
}

func parseTimestampMs(iso string) int64 {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
