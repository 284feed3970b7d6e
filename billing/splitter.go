// Package billing implements the bill-splitting arithmetic used by the
// split-the-check flow and by billing closeout.
//
// All functions are pure and operate on plain float64 currency values.
// No rounding is applied here; display formatting (2 decimals, locale
// separator) is the caller's responsibility.
package billing

import "errors"

var (
	ErrInvalidParticipants   = errors.New("number of participants must be positive")
	ErrNegativeServiceFee    = errors.New("service fee rate cannot be negative")
	ErrParticipantOutOfRange = errors.New("item assigned to participant outside the table")
)

// LineItem is one line of a cart or order.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Notes     *string `json:"notes,omitempty"`
}

// SplitLineItem is a LineItem tagged with the zero-indexed participant
// slots sharing its cost. An empty Participants list means the item is
// still unassigned; it contributes nothing to a split preview but blocks
// finalization (see HasUnassignedItems).
type SplitLineItem struct {
	LineItem
	Participants []int `json:"participants"`
}

// SplitResult is the outcome of ComputeSplit.
type SplitResult struct {
	PerParticipantSubtotal   []float64 `json:"per_participant_subtotal"`
	BillSubtotal             float64   `json:"bill_subtotal"`
	ServiceFee               float64   `json:"service_fee"`
	PerParticipantServiceFee float64   `json:"per_participant_service_fee"`
}

// ComputeSplit divides each item's cost equally among the participants
// assigned to it and applies the service fee on top.
//
// The service fee is always split evenly across ALL participants,
// regardless of item-level assignment. That is policy, not an accident:
// item cost follows consumption, the service fee follows the table.
func ComputeSplit(items []SplitLineItem, numParticipants int, serviceFeeRate float64) (SplitResult, error) {
	if numParticipants <= 0 {
		return SplitResult{}, ErrInvalidParticipants
	}
	if serviceFeeRate < 0 {
		return SplitResult{}, ErrNegativeServiceFee
	}

	perParticipant := make([]float64, numParticipants)
	for _, item := range items {
		if len(item.Participants) == 0 {
			// Itens sem participantes não entram na conta
			continue
		}
		itemTotal := item.UnitPrice * float64(item.Quantity)
		share := itemTotal / float64(len(item.Participants))
		for _, p := range item.Participants {
			if p < 0 || p >= numParticipants {
				return SplitResult{}, ErrParticipantOutOfRange
			}
			perParticipant[p] += share
		}
	}

	var subtotal float64
	for _, v := range perParticipant {
		subtotal += v
	}

	fee := subtotal * serviceFeeRate

	return SplitResult{
		PerParticipantSubtotal:   perParticipant,
		BillSubtotal:             subtotal,
		ServiceFee:               fee,
		PerParticipantServiceFee: fee / float64(numParticipants),
	}, nil
}

// HasUnassignedItems reports whether any item still has no participant
// assigned. Used as a gate before a split may be finalized. An empty
// item list has, vacuously, nothing unassigned.
func HasUnassignedItems(items []SplitLineItem) bool {
	for _, item := range items {
		if len(item.Participants) == 0 {
			return true
		}
	}
	return false
}

// SumLineItems returns the plain total of a list of line items.
func SumLineItems(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
