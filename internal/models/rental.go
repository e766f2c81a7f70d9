package models

const (
	// RentalActionRent переводит вещь в аренду.
	RentalActionRent = "rent"
	// RentalActionReturn возвращает вещь из аренды.
	RentalActionReturn = "return"
)

// RentalEvent — сообщение внешнего процесса аренды о смене статуса вещи.
type RentalEvent struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
	Action string `json:"action" validate:"required,oneof=rent return"`
}

// Rented возвращает целевое значение флага аренды для события.
func (e RentalEvent) Rented() bool {
	return e.Action == RentalActionRent
}
