package models

import "github.com/google/uuid"

// Item — вещь, которую пользователь сдаёт в аренду.
// OnRent работает как блокировка: пока вещь в аренде, её нельзя
// ни редактировать, ни удалять.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	RentPrice  float64   `json:"rent_price"`
	MDate      int       `json:"mDate"` // дата производства в формате DDMMYY
	ActualCost float64   `json:"actual_cost"`
	OnRent     bool      `json:"rent"`
	UserID     uuid.UUID `json:"userId"`
}

// DummyItem используется для приёма данных из JSON-запроса.
// Числовые поля — указатели, чтобы отличать отсутствующее значение от нуля.
type DummyItem struct {
	Name       string   `json:"name" validate:"required"`
	RentPrice  *float64 `json:"rent_price" validate:"required"`
	MDate      *int     `json:"mDate" validate:"required"`
	ActualCost *float64 `json:"actual_cost" validate:"required"`
}

// ToItem переносит поля запроса в Item. Идентификаторы и флаг аренды
// заполняет вызывающая сторона.
func (d DummyItem) ToItem() Item {
	var item Item
	item.Name = d.Name
	if d.RentPrice != nil {
		item.RentPrice = *d.RentPrice
	}
	if d.MDate != nil {
		item.MDate = *d.MDate
	}
	if d.ActualCost != nil {
		item.ActualCost = *d.ActualCost
	}
	return item
}
