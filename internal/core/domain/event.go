package domain

import "time"

type ClientEventType string

const (
	EventProductViewed   ClientEventType = "product_viewed"
	EventCartItemAdded   ClientEventType = "cart_item_added"
	EventCartItemRemoved ClientEventType = "cart_item_removed"
	EventCartQtyChanged  ClientEventType = "cart_quantity_changed"
	EventCartCleared     ClientEventType = "cart_cleared"
	EventOrderPlaced     ClientEventType = "order_placed"
)

type ClientEvent struct {
	Type      ClientEventType
	ProductID int
	Quantity  int
	CartCount int
	CartTotal float64
	At        time.Time
}
