package entity

import "time"

const (
	SaleCompleted = "completed"
	SalePending   = "pending"
	SaleCancelled = "cancelled"
)

// SaleItem is one line of a sale. Name and Price are snapshots of the
// product at the time of sale, so later catalog edits leave past sales
// untouched.
type SaleItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Sale is a recorded order from the ventas screen.
type Sale struct {
	ID        string     `json:"id"`
	Customer  string     `json:"customer"`
	Total     float64    `json:"total"`
	Status    string     `json:"status"`
	Items     []SaleItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
