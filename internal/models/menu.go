package models

type Menu struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"` // points per unit
}

// PopularMenuItem is one row of the trailing-window popularity aggregation.
type PopularMenuItem struct {
	MenuID     int64  `json:"menu_id"`
	MenuName   string `json:"menu_name"`
	Price      int64  `json:"price"`
	OrderCount int64  `json:"order_count"`
}
