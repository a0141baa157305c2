package models

// All lists every table, in creation order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&CategoryImage{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&Quote{},
	}
}
