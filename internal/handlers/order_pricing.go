package handlers

import "droneshop/internal/models"

// lineTotal is the amount for one order line in the smallest currency
// unit.
func lineTotal(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

// orderTotal sums the snapshot prices of all lines. This server-side
// figure is authoritative; the client-supplied total must match it.
func orderTotal(items []models.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += lineTotal(item.Price, item.Quantity)
	}
	return total
}
