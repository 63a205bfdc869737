package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"droneshop/internal/models"
)

func TestLineTotalMultipliesUnitPrice(t *testing.T) {
	if got := lineTotal(15000, 2); got != 30000 {
		t.Fatalf("expected 30000 for quantity 2 at 15000, got %d", got)
	}
}

func TestOrderTotalSumsAllLines(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: primitive.NewObjectID(), Price: 15000, Quantity: 2},
		{ProductID: primitive.NewObjectID(), Price: 4999, Quantity: 1},
	}
	if got := orderTotal(items); got != 34999 {
		t.Fatalf("expected 34999, got %d", got)
	}
}

func TestOrderTotalEmptyOrderIsZero(t *testing.T) {
	if got := orderTotal(nil); got != 0 {
		t.Fatalf("expected 0 for no items, got %d", got)
	}
}
