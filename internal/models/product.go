package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock status values exposed on product projections.
const (
	StockStatusIn  = "in-stock"
	StockStatusLow = "low-stock"
	StockStatusOut = "out-of-stock"
)

// LowStockThreshold is the stock count at or below which a product is
// reported as low-stock.
const LowStockThreshold = 5

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       int64              `bson:"price" json:"price"` // smallest currency unit
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Images      ImageList          `bson:"images" json:"images"`
	Stock       int                `bson:"stock" json:"stock"`
	StockStatus string             `bson:"-" json:"stockStatus"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsDeleted   bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt   *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ResolveStockStatus fills the derived StockStatus field from the stored
// stock count.
func (p *Product) ResolveStockStatus() {
	switch {
	case p.Stock <= 0:
		p.StockStatus = StockStatusOut
	case p.Stock <= LowStockThreshold:
		p.StockStatus = StockStatusLow
	default:
		p.StockStatus = StockStatusIn
	}
}
