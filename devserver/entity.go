package devserver

import (
	"time"

	"gorm.io/datatypes"
)

// Gorm entities backing the dev store. Column shapes mirror the wire DTOs the
// SDK consumes, not a normalized production schema.

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:190"`
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         string `gorm:"size:20;default:customer"`
	CreatedAt    time.Time
}

type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:190"`
	Slug  string `gorm:"uniqueIndex;size:190"`
	Image string
}

type Product struct {
	ID            uint   `gorm:"primaryKey"`
	SKU           string `gorm:"uniqueIndex;size:64"`
	Name          string `gorm:"size:190"`
	Slug          string `gorm:"uniqueIndex;size:190"`
	Description   string
	Price         float64
	SpecialPrice  *float64
	StockQuantity int
	Unit          string `gorm:"size:20"`
	Brand         string `gorm:"size:100"`
	Images        datatypes.JSON
	CategoryID    uint
	Category      *Category
	Featured      bool
	Active        bool `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	ProductID uint
	Product   *Product
	Quantity  int
	Price     float64 // snapshot at add time
}

type Order struct {
	ID              uint   `gorm:"primaryKey"`
	Number          string `gorm:"uniqueIndex;size:32"`
	UserID          uint   `gorm:"index"`
	Status          string `gorm:"size:20;default:pending"`
	Items           datatypes.JSON
	Subtotal        float64
	ShippingFee     float64
	Total           float64
	ShippingAddress string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderEvent struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index"`
	Status    string
	Note      string
	CreatedAt time.Time
}

type WishlistItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	ProductID uint
	Product   *Product
	CreatedAt time.Time
}

type ServiceRequest struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index"`
	Type        string `gorm:"size:20"`
	Status      string `gorm:"size:20;default:requested"`
	Description string
	Address     string
	PreferredAt string
	CreatedAt   time.Time
}

type Payment struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index"`
	Method    string
	Amount    float64
	Status    string `gorm:"size:20;default:pending"`
	Reference string
	CreatedAt time.Time
}

type Notification struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}
