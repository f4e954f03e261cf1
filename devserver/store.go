package devserver

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"buildmart.GO/model"
)

// Migrate creates the dev store schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderEvent{},
		&WishlistItem{},
		&ServiceRequest{},
		&Payment{},
		&Notification{},
	)
}

// Seed loads a small hardware/construction catalog plus an admin account.
// Idempotent: skipped when products already exist.
func Seed(db *gorm.DB) error {
	var count int64
	db.Model(&Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []Category{
		{Name: "Power Tools", Slug: "power-tools"},
		{Name: "Hand Tools", Slug: "hand-tools"},
		{Name: "Building Materials", Slug: "building-materials"},
		{Name: "Fasteners", Slug: "fasteners"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []Product{
		{SKU: "PT-DRL-001", Name: "Cordless Drill 18V", Slug: "cordless-drill-18v", Price: 129.90, StockQuantity: 42, Unit: "pc", Brand: "Makita", CategoryID: categories[0].ID, Featured: true, Active: true},
		{SKU: "PT-GRD-002", Name: "Angle Grinder 125mm", Slug: "angle-grinder-125mm", Price: 84.50, StockQuantity: 18, Unit: "pc", Brand: "Bosch", CategoryID: categories[0].ID, Featured: true, Active: true},
		{SKU: "HT-HAM-001", Name: "Claw Hammer 450g", Slug: "claw-hammer-450g", Price: 19.90, StockQuantity: 120, Unit: "pc", Brand: "Stanley", CategoryID: categories[1].ID, Active: true},
		{SKU: "BM-CEM-001", Name: "Portland Cement 42.5R", Slug: "portland-cement-425r", Price: 8.75, StockQuantity: 600, Unit: "bag", CategoryID: categories[2].ID, Active: true},
		{SKU: "FS-SCR-001", Name: "Wood Screws 4x40 (500)", Slug: "wood-screws-4x40", Price: 12.30, StockQuantity: 3, Unit: "box", CategoryID: categories[3].ID, Active: true},
	}
	for i := range products {
		products[i].Images = datatypes.JSON([]byte(`[]`))
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	admin := User{Email: "admin@buildmart.local", PasswordHash: hashPassword("admin123"), FirstName: "Site", LastName: "Admin", Role: model.RoleAdmin}
	return db.Create(&admin).Error
}

// --- DTO mapping ---

func productDTO(p *Product) model.Product {
	var images []string
	if len(p.Images) > 0 {
		_ = json.Unmarshal(p.Images, &images)
	}
	dto := model.Product{
		ID:            fmt.Sprint(p.ID),
		SKU:           p.SKU,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		SpecialPrice:  p.SpecialPrice,
		StockQuantity: p.StockQuantity,
		Unit:          p.Unit,
		Brand:         p.Brand,
		Images:        images,
		CategoryID:    fmt.Sprint(p.CategoryID),
		Featured:      p.Featured,
	}
	if p.Category != nil {
		dto.CategorySlug = p.Category.Slug
	}
	return dto
}

func adminProductDTO(p *Product) model.AdminProduct {
	base := productDTO(p)
	return model.AdminProduct{
		ID:            base.ID,
		SKU:           base.SKU,
		Name:          base.Name,
		Slug:          base.Slug,
		Description:   base.Description,
		Price:         base.Price,
		SpecialPrice:  base.SpecialPrice,
		StockQuantity: base.StockQuantity,
		Unit:          base.Unit,
		Brand:         base.Brand,
		Images:        base.Images,
		CategoryID:    base.CategoryID,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

func categoryDTO(c *Category, productCount int) model.Category {
	return model.Category{
		ID:           fmt.Sprint(c.ID),
		Name:         c.Name,
		Slug:         c.Slug,
		Image:        c.Image,
		ProductCount: productCount,
	}
}

func orderDTO(o *Order) model.Order {
	var items []model.OrderItem
	if len(o.Items) > 0 {
		_ = json.Unmarshal(o.Items, &items)
	}
	return model.Order{
		ID:              fmt.Sprint(o.ID),
		Number:          o.Number,
		Status:          o.Status,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
	}
}

func userDTO(u *User) model.User {
	return model.User{
		ID:        fmt.Sprint(u.ID),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func cartDTO(items []CartItem) model.Cart {
	out := model.Cart{Items: []model.CartItem{}}
	for i := range items {
		it := &items[i]
		dto := model.CartItem{
			ID:        fmt.Sprint(it.ID),
			ProductID: fmt.Sprint(it.ProductID),
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Price * float64(it.Quantity),
		}
		if it.Product != nil {
			dto.Name = it.Product.Name
			dto.SKU = it.Product.SKU
		}
		out.Items = append(out.Items, dto)
		out.Subtotal += dto.Subtotal
	}
	out.Total = out.Subtotal
	return out
}
