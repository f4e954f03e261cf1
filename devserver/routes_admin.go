package devserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"buildmart.GO/model"
)

func init() {
	RegisterModule(registerAdminRoutes)
	RegisterModule(registerAdminCrudRoutes)
}

func registerAdminRoutes(s *Server, g *echo.Group) {
	admin := g.Group("/admin", requireAdmin)

	admin.GET("/dashboard", func(c echo.Context) error {
		var stats struct {
			TotalOrders   int64
			TotalProducts int64
			TotalUsers    int64
			PendingOrders int64
			LowStock      int64
			Revenue       float64
		}
		s.db.Model(&Order{}).Count(&stats.TotalOrders)
		s.db.Model(&Product{}).Count(&stats.TotalProducts)
		s.db.Model(&User{}).Count(&stats.TotalUsers)
		s.db.Model(&Order{}).Where("status = ?", model.OrderPending).Count(&stats.PendingOrders)
		s.db.Model(&Product{}).Where("stock_quantity <= ?", lowStockThreshold(c)).Count(&stats.LowStock)
		s.db.Model(&Order{}).Where("status <> ?", model.OrderCancelled).Select("COALESCE(SUM(total), 0)").Scan(&stats.Revenue)

		return wrapped(c, http.StatusOK, echo.Map{
			"total_orders":    stats.TotalOrders,
			"total_revenue":   stats.Revenue,
			"total_products":  stats.TotalProducts,
			"total_users":     stats.TotalUsers,
			"pending_orders":  stats.PendingOrders,
			"low_stock_count": stats.LowStock,
		}, "")
	})

	admin.GET("/products", func(c echo.Context) error {
		page, limit := pageParams(c)
		q := s.db.Model(&Product{})
		if search := c.QueryParam("search"); search != "" {
			pattern := "%" + search + "%"
			q = q.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
		}
		var products []Product
		if err := q.Order("id asc").Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, adminProductsDTO(products), "")
	})

	admin.GET("/orders", func(c echo.Context) error {
		page, limit := pageParams(c)
		q := s.db.Model(&Order{})
		if status := c.QueryParam("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if from := c.QueryParam("from"); from != "" {
			q = q.Where("created_at >= ?", from)
		}
		if to := c.QueryParam("to"); to != "" {
			q = q.Where("created_at < date(?, '+1 day')", to)
		}
		var total int64
		q.Count(&total)
		var orders []Order
		if err := q.Order("id desc").Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, orderListDTO(orders, int(total)), "")
	})

	admin.GET("/users", func(c echo.Context) error {
		page, limit := pageParams(c)
		q := s.db.Model(&User{})
		if search := c.QueryParam("search"); search != "" {
			pattern := "%" + search + "%"
			q = q.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", pattern, pattern, pattern)
		}
		var users []User
		if err := q.Order("id asc").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		out := make([]model.User, 0, len(users))
		for i := range users {
			out = append(out, userDTO(&users[i]))
		}
		return wrapped(c, http.StatusOK, out, "")
	})

	admin.PUT("/orders/:id/status", func(c echo.Context) error {
		var body struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if !validOrderStatus(body.Status) {
			return errJSON(c, http.StatusBadRequest, "unknown order status", "validation", "status")
		}
		var order Order
		if err := s.db.First(&order, c.Param("id")).Error; err != nil {
			return notFound(c, "order")
		}
		order.Status = body.Status
		s.db.Save(&order)
		s.db.Create(&OrderEvent{OrderID: order.ID, Status: body.Status, Note: "status updated by admin"})
		s.db.Create(&Notification{
			UserID: order.UserID,
			Title:  "Order " + order.Number + " is " + body.Status,
		})
		return wrapped(c, http.StatusOK, orderDTO(&order), "status updated")
	})

	admin.PUT("/products/:id/stock", func(c echo.Context) error {
		var body struct {
			StockQuantity *int `json:"stock_quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if body.StockQuantity == nil || *body.StockQuantity < 0 {
			return errJSON(c, http.StatusBadRequest, "stock_quantity must be zero or positive", "validation", "stock_quantity")
		}
		var product Product
		if err := s.db.First(&product, c.Param("id")).Error; err != nil {
			return notFound(c, "product")
		}
		product.StockQuantity = *body.StockQuantity
		s.db.Save(&product)
		return wrapped(c, http.StatusOK, adminProductDTO(&product), "stock updated")
	})

	admin.GET("/reports/low-stock", func(c echo.Context) error {
		var products []Product
		if err := s.db.Where("stock_quantity <= ?", lowStockThreshold(c)).Order("stock_quantity asc").Find(&products).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, adminProductsDTO(products), "")
	})
}

func adminProductsDTO(products []Product) []model.AdminProduct {
	out := make([]model.AdminProduct, 0, len(products))
	for i := range products {
		out = append(out, adminProductDTO(&products[i]))
	}
	return out
}

func lowStockThreshold(c echo.Context) int {
	if t, err := strconv.Atoi(c.QueryParam("threshold")); err == nil && t > 0 {
		return t
	}
	return 5
}

func validOrderStatus(status string) bool {
	switch status {
	case model.OrderPending, model.OrderConfirmed, model.OrderShipped, model.OrderDelivered, model.OrderCancelled:
		return true
	}
	return false
}
