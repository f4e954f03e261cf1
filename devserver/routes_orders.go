package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"buildmart.GO/model"
)

func init() {
	RegisterModule(registerOrderRoutes)
}

func registerOrderRoutes(s *Server, g *echo.Group) {
	g.POST("/orders", func(c echo.Context) error {
		user := currentUser(c)
		var input model.CreateOrderInput
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if input.ShippingAddress == "" {
			return errJSON(c, http.StatusBadRequest, "shipping address is required", "validation", "shipping_address")
		}

		items, err := s.loadCart(user.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		if len(items) == 0 {
			return errJSON(c, http.StatusBadRequest, "cart is empty", "empty_cart", "")
		}

		var order Order
		err = s.db.Transaction(func(tx *gorm.DB) error {
			var orderItems []model.OrderItem
			subtotal := 0.0
			for i := range items {
				it := &items[i]
				var product Product
				if err := tx.First(&product, it.ProductID).Error; err != nil {
					return fmt.Errorf("product %d no longer available", it.ProductID)
				}
				if it.Quantity > product.StockQuantity {
					return fmt.Errorf("insufficient stock for %s", product.Name)
				}
				product.StockQuantity -= it.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
				orderItems = append(orderItems, model.OrderItem{
					ProductID: fmt.Sprint(product.ID),
					Name:      product.Name,
					SKU:       product.SKU,
					Quantity:  it.Quantity,
					Price:     it.Price,
				})
				subtotal += it.Price * float64(it.Quantity)
			}

			encoded, err := json.Marshal(orderItems)
			if err != nil {
				return err
			}
			order = Order{
				Number:          fmt.Sprintf("BM-%d", time.Now().UnixNano()%1e10),
				UserID:          user.ID,
				Status:          model.OrderPending,
				Items:           encoded,
				Subtotal:        subtotal,
				Total:           subtotal,
				ShippingAddress: input.ShippingAddress,
				Notes:           input.Notes,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			if err := tx.Create(&OrderEvent{OrderID: order.ID, Status: model.OrderPending, Note: "order placed"}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&CartItem{}).Error; err != nil {
				return err
			}
			return tx.Create(&Notification{
				UserID: user.ID,
				Title:  "Order " + order.Number + " placed",
				Body:   "We received your order and will confirm it shortly.",
			}).Error
		})
		if err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error(), "order_failed", "")
		}
		return wrapped(c, http.StatusCreated, orderDTO(&order), "order placed")
	})

	g.GET("/orders", func(c echo.Context) error {
		user := currentUser(c)
		page, limit := pageParams(c)
		q := s.db.Model(&Order{}).Where("user_id = ?", user.ID)
		if status := c.QueryParam("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		var total int64
		q.Count(&total)
		var orders []Order
		if err := q.Order("id desc").Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, orderListDTO(orders, int(total)), "")
	})

	g.GET("/orders/:id", func(c echo.Context) error {
		user := currentUser(c)
		var order Order
		if err := s.db.Where("user_id = ?", user.ID).First(&order, c.Param("id")).Error; err != nil {
			return notFound(c, "order")
		}
		return wrapped(c, http.StatusOK, orderDTO(&order), "")
	})

	g.POST("/orders/:id/cancel", func(c echo.Context) error {
		user := currentUser(c)
		var order Order
		if err := s.db.Where("user_id = ?", user.ID).First(&order, c.Param("id")).Error; err != nil {
			return notFound(c, "order")
		}
		if order.Status != model.OrderPending {
			return errJSON(c, http.StatusConflict, "only pending orders can be cancelled", "invalid_status", "status")
		}
		order.Status = model.OrderCancelled
		s.db.Save(&order)
		s.db.Create(&OrderEvent{OrderID: order.ID, Status: model.OrderCancelled, Note: "cancelled by customer"})
		return wrapped(c, http.StatusOK, orderDTO(&order), "order cancelled")
	})

	// Tracking history comes back bare.
	g.GET("/orders/:id/tracking", func(c echo.Context) error {
		user := currentUser(c)
		var order Order
		if err := s.db.Where("user_id = ?", user.ID).First(&order, c.Param("id")).Error; err != nil {
			return notFound(c, "order")
		}
		var events []OrderEvent
		s.db.Where("order_id = ?", order.ID).Order("id asc").Find(&events)
		out := make([]model.TrackingEvent, 0, len(events))
		for _, e := range events {
			out = append(out, model.TrackingEvent{
				Status:    e.Status,
				Note:      e.Note,
				Timestamp: e.CreatedAt.Format(time.RFC3339),
			})
		}
		return bare(c, http.StatusOK, out)
	})
}

func orderListDTO(orders []Order, total int) model.OrderList {
	out := model.OrderList{Orders: []model.Order{}, Total: total}
	for i := range orders {
		out.Orders = append(out.Orders, orderDTO(&orders[i]))
	}
	return out
}
