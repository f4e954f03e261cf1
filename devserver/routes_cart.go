package devserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"buildmart.GO/model"
)

func init() {
	RegisterModule(registerCartRoutes)
}

func registerCartRoutes(s *Server, g *echo.Group) {
	g.GET("/cart", func(c echo.Context) error {
		user := currentUser(c)
		items, err := s.loadCart(user.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, cartDTO(items), "")
	})

	g.POST("/cart/items", func(c echo.Context) error {
		user := currentUser(c)
		var input model.AddToCartInput
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if input.Quantity <= 0 {
			return errJSON(c, http.StatusBadRequest, "quantity must be positive", "validation", "quantity")
		}
		productID, err := strconv.Atoi(input.ProductID)
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid product id", "validation", "product_id")
		}
		var product Product
		if err := s.db.Where("active = ?", true).First(&product, productID).Error; err != nil {
			return notFound(c, "product")
		}

		var item CartItem
		err = s.db.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&item).Error
		newQty := input.Quantity
		if err == nil {
			newQty += item.Quantity
		}
		if newQty > product.StockQuantity {
			return errJSON(c, http.StatusBadRequest, "insufficient stock", "out_of_stock", "quantity")
		}
		price := product.Price
		if product.SpecialPrice != nil {
			price = *product.SpecialPrice
		}
		if err == nil {
			item.Quantity = newQty
			item.Price = price
			s.db.Save(&item)
		} else {
			item = CartItem{UserID: user.ID, ProductID: product.ID, Quantity: input.Quantity, Price: price}
			s.db.Create(&item)
		}

		items, err := s.loadCart(user.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, cartDTO(items), "item added")
	})

	g.PUT("/cart/items/:id", func(c echo.Context) error {
		user := currentUser(c)
		var input model.UpdateCartItemInput
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if input.Quantity <= 0 {
			return errJSON(c, http.StatusBadRequest, "quantity must be positive", "validation", "quantity")
		}
		var item CartItem
		if err := s.db.Preload("Product").Where("user_id = ?", user.ID).First(&item, c.Param("id")).Error; err != nil {
			return notFound(c, "cart item")
		}
		if item.Product != nil && input.Quantity > item.Product.StockQuantity {
			return errJSON(c, http.StatusBadRequest, "insufficient stock", "out_of_stock", "quantity")
		}
		item.Quantity = input.Quantity
		s.db.Save(&item)

		items, err := s.loadCart(user.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, cartDTO(items), "cart updated")
	})

	g.DELETE("/cart/items/:id", func(c echo.Context) error {
		user := currentUser(c)
		if err := s.db.Where("user_id = ? AND id = ?", user.ID, c.Param("id")).Delete(&CartItem{}).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		items, err := s.loadCart(user.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, cartDTO(items), "item removed")
	})

	g.DELETE("/cart", func(c echo.Context) error {
		user := currentUser(c)
		if err := s.db.Where("user_id = ?", user.ID).Delete(&CartItem{}).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, nil, "cart cleared")
	})
}

func (s *Server) loadCart(userID uint) ([]CartItem, error) {
	var items []CartItem
	err := s.db.Preload("Product").Where("user_id = ?", userID).Order("id asc").Find(&items).Error
	return items, err
}
