package devserver

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"buildmart.GO/model"
)

func init() {
	RegisterModule(registerWishlistRoutes)
	RegisterModule(registerPaymentRoutes)
	RegisterModule(registerServiceRoutes)
	RegisterModule(registerNotificationRoutes)
	RegisterModule(registerUploadRoutes)
}

func registerWishlistRoutes(s *Server, g *echo.Group) {
	g.GET("/wishlist", func(c echo.Context) error {
		user := currentUser(c)
		var items []WishlistItem
		if err := s.db.Preload("Product").Preload("Product.Category").Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		out := make([]model.WishlistItem, 0, len(items))
		for i := range items {
			out = append(out, wishlistDTO(&items[i]))
		}
		return bare(c, http.StatusOK, out)
	})

	g.POST("/wishlist", func(c echo.Context) error {
		user := currentUser(c)
		var body struct {
			ProductID string `json:"product_id"`
		}
		if err := c.Bind(&body); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		productID, err := strconv.Atoi(body.ProductID)
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid product id", "validation", "product_id")
		}
		var product Product
		if err := s.db.First(&product, productID).Error; err != nil {
			return notFound(c, "product")
		}
		var existing WishlistItem
		if err := s.db.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&existing).Error; err == nil {
			existing.Product = &product
			return wrapped(c, http.StatusOK, wishlistDTO(&existing), "already in wishlist")
		}
		item := WishlistItem{UserID: user.ID, ProductID: product.ID}
		if err := s.db.Create(&item).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		item.Product = &product
		return wrapped(c, http.StatusCreated, wishlistDTO(&item), "added to wishlist")
	})

	g.DELETE("/wishlist/:id", func(c echo.Context) error {
		user := currentUser(c)
		if err := s.db.Where("user_id = ? AND id = ?", user.ID, c.Param("id")).Delete(&WishlistItem{}).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, nil, "removed from wishlist")
	})
}

func wishlistDTO(item *WishlistItem) model.WishlistItem {
	dto := model.WishlistItem{
		ID:        fmt.Sprint(item.ID),
		ProductID: fmt.Sprint(item.ProductID),
		AddedAt:   item.CreatedAt.Format(time.RFC3339),
	}
	if item.Product != nil {
		p := productDTO(item.Product)
		dto.Product = &p
	}
	return dto
}

func registerPaymentRoutes(s *Server, g *echo.Group) {
	// Method list is public and bare.
	g.GET("/payments/methods", func(c echo.Context) error {
		return bare(c, http.StatusOK, []model.PaymentMethod{
			{Code: "cod", Name: "Cash on delivery", Enabled: true},
			{Code: "card", Name: "Card on pickup", Enabled: true},
			{Code: "transfer", Name: "Bank transfer", Enabled: true},
		})
	})

	g.POST("/payments", func(c echo.Context) error {
		user := currentUser(c)
		var input model.InitiatePaymentInput
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		var order Order
		if err := s.db.Where("user_id = ?", user.ID).First(&order, input.OrderID).Error; err != nil {
			return notFound(c, "order")
		}
		payment := Payment{
			OrderID:   order.ID,
			Method:    input.Method,
			Amount:    order.Total,
			Status:    "pending",
			Reference: fmt.Sprintf("PAY-%d-%d", order.ID, time.Now().Unix()),
		}
		if err := s.db.Create(&payment).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusCreated, paymentDTO(&payment), "payment initiated")
	})

	g.GET("/payments/:id", func(c echo.Context) error {
		var payment Payment
		if err := s.db.First(&payment, c.Param("id")).Error; err != nil {
			return notFound(c, "payment")
		}
		return wrapped(c, http.StatusOK, paymentDTO(&payment), "")
	})
}

func paymentDTO(p *Payment) model.Payment {
	return model.Payment{
		ID:        fmt.Sprint(p.ID),
		OrderID:   fmt.Sprint(p.OrderID),
		Method:    p.Method,
		Amount:    p.Amount,
		Status:    p.Status,
		Reference: p.Reference,
	}
}

func registerServiceRoutes(s *Server, g *echo.Group) {
	validTypes := map[string]bool{
		model.ServiceInstallation: true,
		model.ServiceTransport:    true,
		model.ServiceCutting:      true,
	}

	g.POST("/services/requests", func(c echo.Context) error {
		user := currentUser(c)
		var input model.CreateServiceRequestInput
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if !validTypes[input.Type] {
			return errJSON(c, http.StatusBadRequest, "unknown service type", "validation", "type")
		}
		if input.Address == "" {
			return errJSON(c, http.StatusBadRequest, "address is required", "validation", "address")
		}
		req := ServiceRequest{
			UserID:      user.ID,
			Type:        input.Type,
			Status:      model.ServiceRequested,
			Description: input.Description,
			Address:     input.Address,
			PreferredAt: input.PreferredAt,
		}
		if err := s.db.Create(&req).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusCreated, serviceRequestDTO(&req), "request received")
	})

	g.GET("/services/requests", func(c echo.Context) error {
		user := currentUser(c)
		var reqs []ServiceRequest
		if err := s.db.Where("user_id = ?", user.ID).Order("id desc").Find(&reqs).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		out := make([]model.ServiceRequest, 0, len(reqs))
		for i := range reqs {
			out = append(out, serviceRequestDTO(&reqs[i]))
		}
		return bare(c, http.StatusOK, out)
	})

	g.GET("/services/requests/:id", func(c echo.Context) error {
		user := currentUser(c)
		var req ServiceRequest
		if err := s.db.Where("user_id = ?", user.ID).First(&req, c.Param("id")).Error; err != nil {
			return notFound(c, "service request")
		}
		return wrapped(c, http.StatusOK, serviceRequestDTO(&req), "")
	})
}

func serviceRequestDTO(r *ServiceRequest) model.ServiceRequest {
	return model.ServiceRequest{
		ID:          fmt.Sprint(r.ID),
		Type:        r.Type,
		Status:      r.Status,
		Description: r.Description,
		Address:     r.Address,
		PreferredAt: r.PreferredAt,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func registerNotificationRoutes(s *Server, g *echo.Group) {
	g.GET("/notifications", func(c echo.Context) error {
		user := currentUser(c)
		q := s.db.Where("user_id = ?", user.ID)
		if c.QueryParam("unread") == "true" {
			q = q.Where("read = ?", false)
		}
		var notes []Notification
		if err := q.Order("id desc").Find(&notes).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		out := make([]model.Notification, 0, len(notes))
		for _, n := range notes {
			out = append(out, model.Notification{
				ID:        fmt.Sprint(n.ID),
				Title:     n.Title,
				Body:      n.Body,
				Read:      n.Read,
				CreatedAt: n.CreatedAt.Format(time.RFC3339),
			})
		}
		return bare(c, http.StatusOK, out)
	})

	g.PUT("/notifications/:id/read", func(c echo.Context) error {
		user := currentUser(c)
		res := s.db.Model(&Notification{}).Where("user_id = ? AND id = ?", user.ID, c.Param("id")).Update("read", true)
		if res.RowsAffected == 0 {
			return notFound(c, "notification")
		}
		return wrapped(c, http.StatusOK, nil, "marked read")
	})

	g.PUT("/notifications/read-all", func(c echo.Context) error {
		user := currentUser(c)
		s.db.Model(&Notification{}).Where("user_id = ?", user.ID).Update("read", true)
		return wrapped(c, http.StatusOK, nil, "all marked read")
	})
}

func registerUploadRoutes(s *Server, g *echo.Group) {
	mediaDir := func() string {
		if dir := os.Getenv("MEDIA_DIR"); dir != "" {
			return dir
		}
		return "media"
	}

	saveUpload := func(fh *multipart.FileHeader, folder string) (model.UploadedFile, error) {
		src, err := fh.Open()
		if err != nil {
			return model.UploadedFile{}, err
		}
		defer src.Close()
		dir := filepath.Join(mediaDir(), folder)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return model.UploadedFile{}, err
		}
		dest := filepath.Join(dir, filepath.Base(fh.Filename))
		out, err := os.Create(dest)
		if err != nil {
			return model.UploadedFile{}, err
		}
		defer out.Close()
		size, err := io.Copy(out, src)
		if err != nil {
			return model.UploadedFile{}, err
		}
		url := "/media/" + filepath.ToSlash(filepath.Join(folder, filepath.Base(fh.Filename)))
		return model.UploadedFile{URL: url, Filename: fh.Filename, Size: size}, nil
	}

	g.POST("/upload", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "file field is required", "validation", "file")
		}
		saved, err := saveUpload(fh, c.FormValue("folder"))
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusCreated, saved, "uploaded")
	})

	g.POST("/upload/multiple", func(c echo.Context) error {
		form, err := c.MultipartForm()
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "multipart form required", "bad_request", "")
		}
		files := form.File["files"]
		if len(files) == 0 {
			return errJSON(c, http.StatusBadRequest, "files field is required", "validation", "files")
		}
		folder := c.FormValue("folder")
		out := make([]model.UploadedFile, 0, len(files))
		for _, fh := range files {
			saved, err := saveUpload(fh, folder)
			if err != nil {
				return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
			}
			out = append(out, saved)
		}
		return wrapped(c, http.StatusCreated, out, "uploaded")
	})
}
