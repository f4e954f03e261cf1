package devserver

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"buildmart.GO/model"
)

// The /admin/crud/<resource> surface is the REST shape the generic
// crud.Service speaks: {success, data} envelopes, bulk endpoints, export and
// import. Implemented for products and categories.

func registerAdminCrudRoutes(s *Server, g *echo.Group) {
	crud := g.Group("/admin/crud", requireAdmin)
	registerProductCrud(s, crud.Group("/products"))
	registerCategoryCrud(s, crud.Group("/categories"))
}

func crudOK(c echo.Context, status int, data interface{}, message string) error {
	body := echo.Map{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(status, body)
}

// --- products ---

func registerProductCrud(s *Server, g *echo.Group) {
	g.GET("", func(c echo.Context) error {
		page, limit := pageParams(c)
		q := s.db.Model(&Product{})
		if search := c.QueryParam("search"); search != "" {
			pattern := "%" + search + "%"
			q = q.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
		}
		if brand := c.QueryParam("brand"); brand != "" {
			q = q.Where("brand = ?", brand)
		}
		if active := c.QueryParam("active"); active != "" {
			q = q.Where("active = ?", active == "true")
		}
		if field := c.QueryParam("sortBy"); field != "" {
			dir := c.QueryParam("sortDir")
			if dir != "desc" {
				dir = "asc"
			}
			switch field {
			case "name", "price", "stock_quantity", "sku", "created_at":
				q = q.Order(field + " " + dir)
			}
		} else {
			q = q.Order("id asc")
		}
		var total int64
		q.Count(&total)
		var products []Product
		if err := q.Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    adminProductsDTO(products),
			"total":   total,
			"page":    page,
			"limit":   limit,
		})
	})

	g.POST("", func(c echo.Context) error {
		var input model.AdminProduct
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if input.SKU == "" {
			return errJSON(c, http.StatusBadRequest, "sku is required", "validation", "sku")
		}
		product := productFromInput(&input)
		if err := s.db.Create(product).Error; err != nil {
			return errJSON(c, http.StatusConflict, "could not create product: "+err.Error(), "duplicate", "sku")
		}
		return crudOK(c, http.StatusCreated, adminProductDTO(product), "product created")
	})

	g.GET("/:id", func(c echo.Context) error {
		var product Product
		if err := s.db.First(&product, c.Param("id")).Error; err != nil {
			return notFound(c, "product")
		}
		return crudOK(c, http.StatusOK, adminProductDTO(&product), "")
	})

	g.PUT("/:id", func(c echo.Context) error {
		var product Product
		if err := s.db.First(&product, c.Param("id")).Error; err != nil {
			return notFound(c, "product")
		}
		var input model.AdminProduct
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		applyProductInput(&product, &input)
		if err := s.db.Save(&product).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return crudOK(c, http.StatusOK, adminProductDTO(&product), "product updated")
	})

	g.DELETE("/:id", func(c echo.Context) error {
		res := s.db.Delete(&Product{}, c.Param("id"))
		if res.Error != nil {
			return errJSON(c, http.StatusInternalServerError, res.Error.Error(), "", "")
		}
		if res.RowsAffected == 0 {
			return notFound(c, "product")
		}
		return crudOK(c, http.StatusOK, nil, "product deleted")
	})

	g.POST("/bulk-delete", func(c echo.Context) error {
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := c.Bind(&body); err != nil || len(body.IDs) == 0 {
			return errJSON(c, http.StatusBadRequest, "ids are required", "validation", "ids")
		}
		res := s.db.Delete(&Product{}, body.IDs)
		if res.Error != nil {
			return errJSON(c, http.StatusInternalServerError, res.Error.Error(), "", "")
		}
		return crudOK(c, http.StatusOK, crudBulkSummary(int(res.RowsAffected)), "")
	})

	g.POST("/bulk-update", func(c echo.Context) error {
		var body struct {
			IDs     []string               `json:"ids"`
			Updates map[string]interface{} `json:"updates"`
		}
		if err := c.Bind(&body); err != nil || len(body.IDs) == 0 {
			return errJSON(c, http.StatusBadRequest, "ids are required", "validation", "ids")
		}
		updates := map[string]interface{}{}
		for k, v := range body.Updates {
			switch k {
			case "price", "stock_quantity", "active", "brand", "unit", "featured":
				updates[k] = v
			}
		}
		if len(updates) == 0 {
			return errJSON(c, http.StatusBadRequest, "no updatable fields given", "validation", "updates")
		}
		res := s.db.Model(&Product{}).Where("id IN ?", body.IDs).Updates(updates)
		if res.Error != nil {
			return errJSON(c, http.StatusInternalServerError, res.Error.Error(), "", "")
		}
		return crudOK(c, http.StatusOK, crudBulkSummary(int(res.RowsAffected)), "")
	})

	g.GET("/export", func(c echo.Context) error {
		format := c.QueryParam("format")
		var products []Product
		q := s.db.Model(&Product{}).Order("id asc")
		if brand := c.QueryParam("brand"); brand != "" {
			q = q.Where("brand = ?", brand)
		}
		if err := q.Find(&products).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return exportProducts(c, format, products)
	})

	g.POST("/import", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "file field is required", "validation", "file")
		}
		updateExisting := c.FormValue("updateExisting") == "true"
		skipErrors := c.FormValue("skipErrors") == "true"

		src, err := fh.Open()
		if err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error(), "", "")
		}
		defer src.Close()

		summary, err := s.importProducts(src, updateExisting, skipErrors)
		if err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error(), "import_failed", "")
		}
		return crudOK(c, http.StatusOK, summary, "import finished")
	})
}

func crudBulkSummary(affected int) echo.Map {
	return echo.Map{"affected": affected}
}

func productFromInput(in *model.AdminProduct) *Product {
	p := &Product{Active: true}
	applyProductInput(p, in)
	return p
}

func applyProductInput(p *Product, in *model.AdminProduct) {
	if in.SKU != "" {
		p.SKU = in.SKU
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Slug != "" {
		p.Slug = in.Slug
	} else if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	p.SpecialPrice = in.SpecialPrice
	if in.StockQuantity >= 0 {
		p.StockQuantity = in.StockQuantity
	}
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	if in.Brand != "" {
		p.Brand = in.Brand
	}
	if in.CategoryID != "" {
		if id, err := strconv.Atoi(in.CategoryID); err == nil {
			p.CategoryID = uint(id)
		}
	}
	if len(in.Images) > 0 {
		if encoded, err := json.Marshal(in.Images); err == nil {
			p.Images = encoded
		}
	}
	p.Active = in.Active
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_', r == '.':
			return '-'
		}
		return -1
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// --- categories ---

func registerCategoryCrud(s *Server, g *echo.Group) {
	g.GET("", func(c echo.Context) error {
		page, limit := pageParams(c)
		q := s.db.Model(&Category{})
		if search := c.QueryParam("search"); search != "" {
			q = q.Where("name LIKE ?", "%"+c.QueryParam("search")+"%")
		}
		var total int64
		q.Count(&total)
		var categories []Category
		if err := q.Order("id asc").Offset((page - 1) * limit).Limit(limit).Find(&categories).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		out := make([]model.Category, 0, len(categories))
		for i := range categories {
			out = append(out, categoryDTO(&categories[i], 0))
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    out,
			"total":   total,
			"page":    page,
			"limit":   limit,
		})
	})

	g.POST("", func(c echo.Context) error {
		var input model.Category
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if input.Name == "" {
			return errJSON(c, http.StatusBadRequest, "name is required", "validation", "name")
		}
		category := Category{Name: input.Name, Slug: input.Slug, Image: input.Image}
		if category.Slug == "" {
			category.Slug = slugify(category.Name)
		}
		if err := s.db.Create(&category).Error; err != nil {
			return errJSON(c, http.StatusConflict, "could not create category: "+err.Error(), "duplicate", "slug")
		}
		return crudOK(c, http.StatusCreated, categoryDTO(&category, 0), "category created")
	})

	g.GET("/:id", func(c echo.Context) error {
		var category Category
		if err := s.db.First(&category, c.Param("id")).Error; err != nil {
			return notFound(c, "category")
		}
		return crudOK(c, http.StatusOK, categoryDTO(&category, 0), "")
	})

	g.PUT("/:id", func(c echo.Context) error {
		var category Category
		if err := s.db.First(&category, c.Param("id")).Error; err != nil {
			return notFound(c, "category")
		}
		var input model.Category
		if err := c.Bind(&input); err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid request body", "bad_request", "")
		}
		if input.Name != "" {
			category.Name = input.Name
		}
		if input.Slug != "" {
			category.Slug = input.Slug
		}
		if input.Image != "" {
			category.Image = input.Image
		}
		if err := s.db.Save(&category).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return crudOK(c, http.StatusOK, categoryDTO(&category, 0), "category updated")
	})

	g.DELETE("/:id", func(c echo.Context) error {
		var count int64
		s.db.Model(&Product{}).Where("category_id = ?", c.Param("id")).Count(&count)
		if count > 0 {
			return errJSON(c, http.StatusConflict, "category has products", "in_use", "")
		}
		res := s.db.Delete(&Category{}, c.Param("id"))
		if res.RowsAffected == 0 {
			return notFound(c, "category")
		}
		return crudOK(c, http.StatusOK, nil, "category deleted")
	})
}

// --- export / import ---

func exportProducts(c echo.Context, format string, products []Product) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(adminProductsDTO(products), "", "  ")
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		c.Response().Header().Set("Content-Disposition", `attachment; filename="products.json"`)
		return c.Blob(http.StatusOK, "application/json", data)
	case "csv", "excel":
		filename, contentType, sep := "products.csv", "text/csv", ','
		if format == "excel" {
			// Tab-separated with .xls name opens directly in spreadsheet apps.
			filename, contentType, sep = "products.xls", "application/vnd.ms-excel", '\t'
		}
		var sb strings.Builder
		w := csv.NewWriter(&sb)
		w.Comma = sep
		_ = w.Write([]string{"sku", "name", "slug", "price", "stock_quantity", "unit", "brand", "active"})
		for i := range products {
			p := &products[i]
			_ = w.Write([]string{
				p.SKU, p.Name, p.Slug,
				strconv.FormatFloat(p.Price, 'f', 2, 64),
				strconv.Itoa(p.StockQuantity),
				p.Unit, p.Brand,
				strconv.FormatBool(p.Active),
			})
		}
		w.Flush()
		c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		return c.Blob(http.StatusOK, contentType, []byte(sb.String()))
	default:
		return errJSON(c, http.StatusBadRequest, "unsupported export format", "validation", "format")
	}
}
