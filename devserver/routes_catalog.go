package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"buildmart.GO/config"
	"buildmart.GO/model"
)

func init() {
	RegisterModule(registerCatalogRoutes)
}

func registerCatalogRoutes(s *Server, g *echo.Group) {
	cat := g.Group("/catalog")

	cat.GET("/products", func(c echo.Context) error {
		page, limit := pageParams(c)
		q := s.db.Model(&Product{}).Where("active = ?", true).Preload("Category")
		if search := c.QueryParam("search"); search != "" {
			pattern := "%" + search + "%"
			q = q.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
		}
		switch c.QueryParam("sort") {
		case "price_asc":
			q = q.Order("price asc")
		case "price_desc":
			q = q.Order("price desc")
		case "name":
			q = q.Order("name asc")
		default:
			q = q.Order("id asc")
		}
		list, total, err := s.pagedProducts(q, page, limit)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, productListDTO(list, total, page, limit), "")
	})

	cat.GET("/products/featured", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		if limit <= 0 {
			limit = 8
		}
		var products []Product
		if err := s.db.Preload("Category").Where("active = ? AND featured = ?", true, true).Limit(limit).Find(&products).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, productListDTO(products, len(products), 0, limit), "")
	})

	cat.GET("/products/slug/:slug", func(c echo.Context) error {
		var product Product
		if err := s.db.Preload("Category").Where("slug = ? AND active = ?", c.Param("slug"), true).First(&product).Error; err != nil {
			return notFound(c, "product")
		}
		return wrapped(c, http.StatusOK, productDTO(&product), "")
	})

	cat.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "invalid product id", "validation", "id")
		}
		var product Product
		if err := s.db.Preload("Category").Where("active = ?", true).First(&product, id).Error; err != nil {
			return notFound(c, "product")
		}
		return wrapped(c, http.StatusOK, productDTO(&product), "")
	})

	// Categories come back bare (no data envelope) — the upstream backend is
	// inconsistent here and the SDK has to cope with both shapes.
	cat.GET("/categories", func(c echo.Context) error {
		if cached := s.cachedCategories(); cached != nil {
			return c.JSONBlob(http.StatusOK, cached)
		}
		var categories []Category
		if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		out := make([]model.Category, 0, len(categories))
		for i := range categories {
			var count int64
			s.db.Model(&Product{}).Where("category_id = ? AND active = ?", categories[i].ID, true).Count(&count)
			out = append(out, categoryDTO(&categories[i], int(count)))
		}
		s.storeCategories(out)
		return bare(c, http.StatusOK, out)
	})

	cat.GET("/categories/:slug/products", func(c echo.Context) error {
		var category Category
		if err := s.db.Where("slug = ?", c.Param("slug")).First(&category).Error; err != nil {
			return notFound(c, "category")
		}
		page, limit := pageParams(c)
		q := s.db.Model(&Product{}).Preload("Category").Where("category_id = ? AND active = ?", category.ID, true)
		list, total, err := s.pagedProducts(q, page, limit)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		return wrapped(c, http.StatusOK, productListDTO(list, total, page, limit), "")
	})

	cat.GET("/search", func(c echo.Context) error {
		term := c.QueryParam("q")
		if term == "" {
			return errJSON(c, http.StatusBadRequest, "search term is required", "validation", "q")
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		ids, err := s.search.Search(c.Request().Context(), term, limit)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
		}
		var products []Product
		if len(ids) > 0 {
			if err := s.db.Preload("Category").Where("id IN ?", ids).Find(&products).Error; err != nil {
				return errJSON(c, http.StatusInternalServerError, err.Error(), "", "")
			}
		}
		return wrapped(c, http.StatusOK, productListDTO(products, len(products), 0, 0), "")
	})
}

func (s *Server) pagedProducts(q *gorm.DB, page, limit int) ([]Product, int, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []Product
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func productListDTO(products []Product, total, page, limit int) model.ProductList {
	out := model.ProductList{Products: []model.Product{}, Total: total, Page: page, Limit: limit}
	for i := range products {
		out.Products = append(out.Products, productDTO(&products[i]))
	}
	return out
}

func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}
	return page, limit
}

// --- optional redis read-through for the category list ---

const categoriesCacheKey = "buildmart:categories"

func (s *Server) cachedCategories() []byte {
	if config.RedisClient == nil {
		return nil
	}
	data, err := config.RedisClient.Get(config.RedisCtx(), categoriesCacheKey).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (s *Server) storeCategories(categories []model.Category) {
	if config.RedisClient == nil {
		return
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	config.RedisClient.Set(config.RedisCtx(), categoriesCacheKey, data, 5*time.Minute)
}
