// handlers.go implements the HTTP route handlers.
//
// Every handler parses its input, calls the service and renders the JSON
// form of the result. Failures go through fail so status codes stay
// consistent across routes.

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jpl-au/catalogd/internal/log"
	"github.com/jpl-au/catalogd/internal/search"
	"github.com/jpl-au/catalogd/internal/store"
	"github.com/jpl-au/catalogd/internal/validate"
	"github.com/jpl-au/catalogd/internal/version"
	"github.com/shopspring/decimal"
)

// productFields is the writable part of a product. Pointers tell an absent
// field from a zero one, so PATCH leaves absent fields alone.
type productFields struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

// productBody accepts fields at the top level or nested under "product".
type productBody struct {
	productFields
	Product *productFields `json:"product"`
}

func (b productBody) fields() productFields {
	if b.Product != nil {
		return *b.Product
	}
	return b.productFields
}

// health handles GET /health.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "catalogd",
		"version":   version.Short(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// list handles GET /products: the full search pipeline.
func (s *Server) list(c *gin.Context) {
	req, err := search.Params{
		Query:    c.Query("search"),
		InStock:  c.Query("in_stock"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
		SortBy:   c.Query("sort_by"),
		Limit:    c.Query("limit"),
		Offset:   c.Query("offset"),
	}.Parse()
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.svc.Search(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res.ToJSON())
}

// quick handles GET /products/search.
func (s *Server) quick(c *gin.Context) {
	limit, err := search.ParseCount("limit", c.Query("limit"))
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.svc.Quick(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res.ToJSON())
}

// lowStock handles GET /products/low_stock.
func (s *Server) lowStock(c *gin.Context) {
	threshold, err := search.ParseCount("threshold", c.Query("threshold"))
	if err != nil {
		s.fail(c, err)
		return
	}
	res, err := s.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res.ToJSON())
}

// show handles GET /products/:id.
func (s *Server) show(c *gin.Context) {
	id, ok := s.id(c)
	if !ok {
		return
	}
	p, err := s.svc.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p.ToJSON())
}

// create handles POST /products.
func (s *Server) create(c *gin.Context) {
	var body productBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	f := body.fields()

	var np store.NewProduct
	if f.Name != nil {
		np.Name = *f.Name
	}
	if f.Description != nil {
		np.Description = *f.Description
	}
	if f.Price != nil {
		np.Price = *f.Price
	}
	if f.Stock != nil {
		np.Stock = *f.Stock
	}

	author := c.GetHeader(AuthorHeader)
	l := log.Event("http:products.create", "create").Author(author).Detail("name", np.Name)
	p, err := s.svc.Create(c.Request.Context(), np, author)
	if err == nil {
		l.Result(p.ID)
	}
	l.Write(err)

	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p.ToJSON())
}

// update handles PATCH and PUT /products/:id.
func (s *Server) update(c *gin.Context) {
	id, ok := s.id(c)
	if !ok {
		return
	}
	var body productBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	f := body.fields()

	author := c.GetHeader(AuthorHeader)
	_, after, err := s.svc.Update(c.Request.Context(), id, store.ProductUpdate{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Stock:       f.Stock,
	}, author)

	log.Event("http:products.update", "update").Author(author).Product(id).Write(err)

	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, after.ToJSON())
}

// destroy handles DELETE /products/:id.
func (s *Server) destroy(c *gin.Context) {
	id, ok := s.id(c)
	if !ok {
		return
	}
	author := c.GetHeader(AuthorHeader)
	_, err := s.svc.Delete(c.Request.Context(), id, author)

	log.Event("http:products.delete", "delete").Author(author).Product(id).Write(err)

	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// id parses the :id path parameter. A malformed id cannot name a product,
// so it is answered as not found.
func (s *Server) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		s.fail(c, store.ErrNotFound)
		return 0, false
	}
	return id, true
}

// fail maps err to a status code and JSON error body:
// input errors 400, product validation 422, unknown product 404,
// anything else 500.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, search.ErrInvalidRequest):
		msg := err.Error()
		if _, after, ok := strings.Cut(msg, search.ErrInvalidRequest.Error()+": "); ok {
			msg = after
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case validate.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validate.Messages(err)})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		s.log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
