package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/selection"
)

type CategoriesController struct {
	quotes QuoteService
}

func NewCategoriesController(quotes QuoteService) *CategoriesController {
	return &CategoriesController{quotes: quotes}
}

// CategoriesResponse lists the filter options and the active one.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

// SelectCategoryRequest is the body of PUT /api/categories/selected.
type SelectCategoryRequest struct {
	Category string `json:"category" form:"category"`
}

// List returns the filter options, "all" first.
// GET /api/categories
func (cc *CategoriesController) List(c *gin.Context) {
	c.JSON(http.StatusOK, cc.response())
}

// Select changes the active filter and persists it.
// PUT /api/categories/selected
func (cc *CategoriesController) Select(c *gin.Context) {
	var req SelectCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body", CodeMalformedPayload)
		return
	}

	if err := cc.quotes.SelectCategory(req.Category); err != nil {
		respondQuoteError(c, err, "select category")
		return
	}

	c.JSON(http.StatusOK, cc.response())
}

func (cc *CategoriesController) response() CategoriesResponse {
	categories, selected := cc.quotes.Categories()
	return CategoriesResponse{
		Categories: append([]string{selection.AllCategories}, categories...),
		Selected:   selected,
	}
}
