package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/services"
)

type QuotesController struct {
	quotes QuoteService
}

func NewQuotesController(quotes QuoteService) *QuotesController {
	return &QuotesController{quotes: quotes}
}

// QuoteRequest is the body of POST /api/quotes.
type QuoteRequest struct {
	Text     string `json:"text" form:"text"`
	Category string `json:"category" form:"category"`
}

// QuotesResponse lists quotes for a category.
type QuotesResponse struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Quotes   []entities.Quote `json:"quotes"`
}

// List returns the quotes matching ?category, or every quote when absent.
// GET /api/quotes
func (qc *QuotesController) List(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		_, category = qc.quotes.Categories()
	}

	list := qc.quotes.List(category)
	if list == nil {
		list = []entities.Quote{}
	}

	c.JSON(http.StatusOK, QuotesResponse{
		Category: category,
		Count:    len(list),
		Quotes:   list,
	})
}

// Add appends a quote to the collection. A quote that was added but could
// not be saved is still reported as created, flagged with HeaderNotPersisted.
// POST /api/quotes
func (qc *QuotesController) Add(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body", CodeMalformedPayload)
		return
	}

	q, err := qc.quotes.Add(entities.Quote{Text: req.Text, Category: req.Category})
	if errors.Is(err, services.ErrNotPersisted) {
		log.Printf("Quotes: added quote was not saved: %v", err)
		c.Header(HeaderNotPersisted, "true")
		respondCreated(c, q)
		return
	}
	if err != nil {
		respondQuoteError(c, err, "add quote")
		return
	}

	respondCreated(c, q)
}

// Random picks a quote from the selected category and remembers it for the session.
// GET /api/quotes/random
func (qc *QuotesController) Random(c *gin.Context) {
	q, ok := qc.quotes.ShowRandom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"quote":   nil,
			"message": "No quotes available for this category.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": q})
}

// Last returns the quote most recently shown in this session.
// GET /api/quotes/last
func (qc *QuotesController) Last(c *gin.Context) {
	q, ok := qc.quotes.LastShown(c.Request.Context())
	if !ok {
		respondNotFound(c, "last shown quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": q})
}
