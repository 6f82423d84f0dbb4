package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/importers"
	"github.com/mrlokans/quotebook/internal/utils"
)

// TransferController handles JSON import and file export.
type TransferController struct {
	quotes QuoteService
}

func NewTransferController(quotes QuoteService) *TransferController {
	return &TransferController{quotes: quotes}
}

// Export streams the whole collection as a download.
// GET /api/export?format=json|markdown
func (tc *TransferController) Export(c *gin.Context) {
	var buf bytes.Buffer
	exporter, result, err := tc.quotes.Export(&buf, c.Query("format"))
	if err != nil {
		if exporter == nil {
			respondBadRequest(c, err.Error(), "unsupported_format")
			return
		}
		respondInternalError(c, err, "export quotes")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.FileName()))
	c.Header("X-Quotes-Exported", strconv.Itoa(result.QuotesProcessed))
	c.Data(http.StatusOK, exporter.ContentType(), buf.Bytes())
}

// ImportResponse reports how an import changed the collection.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
	Message  string `json:"message"`
}

// Import merges a JSON array of quotes into the collection. The payload is
// either a multipart "file" field or the raw request body.
// POST /api/import
func (tc *TransferController) Import(c *gin.Context) {
	payload, source, err := readImportPayload(c)
	if err != nil {
		respondBadRequest(c, err.Error(), CodeMalformedPayload)
		return
	}

	result, err := tc.quotes.Import(payload, source)
	if err != nil {
		respondQuoteError(c, err, "import quotes")
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Imported: result.Imported,
		Total:    result.Total,
		Message:  "Quotes imported successfully!",
	})
}

func readImportPayload(c *gin.Context) ([]byte, string, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > importers.MaxPayloadSize {
			return nil, "", fmt.Errorf("file too large: %d bytes (max %d)", fileHeader.Size, importers.MaxPayloadSize)
		}
		f, err := fileHeader.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, importers.MaxPayloadSize+1))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return data, "upload:" + utils.SanitizeFilename(fileHeader.Filename, "file"), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, importers.MaxPayloadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) > importers.MaxPayloadSize {
		return nil, "", fmt.Errorf("payload too large (max %d bytes)", importers.MaxPayloadSize)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty payload")
	}
	return data, "api", nil
}
