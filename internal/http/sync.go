package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/scheduler"
)

type SyncController struct {
	runner   SyncRunner
	progress SyncProgressReader
}

func NewSyncController(runner SyncRunner, progress SyncProgressReader) *SyncController {
	return &SyncController{
		runner:   runner,
		progress: progress,
	}
}

// SyncStatusResponse combines the scheduler state with the last recorded cycle.
type SyncStatusResponse struct {
	Scheduler scheduler.Status       `json:"scheduler"`
	LastCycle *entities.SyncProgress `json:"last_cycle,omitempty"`
}

// SyncNow runs one merge cycle and waits for it.
// POST /api/sync
func (sc *SyncController) SyncNow(c *gin.Context) {
	result, err := sc.runner.RunNow(c.Request.Context())
	if err != nil {
		respondQuoteError(c, err, "sync quotes")
		return
	}

	if result.Added == nil {
		result.Added = []entities.Quote{}
	}
	c.JSON(http.StatusOK, result)
}

// GetStatus reports whether cycles are scheduled and how the last one went.
// GET /api/sync/status
func (sc *SyncController) GetStatus(c *gin.Context) {
	resp := SyncStatusResponse{Scheduler: sc.runner.Status()}

	if sc.progress != nil {
		if _, err := sc.progress.IsSyncRunning(); err != nil {
			log.Printf("Quote sync: failed to check for interrupted cycle: %v", err)
		}
		progress, err := sc.progress.GetSyncProgress()
		switch {
		case err == nil:
			resp.LastCycle = progress
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			log.Printf("Quote sync: failed to read progress: %v", err)
		}
	}

	c.JSON(http.StatusOK, resp)
}
