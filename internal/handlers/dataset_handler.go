package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/roadscope/api/internal/config"
	"github.com/roadscope/api/internal/dataset"
	apierrors "github.com/roadscope/api/internal/errors"
	"github.com/roadscope/api/internal/middleware"
)

// Multipart form field names for the upload endpoint.
const (
	fieldAccidents = "accidents"
	fieldVehicles  = "vehicles"
)

// DatasetHandler handles the interactive ingestion path: when the source
// files are not already on disk they can be uploaded, after which the same
// load pipeline runs.
type DatasetHandler struct {
	store *dataset.Store
	data  config.DataConfig
}

// NewDatasetHandler creates a new DatasetHandler instance.
func NewDatasetHandler(store *dataset.Store, data config.DataConfig) *DatasetHandler {
	return &DatasetHandler{
		store: store,
		data:  data,
	}
}

// UploadResponse reports the result of an upload-and-load cycle.
type UploadResponse struct {
	Status      string `json:"status"`
	UnifiedRows int    `json:"unified_rows"`
	Accidents   int    `json:"accidents"`
}

// Upload handles POST /api/v1/datasets. Both files must be supplied in one
// request; they are written to the configured source paths and a fresh load
// runs before the response is sent, so a 200 means the table is ready.
func (h *DatasetHandler) Upload(c *gin.Context) {
	log := middleware.GetLogger(c)

	accidents, err := c.FormFile(fieldAccidents)
	if err != nil {
		apierrors.BadRequest(c, "Missing accidents file", map[string]interface{}{
			"field": fieldAccidents,
		})
		return
	}
	vehicles, err := c.FormFile(fieldVehicles)
	if err != nil {
		apierrors.BadRequest(c, "Missing vehicles file", map[string]interface{}{
			"field": fieldVehicles,
		})
		return
	}

	for _, target := range []string{h.data.AccidentsPath, h.data.VehiclesPath} {
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			apierrors.InternalServerError(c, "Failed to prepare data directory", err)
			return
		}
	}

	if err := c.SaveUploadedFile(accidents, h.data.AccidentsPath); err != nil {
		apierrors.InternalServerError(c, "Failed to store accidents file", err)
		return
	}
	if err := c.SaveUploadedFile(vehicles, h.data.VehiclesPath); err != nil {
		apierrors.InternalServerError(c, "Failed to store vehicles file", err)
		return
	}

	if log != nil {
		log.Info("Source files uploaded", map[string]interface{}{
			"accidents": h.data.AccidentsPath,
			"vehicles":  h.data.VehiclesPath,
		})
	}

	// The written files changed source identity, but drop the cache
	// explicitly so a failed stat can't leave a stale table behind.
	h.store.Invalidate()

	table, err := h.store.Load(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, dataset.ErrCorruptData), errors.Is(err, dataset.ErrSchemaMismatch):
			apierrors.BadRequest(c, "Uploaded files failed to load", map[string]interface{}{
				"reason": err.Error(),
			})
		default:
			apierrors.InternalServerError(c, "Failed to load uploaded files", err)
		}
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Status:      "loaded",
		UnifiedRows: table.Len(),
		Accidents:   table.AccidentCount(),
	})
}
