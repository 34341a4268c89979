package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/samurai100996/property-preview/models"
	"github.com/samurai100996/property-preview/storage"
)

type UploadController struct {
	store    storage.BlobStore
	registry *storage.ProgressRegistry

	mu        sync.Mutex
	pipelines map[string]*storage.Pipeline
}

func NewUploadController(store storage.BlobStore) *UploadController {
	return &UploadController{
		store:     store,
		registry:  storage.NewProgressRegistry(),
		pipelines: make(map[string]*storage.Pipeline),
	}
}

// BatchBusy reports whether the batch still has uploads in flight. The
// property create handler blocks a save while this is true.
func (uc *UploadController) BatchBusy(batchID string) bool {
	uc.mu.Lock()
	pipeline, ok := uc.pipelines[batchID]
	uc.mu.Unlock()
	return ok && pipeline.Busy()
}

func (uc *UploadController) pipelineFor(batchID string) *storage.Pipeline {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	pipeline, ok := uc.pipelines[batchID]
	if !ok {
		pipeline = storage.NewPipeline(uc.store)
		uc.pipelines[batchID] = pipeline
	}
	return pipeline
}

// UploadBatch accepts a multipart batch under the "files" field. A batch
// id may be passed to append to an earlier batch; otherwise one is
// assigned. Oversized and failed files are reported per name without
// blocking their siblings.
func (uc *UploadController) UploadBatch(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Multipart form with files is required"})
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "At least one file is required"})
	}

	batchID := c.QueryParam("batch")
	if batchID == "" {
		batchID = uuid.NewString()
	}

	files := make([]storage.UploadFile, 0, len(headers))
	for _, h := range headers {
		files = append(files, uploadFileFromHeader(h))
	}

	pipeline := uc.pipelineFor(batchID)
	uc.registry.Start(batchID)

	result := pipeline.UploadBatch(c.Request().Context(), files, func(name string, pct int) {
		uc.registry.Update(batchID, name, pct)
	})
	for name, msg := range result.Errors {
		uc.registry.Fail(batchID, name, msg)
	}
	uc.registry.Settle(batchID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"batch":  batchID,
		"files":  result.Files,
		"errors": result.Errors,
	})
}

func (uc *UploadController) Progress(c echo.Context) error {
	snapshot, ok := uc.registry.Snapshot(c.Param("batch"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown batch"})
	}
	return c.JSON(http.StatusOK, snapshot)
}

// ListFiles returns the batch's accumulated descriptors, the authoring
// form's source of truth for the record's files list.
func (uc *UploadController) ListFiles(c echo.Context) error {
	uc.mu.Lock()
	pipeline, ok := uc.pipelines[c.Param("batch")]
	uc.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown batch"})
	}
	files := pipeline.Uploaded()
	if files == nil {
		files = []models.FileDescriptor{}
	}
	return c.JSON(http.StatusOK, files)
}

// RemoveFile drops one descriptor by index. The stored blob stays; only
// the local list is edited.
func (uc *UploadController) RemoveFile(c echo.Context) error {
	uc.mu.Lock()
	pipeline, ok := uc.pipelines[c.Param("batch")]
	uc.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown batch"})
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid index"})
	}
	if err := pipeline.RemoveAt(index); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pipeline.Uploaded())
}

func uploadFileFromHeader(h *multipart.FileHeader) storage.UploadFile {
	return storage.UploadFile{
		Name: h.Filename,
		Type: h.Header.Get("Content-Type"),
		Size: h.Size,
		Open: func() (io.ReadCloser, error) { return h.Open() },
	}
}
