package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/sofregit/backend/internal/store"
)

// FileHandler serves objects kept by the in-memory object store.
type FileHandler struct {
	files *store.MemoryObjectStore
}

func NewFileHandler(files *store.MemoryObjectStore) *FileHandler {
	return &FileHandler{files: files}
}

func (h *FileHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/files/*key", h.GetFile)
}

func (h *FileHandler) GetFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	data, contentType, err := h.files.Get(key)
	if errors.Is(err, store.ErrObjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
