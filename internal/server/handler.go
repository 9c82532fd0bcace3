package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docingest/internal/domain"
	"docingest/internal/usecase"
)

type uploadResponse struct {
	Success   bool   `json:"success"`
	FileName  string `json:"fileName"`
	Chunks    int    `json:"chunks"`
	Namespace string `json:"namespace"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file field in multipart form"})
		return
	}

	if fileHeader.Size > s.pipeline.MaxBytes() {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("file exceeds maximum size of %d bytes", s.pipeline.MaxBytes()),
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("failed to open upload: %v", err)})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("failed to read upload: %v", err)})
		return
	}

	result, err := s.pipeline.Ingest(c.Request.Context(), domain.UploadedFile{
		Name:      fileHeader.Filename,
		Data:      data,
		Namespace: c.PostForm("namespace"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrValidation) {
			status = http.StatusBadRequest
		} else {
			s.logger.Error("ingest failed", "file", fileHeader.Filename, "err", err)
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Success:   true,
		FileName:  result.FileName,
		Chunks:    result.Chunks,
		Namespace: result.Namespace,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
