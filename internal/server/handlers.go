package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paxth/paxth/internal/assemble"
	"github.com/paxth/paxth/internal/batch"
	"github.com/paxth/paxth/internal/export"
	"github.com/paxth/paxth/internal/schema"
)

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": schema.Categories()})
}

// Template streams an empty, header-only CSV for a category.
func (s *Server) Template(c *gin.Context) {
	category := c.Param("name")

	var buf bytes.Buffer
	if err := export.WriteTemplate(&buf, category, 2); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.TemplateFilename(category)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ProcessProduct runs single-SKU mode: one record through the pipeline, the
// assembled row (or the typed error kind) straight back to the caller.
func (s *Server) ProcessProduct(c *gin.Context) {
	var rec batch.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	row, err := s.Runner.ProcessOne(c.Request.Context(), rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"row": row})
}

type batchRequest struct {
	Records []batch.Record `json:"records"`
}

type batchItemResponse struct {
	SKU       string        `json:"sku"`
	Row       *assemble.Row `json:"row,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func batchItems(result batch.Result) []batchItemResponse {
	items := make([]batchItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = batchItemResponse{SKU: item.Record.SKU, Row: item.Row}
		if item.Err != nil {
			items[i].ErrorKind = batch.Kind(item.Err)
			items[i].Error = item.Err.Error()
		}
	}
	return items
}

// RunBatch processes records sequentially and reports per-record outcomes in
// input order.
func (s *Server) RunBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result := s.Runner.Run(c.Request.Context(), req.Records)
	c.JSON(http.StatusOK, gin.H{"run_id": result.RunID, "items": batchItems(result)})
}

// ExportBatch processes records like RunBatch but responds with the
// assembled CSV. All records must share one category, since the CSV header is
// category-shaped. Failed records are reported in a response header count;
// their rows are absent.
func (s *Server) ExportBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category := req.Records[0].Category
	for _, rec := range req.Records[1:] {
		if rec.Category != category {
			c.JSON(http.StatusBadRequest, gin.H{"error": "export requires a single category per batch"})
			return
		}
	}

	result := s.Runner.Run(c.Request.Context(), req.Records)

	var buf bytes.Buffer
	if err := export.WriteRows(&buf, category, result.Rows()); err != nil {
		respondError(c, err)
		return
	}

	failed := 0
	for _, item := range result.Items {
		if item.Err != nil {
			failed++
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(category)))
	c.Header("X-Run-ID", result.RunID)
	c.Header("X-Failed-Records", fmt.Sprintf("%d", failed))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// respondError maps a pipeline error to a status code plus its kind label.
// Input problems are the caller's to fix; provider failures are upstream.
func respondError(c *gin.Context, err error) {
	kind := batch.Kind(err)
	status := http.StatusInternalServerError
	switch kind {
	case batch.KindUnknownCategory, batch.KindInvalidURL:
		status = http.StatusBadRequest
	case batch.KindScrapeProvider, batch.KindExtractProvider, batch.KindMalformed:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error(), "error_kind": kind})
}
