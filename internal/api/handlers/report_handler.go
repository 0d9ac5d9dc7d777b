// internal/api/handlers/report_handler.go
package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/floritflats/opsboard/internal/ingest"
	"github.com/floritflats/opsboard/internal/replenish"
	"github.com/floritflats/opsboard/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reports          *service.ReportService
	defaultDays      int
	defaultObjective replenish.Objective
}

func NewReportHandler(reports *service.ReportService, defaultDays int, defaultObjective string) *ReportHandler {
	if defaultDays <= 0 {
		defaultDays = 3
	}
	objective, err := parseObjective(defaultObjective)
	if err != nil {
		log.Warn().Str("objective", defaultObjective).Msg("unknown default objective, using max")
		objective = replenish.ObjectiveMax
	}
	return &ReportHandler{reports: reports, defaultDays: defaultDays, defaultObjective: objective}
}

func parseObjective(raw string) (replenish.Objective, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "max":
		return replenish.ObjectiveMax, nil
	case "min":
		return replenish.ObjectiveMin, nil
	default:
		return "", errors.New("expected max or min")
	}
}

// GenerateReport accepts the two raw exports as multipart files and runs
// the pipeline. format=xlsx streams the workbook; the default returns the
// report as JSON.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	avantioName, avantio, err := readFormFile(c, "avantio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or unreadable 'avantio' file"})
		return
	}
	stockName, stock, err := readFormFile(c, "stock")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or unreadable 'stock' file"})
		return
	}

	start, err := parseStartParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'start', expected YYYY-MM-DD"})
		return
	}
	days := h.defaultDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > 31 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'days', expected 1-31"})
			return
		}
		days = v
	}
	objective := h.defaultObjective
	if raw := strings.TrimSpace(c.Query("objective")); raw != "" {
		objective, err = parseObjective(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'objective', expected max or min"})
			return
		}
	}
	urgentOnly := false
	if raw := strings.TrimSpace(c.Query("urgent_only")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'urgent_only', expected a boolean"})
			return
		}
		urgentOnly = v
	}

	report, workbook, err := h.reports.Generate(c.Request.Context(), service.ReportInput{
		AvantioName: avantioName,
		Avantio:     avantio,
		StockName:   stockName,
		Stock:       stock,
		Start:       start,
		Days:        days,
		Objective:   objective,
		UrgentOnly:  urgentOnly,
	})
	if err != nil {
		respondIngestError(c, err)
		return
	}

	if strings.EqualFold(c.Query("format"), "xlsx") {
		c.Header("Content-Disposition", `attachment; filename="`+report.WorkbookName+`"`)
		c.Data(http.StatusOK, xlsxContentType, workbook)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetLatestReport serves the most recent cached run.
func (h *ReportHandler) GetLatestReport(c *gin.Context) {
	report, found, err := h.reports.Latest(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read cached report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read cached report"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report generated yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// InvalidateLatestReport evicts the cached run so /latest misses until
// the next generation.
func (h *ReportHandler) InvalidateLatestReport(c *gin.Context) {
	if err := h.reports.InvalidateLatest(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("failed to invalidate cached report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate cached report"})
		return
	}
	c.Status(http.StatusNoContent)
}

// LastCleaningView reduces an uploaded cleaning-form export to the last
// submission per apartment.
func (h *ReportHandler) LastCleaningView(c *gin.Context) {
	name, data, err := readFormFile(c, "report")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or unreadable 'report' file"})
		return
	}

	view, err := h.reports.CleaningView(name, data)
	if err != nil {
		respondIngestError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func respondIngestError(c *gin.Context, err error) {
	var missing *ingest.MissingColumnsError
	if errors.As(err, &missing) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": missing.Error()})
		return
	}
	var empty *ingest.EmptyInputError
	if errors.As(err, &empty) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": empty.Error()})
		return
	}
	log.Error().Err(err).Msg("report generation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
}

func readFormFile(c *gin.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

func parseStartParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}
