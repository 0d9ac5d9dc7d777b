// internal/service/report_service.go
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/floritflats/opsboard/internal/amenity"
	"github.com/floritflats/opsboard/internal/cache"
	"github.com/floritflats/opsboard/internal/cleaning"
	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/ingest"
	"github.com/floritflats/opsboard/internal/masters"
	"github.com/floritflats/opsboard/internal/occupancy"
	"github.com/floritflats/opsboard/internal/replenish"
	"github.com/floritflats/opsboard/internal/report"
	"github.com/floritflats/opsboard/internal/storage"
	"github.com/floritflats/opsboard/internal/tabular"
	"github.com/floritflats/opsboard/pkg/logger"
)

// ReportInput carries the two raw exports plus the run parameters.
type ReportInput struct {
	AvantioName string
	Avantio     []byte
	StockName   string
	Stock       []byte
	Start       time.Time
	Days        int
	Objective   replenish.Objective
	UrgentOnly  bool
}

// ReportService runs the full pipeline: parse both exports, classify
// stock, reconcile against thresholds, project occupancy, assemble the
// operativa and render the workbook.
type ReportService struct {
	masters *masters.Masters
	cache   cache.ReportCache
	store   storage.WorkbookStore
	loc     *time.Location
}

func NewReportService(m *masters.Masters, c cache.ReportCache, s storage.WorkbookStore, loc *time.Location) *ReportService {
	if c == nil {
		c = cache.NewNoopReportCache()
	}
	if s == nil {
		s = storage.NewNoopWorkbookStore()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{masters: m, cache: c, store: s, loc: loc}
}

func (s *ReportService) Generate(ctx context.Context, in ReportInput) (*domain.Report, []byte, error) {
	if in.Days <= 0 {
		in.Days = 3
	}
	if in.Objective == "" {
		in.Objective = replenish.ObjectiveMax
	}
	start := truncateDay(in.Start)
	if start.IsZero() {
		// "today" in the operation's timezone, not the host's
		start = truncateDay(time.Now().In(s.loc))
	}
	end := start.AddDate(0, 0, in.Days-1)

	var (
		reservations []domain.Reservation
		stockLines   []amenity.StockLine
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = ingest.ParseReservations(in.AvantioName, in.Avantio)
		return err
	})
	g.Go(func() error {
		var err error
		stockLines, err = ingest.ParseStock(in.StockName, in.Stock)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	logger.Log.Info().
		Int("reservations", len(reservations)).
		Int("stock_lines", len(stockLines)).
		Time("start", start).
		Int("days", in.Days).
		Msg("parsed source exports")

	obs, unclassified := amenity.ClassifyStock(stockLines)

	// The apartment lists honor the urgent-only toggle; the warehouse
	// sheet always carries the full grid so nothing is hidden from audit.
	listGrid := replenish.Reconcile(obs, s.masters.Thresholds, in.Objective, in.UrgentOnly)
	fullGrid := listGrid
	if in.UrgentOnly {
		fullGrid = replenish.Reconcile(obs, s.masters.Thresholds, in.Objective, false)
	}

	states := occupancy.Project(reservations, s.masters.Apartments, start, in.Days)
	lists := replenish.BuildLists(s.masters.Apartments, listGrid)
	operativa := report.BuildOperativa(states, lists, s.masters.Apartments)
	cartItems, cartTotals := report.BuildCart(operativa)

	r := &domain.Report{
		Start:        start,
		End:          end,
		Operativa:    operativa,
		Grid:         fullGrid,
		Unclassified: unclassified,
		CartItems:    cartItems,
		CartTotals:   cartTotals,
		KPIs:         report.ComputeKPIs(operativa, start),
		WorkbookName: report.WorkbookName(start, end),
	}

	workbook, err := report.WriteWorkbook(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	if err := s.store.UploadWorkbook(ctx, r.WorkbookName, workbook); err != nil {
		logger.Log.Warn().Err(err).Str("name", r.WorkbookName).Msg("failed to archive workbook")
	} else if url, err := s.store.PresignedURL(ctx, r.WorkbookName, workbookURLExpiry); err != nil {
		logger.Log.Warn().Err(err).Str("name", r.WorkbookName).Msg("failed to presign workbook url")
	} else {
		r.WorkbookURL = url
	}
	if err := s.cache.SetLatest(ctx, r); err != nil {
		logger.Log.Warn().Err(err).Msg("failed to cache report")
	}

	return r, workbook, nil
}

// workbookURLExpiry bounds how long an archived workbook link stays valid.
const workbookURLExpiry = 24 * time.Hour

// Latest returns the most recently generated report, if one is cached.
func (s *ReportService) Latest(ctx context.Context) (*domain.Report, bool, error) {
	return s.cache.GetLatest(ctx)
}

// InvalidateLatest evicts the cached report so the next fetch misses.
func (s *ReportService) InvalidateLatest(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

// CleaningView parses a cleaning-form export and reduces it to the last
// submission per apartment.
func (s *ReportService) CleaningView(filename string, data []byte) ([]domain.LastCleaningReport, error) {
	t, err := readAnyTable(filename, data)
	if err != nil {
		return nil, err
	}
	return cleaning.LastReportView(t)
}

func readAnyTable(filename string, data []byte) (tabular.Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return tabular.ReadCSV(data)
	}
	return tabular.ReadXLSX(data)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
