package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hm-tools/stay-atlas/pkg/models/api"
	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	reportsvc "github.com/hm-tools/stay-atlas/pkg/services/report"
	"github.com/rs/zerolog"
)

const dateLayout = "02-01-2006"

type Handler struct {
	generator reportsvc.Generator
}

func NewHandler(g reportsvc.Generator) *Handler {
	return &Handler{generator: g}
}

// GetReport serves the analytics report as JSON. The from/to query
// params (DD-MM-YYYY) bound the window as [from, to); omitting both
// means all time.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	window, err := windowFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rep, err := h.generator.GenerateReport(ctx, window)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate report")
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toAPIReport(rep)); err != nil {
		logger.Error().Err(err).Msg("failed to encode report")
	}
}

// GetReportExport serves the same report as an xlsx workbook.
func (h *Handler) GetReportExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	window, err := windowFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rep, err := h.generator.GenerateReport(ctx, window)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate report for export")
		writeError(w, statusFor(err), err)
		return
	}

	f, err := buildWorkbook(rep)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build workbook")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="stay-atlas-report.xlsx"`)
	if err := f.Write(w); err != nil {
		logger.Error().Err(err).Msg("failed to write workbook")
	}
}

func windowFromRequest(r *http.Request) (domain.Window, error) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" && to == "" {
		return domain.AllTimeWindow(), nil
	}
	if from == "" || to == "" {
		return domain.Window{}, fmt.Errorf("from and to must be provided together")
	}

	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return domain.Window{}, fmt.Errorf("invalid from date %q, expected DD-MM-YYYY", from)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return domain.Window{}, fmt.Errorf("invalid to date %q, expected DD-MM-YYYY", to)
	}
	return domain.NewWindow(start, end), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reportsvc.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, reportsvc.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}

// toAPIReport maps the domain report to its wire shape. List fields are
// never null in JSON, so clients can range over them without nil checks.
func toAPIReport(rep *domain.Report) api.Report {
	out := api.Report{
		TotalRevenue:     rep.TotalRevenue,
		ReservationCount: rep.ReservationCount,
		OccupancyRate:    rep.OccupancyRate,
		AverageRating:    rep.AverageRating,
		RevenueTrend:     make([]api.RevenuePoint, 0, len(rep.RevenueTrend)),
		TopRooms:         make([]api.RoomRank, 0, len(rep.TopRooms)),
		TopServices:      make([]api.ServiceRank, 0, len(rep.TopServices)),
		GuestStatuses:    make([]api.StatusCount, 0, len(rep.GuestStatuses)),
	}
	if rep.Window.AllTime {
		out.Window = api.Window{AllTime: true}
	} else {
		start, end := rep.Window.Start, rep.Window.End
		out.Window = api.Window{Start: &start, End: &end}
	}
	for _, p := range rep.RevenueTrend {
		out.RevenueTrend = append(out.RevenueTrend, api.RevenuePoint{Label: p.Label, Revenue: p.Revenue})
	}
	for _, r := range rep.TopRooms {
		out.TopRooms = append(out.TopRooms, api.RoomRank{
			RoomID: r.RoomID, Name: r.Name, Bookings: r.Bookings, Revenue: r.Revenue,
		})
	}
	for _, s := range rep.TopServices {
		out.TopServices = append(out.TopServices, api.ServiceRank{
			ServiceID: s.ServiceID, Name: s.Name, Bookings: s.Bookings, Revenue: s.Revenue,
		})
	}
	for _, s := range rep.GuestStatuses {
		out.GuestStatuses = append(out.GuestStatuses, api.StatusCount{Status: s.Status, Guests: s.Guests})
	}
	return out
}
