package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/chronos-api/internal/calendar"
	"github.com/zapponejosh/chronos-api/internal/chronos"
	"github.com/zapponejosh/chronos-api/internal/config"
	"github.com/zapponejosh/chronos-api/internal/logger"
	"github.com/zapponejosh/chronos-api/internal/numerology"
	"github.com/zapponejosh/chronos-api/internal/shio"
	"github.com/zapponejosh/chronos-api/internal/weton"
)

// DefaultClock is used when a chronos request omits the time.
const DefaultClock = "12:00"

// MaxRangeDays limits weton range requests.
const MaxRangeDays = 90

// maxBodyBytes caps POST bodies; a birth moment is two short strings.
const maxBodyBytes = 1 << 10

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	engine *chronos.Engine
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine *chronos.Engine, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	observer := h.engine.Observer()
	WriteSuccess(w, map[string]any{
		"status": "healthy",
		"env":    h.cfg.Env,
		"observer": map[string]float64{
			"latitude":  observer.Latitude,
			"longitude": observer.Longitude,
		},
	})
}

// ChronosRequest is the POST /api/v1/chronos body.
type ChronosRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// GetChronos handles GET /api/v1/chronos?date=YYYY-MM-DD&time=HH:MM
func (h *Handlers) GetChronos(w http.ResponseWriter, r *http.Request) {
	h.computeBundle(w, r, ChronosRequest{
		Date: r.URL.Query().Get("date"),
		Time: r.URL.Query().Get("time"),
	})
}

// PostChronos handles POST /api/v1/chronos
func (h *Handlers) PostChronos(w http.ResponseWriter, r *http.Request) {
	var req ChronosRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large", "BODY_TOO_LARGE")
			return
		}
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	h.computeBundle(w, r, req)
}

func (h *Handlers) computeBundle(w http.ResponseWriter, r *http.Request, req ChronosRequest) {
	if req.Date == "" {
		WriteBadRequest(w, "Date parameter is required")
		return
	}
	if req.Time == "" {
		req.Time = DefaultClock
	}

	moment, err := chronos.ParseBirthMoment(req.Date, req.Time)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date or time: %s %s. Use YYYY-MM-DD and HH:MM", req.Date, req.Time))
		return
	}

	ctx := r.Context()
	bundle := h.engine.Compute(ctx, moment)

	log := logger.FromContext(ctx, h.logger)
	log.Debug("computed bundle",
		slog.String("date", moment.Date.String()),
		slog.String("time", moment.Clock.String()),
		slog.Int("failures", len(bundle.Failures())),
	)

	WriteSuccess(w, bundle)
}

// WetonDay is one day of a weton response.
type WetonDay struct {
	Date  string `json:"date"`
	Day   string `json:"day,omitempty"`
	JDN   int    `json:"jdn,omitempty"`
	Weton any    `json:"weton"`
}

func wetonDay(res weton.Result) WetonDay {
	d := WetonDay{
		Date:  res.Date.String(),
		Weton: chronos.WetonDocument(res),
	}
	if !res.Failed() {
		d.Day = calendar.DayName(res.Date)
		d.JDN = res.JDN
	}
	return d
}

// GetWetonDate handles GET /api/v1/weton/date/{date}
func (h *Handlers) GetWetonDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	if dateStr == "" {
		WriteBadRequest(w, "Date parameter is required")
		return
	}

	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	WriteSuccess(w, wetonDay(weton.Compute(date)))
}

// GetWetonRange handles GET /api/v1/weton/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetWetonRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := calendar.ParseDate(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	endDate, err := calendar.ParseDate(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	days := startDate.DaysUntil(endDate)
	if days < 0 {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	// Limit range to 90 days to prevent abuse
	if days > MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", MaxRangeDays))
		return
	}

	results, err := weton.Range(startDate, endDate)
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Error("failed to compute weton range",
			slog.String("start", startStr),
			slog.String("end", endStr),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to compute weton range")
		return
	}

	out := make([]WetonDay, 0, len(results))
	for _, res := range results {
		out = append(out, wetonDay(res))
	}

	WriteSuccess(w, map[string]any{
		"start": startStr,
		"end":   endStr,
		"days":  out,
	})
}

// ShioResponse is the GET /api/v1/shio/{year} payload.
type ShioResponse struct {
	Year    int    `json:"year"`
	Element string `json:"element"`
	Animal  string `json:"animal"`
	Shio    string `json:"shio"`
}

// GetShio handles GET /api/v1/shio/{year}
func (h *Handlers) GetShio(w http.ResponseWriter, r *http.Request) {
	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", yearStr))
		return
	}

	s := shio.For(year)
	WriteSuccess(w, ShioResponse{
		Year:    year,
		Element: s.Element.String(),
		Animal:  s.Animal.String(),
		Shio:    s.String(),
	})
}

// NumerologyResponse is the GET /api/v1/numerology/date/{date} payload.
type NumerologyResponse struct {
	Date string `json:"date"`
	chronos.Numerology
	Master bool `json:"master"`
}

// GetNumerology handles GET /api/v1/numerology/date/{date}
func (h *Handlers) GetNumerology(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	lifePath := numerology.LifePath(date)
	WriteSuccess(w, NumerologyResponse{
		Date: date.String(),
		Numerology: chronos.Numerology{
			LifePath:  lifePath,
			DayNumber: numerology.DayNumber(date),
		},
		Master: numerology.IsMaster(lifePath),
	})
}

// isBodyTooLarge reports whether err came from http.MaxBytesReader.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
