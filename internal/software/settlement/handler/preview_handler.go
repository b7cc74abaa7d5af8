package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// ----- Handler: GET /settlements/preview -----

func (handler *SettlementHTTPHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.withReqID(r.Context(), r)

	q := r.URL.Query()

	driverID := strings.TrimSpace(q.Get("driverId"))
	if driverID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "driverId is required", errors.New("missing driverId"))
		return
	}

	from, err := parseDate(q.Get("from"))
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "from must be a YYYY-MM-DD date", err)
		return
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "to must be a YYYY-MM-DD date", err)
		return
	}
	if to.Before(from) {
		handler.httpError(ctx, w, http.StatusBadRequest, "to must not precede from", errors.New("inverted period"))
		return
	}

	// numeric overrides parse leniently: missing or malformed values
	// silently fall back to the configured defaults, never a 400
	in := ports.PreviewInput{
		DriverID:       driverID,
		From:           from,
		To:             to,
		IncludeSettled: parseBool(q, "includeSettled"),
		RatePerKM:      parseFloat(q, "ratePerKm", handler.defaultRatePerKM),
		DieselRate:     parseFloat(q, "dieselRate", handler.defaultDieselRate),
		ExtraExpense:   parseFloat(q, "extraExpense", 0),
		DefaultMileage: parseFloat(q, "defaultMileage", 0),
	}

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := handler.svc.Preview(ctxWithTimeout, in)
	if err != nil {
		// distinguish DB failures from validation errors
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "database error", err)
			return
		}
		if errors.Is(err, settlement.ErrDriverRequired) {
			handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, err.Error(), err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to compute preview", err)
		return
	}

	// an empty period is a successful preview with zeroed totals
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, res)
}

// parseDate parses an inclusive YYYY-MM-DD calendar date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	return time.Parse("2006-01-02", s)
}

// parseFloat reads a finite float query value, falling back on the
// default for anything absent or unparseable.
func parseFloat(q url.Values, key string, def float64) float64 {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

// parseBool treats "true" and "1" as set; anything else is false.
func parseBool(q url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(q.Get(key))) {
	case "true", "1":
		return true
	default:
		return false
	}
}
