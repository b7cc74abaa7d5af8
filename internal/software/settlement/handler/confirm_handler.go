package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"truck-fleet/internal/domain/driver"
	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/domain/trip"
	"truck-fleet/internal/ports"
	"truck-fleet/internal/software/settlement/service"

	"github.com/jackc/pgx/v5/pgconn"
)

// --- Request DTO (HTTP boundary) ---

// confirmRequest mirrors the preview response the back office sends
// back: the selected journeys (only their ids matter here), the
// previewed totals, and the covered period. Decoding is tolerant: the
// client may resubmit full journey objects, extra fields are ignored.
type confirmRequest struct {
	Data struct {
		Journeys []struct {
			ID string `json:"id"`
		} `json:"journeys"`
		Totals settlement.Totals `json:"totals"`
	} `json:"data"`
	Period struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"period"`
	Driver string `json:"driver"`
}

// ----- Handler: POST /settlements -----

func (handler *SettlementHTTPHandler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.withReqID(r.Context(), r)

	// check the content type
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		handler.httpError(ctx, w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return
	}

	// limit body size
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB
	defer r.Body.Close()

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			handler.httpError(ctx, w, http.StatusRequestEntityTooLarge, "request body too large", err)
			return
		}
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	if strings.TrimSpace(req.Driver) == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "driver is required", errors.New("missing driver"))
		return
	}

	from, err := parseDate(req.Period.From)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "period.from must be a YYYY-MM-DD date", err)
		return
	}
	to, err := parseDate(req.Period.To)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "period.to must be a YYYY-MM-DD date", err)
		return
	}

	tripIDs := make([]string, 0, len(req.Data.Journeys))
	for _, j := range req.Data.Journeys {
		id := strings.TrimSpace(j.ID)
		if id == "" {
			handler.httpError(ctx, w, http.StatusBadRequest, "every journey must carry its id", errors.New("journey without id"))
			return
		}
		tripIDs = append(tripIDs, id)
	}
	if len(tripIDs) == 0 {
		handler.httpError(ctx, w, http.StatusBadRequest, "at least one journey is required", errors.New("empty journeys"))
		return
	}

	in := ports.ConfirmInput{
		DriverID: strings.TrimSpace(req.Driver),
		From:     from,
		To:       to,
		TripIDs:  tripIDs,
		Totals:   req.Data.Totals,
	}

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := handler.svc.Confirm(ctxWithTimeout, in)
	if err != nil {
		handler.confirmError(ctxWithTimeout, w, err)
		return
	}
	ctxWithTimeout = handler.logger.WithSettlementID(ctxWithTimeout, res.ID)

	handler.jsonResponse(ctxWithTimeout, w, http.StatusCreated, res)
}

// confirmError maps commit failures onto the HTTP error taxonomy:
// conflicts on already-settled trips, 404 on an unknown driver,
// 400 on rejected input, 500 on storage failures.
func (handler *SettlementHTTPHandler) confirmError(ctx context.Context, w http.ResponseWriter, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, trip.ErrAlreadySettled):
		handler.httpError(ctx, w, http.StatusConflict, err.Error(), err)
	case errors.Is(err, driver.ErrNotFound):
		handler.httpError(ctx, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrTripMissing),
		errors.Is(err, service.ErrTripDriverMismatch),
		errors.Is(err, settlement.ErrDriverRequired),
		errors.Is(err, settlement.ErrNoTrips),
		errors.Is(err, settlement.ErrPeriodInvalid):
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.As(err, &pgErr):
		handler.httpError(ctx, w, http.StatusInternalServerError, "database error", err)
	default:
		handler.httpError(ctx, w, http.StatusInternalServerError, "failed to commit settlement", err)
	}
}
