package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"truck-fleet/internal/domain/driver"
	"truck-fleet/internal/domain/settlement"
	"truck-fleet/internal/general/jwt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ----- Handler: GET /settlements/{settlement_id} -----

func (handler *SettlementHTTPHandler) handleGetSettlement(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	settlementID := strings.TrimSpace(r.PathValue("settlement_id"))
	if settlementID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "settlement_id is required", errors.New("missing settlement_id"))
		return
	}
	ctx = handler.logger.WithSettlementID(ctx, settlementID)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := handler.svc.GetSettlement(ctxWithTimeout, settlementID)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, settlement.ErrNotFound):
			handler.httpError(ctxWithTimeout, w, http.StatusNotFound, "settlement not found", err)
		case errors.As(err, &pgErr):
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "database error", err)
		default:
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to fetch settlement", err)
		}
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, res)
}

// ----- Handler: GET /drivers/{driver_id}/settlements -----

func (handler *SettlementHTTPHandler) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	driverID := strings.TrimSpace(r.PathValue("driver_id"))
	if driverID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "driver_id is required", errors.New("missing driver_id"))
		return
	}
	if !handler.authorizeDriverScope(ctx, w, r, driverID) {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := handler.svc.ListSettlements(ctxWithTimeout, driverID, limit)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "database error", err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, map[string]any{"settlements": res})
}

// ----- Handler: GET /drivers/{driver_id}/balance -----

func (handler *SettlementHTTPHandler) handleDriverBalance(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	driverID := strings.TrimSpace(r.PathValue("driver_id"))
	if driverID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "driver_id is required", errors.New("missing driver_id"))
		return
	}
	if !handler.authorizeDriverScope(ctx, w, r, driverID) {
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := handler.svc.GetDriverBalance(ctxWithTimeout, driverID)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, driver.ErrNotFound):
			handler.httpError(ctxWithTimeout, w, http.StatusNotFound, "driver not found", err)
		case errors.As(err, &pgErr):
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "database error", err)
		default:
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to fetch balance", err)
		}
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, res)
}

// authorizeDriverScope keeps drivers inside their own records: a DRIVER
// token may only read the driver_id matching its subject, while ADMIN
// and ACCOUNTANT see everything.
func (handler *SettlementHTTPHandler) authorizeDriverScope(ctx context.Context, w http.ResponseWriter, r *http.Request, driverID string) bool {
	claims := jwt.RequireClaims(r)
	if claims == nil {
		handler.httpError(ctx, w, http.StatusUnauthorized, "missing auth claims", errors.New("no claims"))
		return false
	}
	if claims.Role.IsDriver() && strings.TrimSpace(claims.Subject) != driverID {
		handler.httpError(ctx, w, http.StatusForbidden, "driver_id does not match token subject", errors.New("driver/token mismatch"))
		return false
	}
	return true
}
