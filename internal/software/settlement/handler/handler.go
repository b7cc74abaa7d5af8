package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"truck-fleet/internal/domain/user"
	"truck-fleet/internal/general/jwt"
	"truck-fleet/internal/general/logger"
	"truck-fleet/internal/ports"

	"github.com/google/uuid"
)

// SettlementHTTPHandler adapts HTTP requests to the SettlementService.
type SettlementHTTPHandler struct {
	svc    ports.SettlementService
	logger *logger.Logger
	auth   *jwt.Manager

	// back-office defaults applied when the preview query omits a rate
	defaultRatePerKM  float64
	defaultDieselRate float64
}

// NewSettlementHTTPHandler wires an HTTP handler around the SettlementService.
func NewSettlementHTTPHandler(
	svc ports.SettlementService,
	logger *logger.Logger,
	auth *jwt.Manager,
	defaultRatePerKM, defaultDieselRate float64,
) *SettlementHTTPHandler {
	return &SettlementHTTPHandler{
		svc:               svc,
		logger:            logger,
		auth:              auth,
		defaultRatePerKM:  defaultRatePerKM,
		defaultDieselRate: defaultDieselRate,
	}
}

// RegisterRoutes mounts settlement endpoints on the provided mux.
// Preview and confirm are back-office operations; drivers may only read
// their own history and balance.
func (handler *SettlementHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /settlements/preview",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin, user.RoleAccountant)(handler.handlePreview),
	)
	mux.HandleFunc("POST /settlements",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin, user.RoleAccountant)(handler.handleConfirm),
	)
	mux.HandleFunc("GET /settlements/{settlement_id}",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin, user.RoleAccountant)(handler.handleGetSettlement),
	)
	mux.HandleFunc("GET /drivers/{driver_id}/settlements",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin, user.RoleAccountant, user.RoleDriver)(handler.handleListSettlements),
	)
	mux.HandleFunc("GET /drivers/{driver_id}/balance",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin, user.RoleAccountant, user.RoleDriver)(handler.handleDriverBalance),
	)

	mux.HandleFunc("GET /settlements/health", handler.handleHealth)
	mux.HandleFunc("POST /tokens", handler.handleCreateToken)
}

// ----- general helpers -----

type TokenRequest struct {
	UserID string    `json:"user_id"`
	Role   user.Role `json:"role"`
}

// TokenResponse represents the response for token generation
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Role      user.Role `json:"role"`
}

func (handler *SettlementHTTPHandler) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "user_id is required", nil)
		return
	}
	if !req.Role.Valid() {
		handler.httpError(ctx, w, http.StatusBadRequest, "role must be one of: ADMIN, ACCOUNTANT, DRIVER", nil)
		return
	}

	tokenString, claims, err := handler.auth.IssueUserToken(req.UserID, req.Role)
	if err != nil {
		handler.httpError(ctx, w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	response := TokenResponse{
		Token:     tokenString,
		ExpiresAt: claims.ExpiresAt.Time,
		UserID:    req.UserID,
		Role:      req.Role,
	}

	handler.logger.Info(ctx, "token_generated", "JWT token generated successfully",
		map[string]any{"user_id": req.UserID, "role": req.Role.String()})

	handler.jsonResponse(ctx, w, http.StatusCreated, response)
}

func (handler *SettlementHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	handler.jsonResponse(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (handler *SettlementHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	// encode to buffer first so we can control status on failure
	var buf []byte
	var err error

	if data != nil {
		buf, err = json.Marshal(data)
		if err != nil {
			handler.logger.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
			return
		}
	} else {
		buf = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// httpError sends a JSON error response with a message.
func (handler *SettlementHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	action := "request_failed"
	switch {
	case status >= 500:
		action = "http_internal_error"
	case status == http.StatusBadRequest:
		action = "validation_failed"
	case status == http.StatusConflict:
		action = "settlement_conflict"
	case status == http.StatusNotFound:
		action = "not_found"
	}
	handler.logger.Error(ctx, action, msg, err, nil)

	type errBody struct {
		Error string `json:"error"`
	}
	handler.jsonResponse(ctx, w, status, errBody{Error: msg})
}

// withReqID extracts or generates a request ID and adds it to the context.
func (handler *SettlementHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = uuid.NewString()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}
