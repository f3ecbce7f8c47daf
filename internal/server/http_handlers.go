package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"time"

	"atsscore/internal/errors"
)

const (
	healthCheckTimeout  = 5 * time.Second
	certCriticalWindow  = 24 * time.Hour
	certWarningWindow   = 7 * 24 * time.Hour
	maxHistoryPageLimit = 100
)

// healthHandler reports service health. Only certificate problems make the
// service unhealthy; a missing or unreachable enhancer degrades it.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "atsscore",
		"version": s.Version,
	}
	statusCode := http.StatusOK

	response["storage"] = map[string]any{"enabled": s.Repository != nil}

	if s.Enhancer != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		info := s.Enhancer.ModelInfo(ctx)
		cancel()
		response["enhancer"] = info
		if info == nil || !info.Available {
			response["status"] = "degraded"
		}
	} else {
		response["enhancer"] = map[string]any{"enabled": false}
	}

	if certStatus := s.checkCertificateHealth(); certStatus != nil {
		response["certificates"] = certStatus
		if healthy, _ := certStatus["healthy"].(bool); !healthy {
			response["status"] = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, statusCode, response)
}

// checkCertificateHealth describes how close the served certificate is to expiry
func (s *Server) checkCertificateHealth() map[string]any {
	if s.CertificateManager == nil {
		return nil
	}

	certStatus := make(map[string]any)
	timeToExpiry, err := s.CertificateManager.CheckExpiry()
	if err != nil {
		certStatus["healthy"] = false
		certStatus["error"] = fmt.Sprintf("Failed to check certificate expiry: %v", err)
		return certStatus
	}

	certStatus["time_to_expiry_hours"] = int(timeToExpiry.Hours())

	switch {
	case timeToExpiry <= 0:
		certStatus["healthy"] = false
		certStatus["status"] = "expired"
	case timeToExpiry <= certCriticalWindow:
		certStatus["healthy"] = false
		certStatus["status"] = "critical"
	case timeToExpiry <= certWarningWindow:
		certStatus["healthy"] = true
		certStatus["status"] = "warning"
	default:
		certStatus["healthy"] = true
		certStatus["status"] = "ok"
	}

	certStatus["auto_reload"] = s.CertificateManager.Status()
	return certStatus
}

// statsHandler provides server statistics
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "atsscore",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"auth_enabled":           len(s.APIKeys) > 0,
		},
	}

	if s.RateLimiter != nil {
		stats := s.RateLimiter.Stats()
		stats["enabled"] = true
		stats["by_ip"] = s.RateLimit.ByIP
		stats["by_api_key"] = s.RateLimit.ByAPIKey
		response["rate_limiting"] = stats
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	if s.Enhancer != nil {
		response["circuit_breakers"] = s.Enhancer.Stats()
	}

	writeJSON(w, http.StatusOK, response)
}

// parseJSONRequest decodes a JSON body into v
func parseJSONRequest(r *http.Request, v any) error {
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "content-type must be application/json", nil)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return errors.NewValidationError(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit), err)
		}
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read request body", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat, "request body is not valid JSON", err)
	}
	return nil
}

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Error: error, Message: message})
}

// writeAppError maps err to a status code and writes it. Non-AppErrors are 500s.
func (s *Server) writeAppError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		s.Logger.LogError(err, "Unhandled request error")
		writeErrorResponse(w, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	statusCode := statusFor(appErr)
	if statusCode >= http.StatusInternalServerError {
		s.Logger.LogError(appErr, "Request failed")
	}
	writeJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

func statusFor(err *errors.AppError) int {
	switch err.Code {
	case errors.ErrCodeAIDisabled, errors.ErrCodeStoreDisabled:
		return http.StatusServiceUnavailable
	case errors.ErrCodeAITimeout:
		return http.StatusGatewayTimeout
	}

	switch err.Type {
	case errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeAI, errors.ErrorTypeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
