package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/porcus-tools/internal/relay"
	"github.com/JaimeStill/porcus-tools/internal/tools"
	"github.com/JaimeStill/porcus-tools/pkg/handlers"
)

// MapHTTPStatus maps a tools error to the HTTP status of the failure response.
// Remote failures pass the remote status through.
func MapHTTPStatus(err error) int {
	switch tools.KindOf(err) {
	case tools.KindConfig:
		return http.StatusInternalServerError
	case tools.KindValidation:
		return http.StatusBadRequest
	case tools.KindRemote:
		if se, ok := relay.AsStatus(err); ok {
			return se.Status
		}
		return http.StatusBadGateway
	case tools.KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// malformed marks a request body that could not be decoded.
func malformed(err error) error {
	return fmt.Errorf("%w: %v", tools.ErrValidation, err)
}

// respondFailure logs err and writes its error envelope.
func respondFailure(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := MapHTTPStatus(err)

	level := slog.LevelWarn
	if status >= 500 && !errors.Is(err, relay.ErrRemoteStatus) {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "handler error", "error", err, "status", status, "kind", tools.KindOf(err))

	handlers.RespondJSON(w, status, tools.ErrorEnvelope(err))
}

// respond writes a success envelope with the remote status it recorded.
func respond(w http.ResponseWriter, env tools.Envelope) {
	status := env.Status()
	if status == 0 {
		status = http.StatusOK
	}
	handlers.RespondJSON(w, status, env)
}
