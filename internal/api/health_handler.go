package api

import (
	"net/http"

	"github.com/caseflow-hq/caseflow-api/internal/api/shared"
)

// BrokerState reports whether the process runs with live queues or with the
// degradation shim.
type BrokerState interface {
	Live() bool
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	broker BrokerState
}

// NewHealthHandler creates the liveness handler.
func NewHealthHandler(broker BrokerState) *HealthHandler {
	return &HealthHandler{broker: broker}
}

// HealthResponse is the liveness body. The process is healthy even in
// degraded mode; broker state is advisory.
type HealthResponse struct {
	Status string `json:"status"`
	Broker string `json:"broker"`
}

// Healthz handles GET /healthz.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	brokerState := "available"
	if !h.broker.Live() {
		brokerState = "unavailable"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		Broker: brokerState,
	})
}
