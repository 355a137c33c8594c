package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caseflow-hq/caseflow-api/internal/api/shared"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
)

// QueueInspector is the read-only slice of the queue manager the
// introspection endpoints need.
type QueueInspector interface {
	Queue(name string) (queue.Queue, error)
	AllStats(ctx context.Context) map[string]queue.Stats
}

// QueueHandler serves the queue introspection endpoints.
type QueueHandler struct {
	queues QueueInspector
	logger *slog.Logger
}

// NewQueueHandler creates the queue introspection handler.
func NewQueueHandler(queues QueueInspector, logger *slog.Logger) *QueueHandler {
	return &QueueHandler{
		queues: queues,
		logger: logger.With("component", "queue_handler"),
	}
}

// QueueStatsResponse is the per-queue introspection body.
type QueueStatsResponse struct {
	Queue string      `json:"queue"`
	Stats queue.Stats `json:"stats"`
	Total int         `json:"total"`
}

// ListQueues handles GET /v1/queues: a snapshot of every queue's per-state
// counts, in the fixed queue order.
func (h *QueueHandler) ListQueues(w http.ResponseWriter, r *http.Request) {
	snapshot := h.queues.AllStats(r.Context())

	out := make([]QueueStatsResponse, 0, len(snapshot))
	for _, name := range queue.Names() {
		stats := snapshot[name]
		out = append(out, QueueStatsResponse{Queue: name, Stats: stats, Total: stats.Total()})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetQueue handles GET /v1/queues/{queueName}.
func (h *QueueHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "queueName")

	q, err := h.queues.Queue(name)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	stats := q.Stats(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, QueueStatsResponse{
		Queue: q.Name(),
		Stats: stats,
		Total: stats.Total(),
	})
}
