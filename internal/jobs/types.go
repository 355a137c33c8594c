package jobs

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// Job type names: the dispatch keys jobs are routed by. One family per
// queue.
const (
	TypeRecomputeStats   = "stats:recompute"
	TypeSendNotification = "notification:send"
	TypeHousekeeping     = "housekeeping:run"
	TypeProcessUpload    = "upload:process"
)

// Permanent-failure sentinels. Errors wrapping asynq.SkipRetry are never
// retried: the job is immediately and terminally Failed, with the payload
// context in the log.
var (
	ErrMalformedPayload = errors.New("malformed job payload")
	ErrUnknownSubtype   = errors.New("unknown housekeeping type")
)

// unmarshalPayload decodes a task payload, converting decode failures into
// permanent failures — a payload that does not parse now will not parse on
// a retry either.
func unmarshalPayload(t *asynq.Task, v any) error {
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		return fmt.Errorf("%w for %s: %v: %w", ErrMalformedPayload, t.Type(), err, asynq.SkipRetry)
	}
	return nil
}

// permanent wraps err so the worker archives the job without retrying.
func permanent(err error) error {
	return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
}

// RecomputeStatsPayload asks for one tenant's aggregate views to be
// recomputed and recached. An empty View means every view.
type RecomputeStatsPayload struct {
	TenantID string           `json:"tenant_id"`
	View     domain.StatsView `json:"view,omitempty"`
}

// SendNotificationPayload carries one rendered-template dispatch. Either
// Recipient (single) or Recipients (batch) is set.
type SendNotificationPayload struct {
	TenantID   string                      `json:"tenant_id"`
	Template   domain.NotificationTemplate `json:"template"`
	Recipient  string                      `json:"recipient,omitempty"`
	Recipients []string                    `json:"recipients,omitempty"`
	Data       map[string]any              `json:"data,omitempty"`
}

// HousekeepingType discriminates the independent cleanup passes.
type HousekeepingType string

const (
	HousekeepSessions HousekeepingType = "sessions"
	HousekeepTokens   HousekeepingType = "tokens"
	HousekeepCache    HousekeepingType = "cache"
	HousekeepLogs     HousekeepingType = "logs"
	HousekeepHistory  HousekeepingType = "history"
	HousekeepAll      HousekeepingType = "all"
)

// HousekeepingPayload selects which cleanup pass to run.
type HousekeepingPayload struct {
	Type HousekeepingType `json:"type"`
}

// ProcessUploadPayload carries one uploaded asset and the single entity
// field it attaches to.
type ProcessUploadPayload struct {
	TenantID    string            `json:"tenant_id"`
	EntityType  domain.EntityType `json:"entity_type"`
	EntityID    string            `json:"entity_id"`
	FileName    string            `json:"file_name"`
	ContentType string            `json:"content_type"`
	Content     []byte            `json:"content"`
}
