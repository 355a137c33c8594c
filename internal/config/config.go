package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Broker    BrokerConfig    `mapstructure:"broker" validate:"required"`
	Worker    WorkerConfig    `mapstructure:"worker" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Uploads   UploadsConfig   `mapstructure:"uploads" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// BrokerConfig describes the shared Redis broker that backs both the job
// queues and the cache. The broker may be unreachable at startup; the probe
// timeout bounds how long the process waits before degrading to the no-op
// queue and cache implementations.
type BrokerConfig struct {
	Addr            string `mapstructure:"addr" validate:"required"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db" validate:"gte=0"`
	ProbeTimeoutSec int    `mapstructure:"probe_timeout_sec" validate:"required,gt=0"`
}

// PoolConfig bounds one worker pool: how many jobs may run at once, and how
// many jobs may start within a rolling window. Both limits hold at the same
// time. JobTimeoutSec is the per-job execution deadline; a wedged handler is
// cut off rather than occupying a concurrency slot forever.
type PoolConfig struct {
	Concurrency   int `mapstructure:"concurrency" validate:"required,gt=0"`
	RateLimit     int `mapstructure:"rate_limit" validate:"required,gt=0"`
	RateWindowSec int `mapstructure:"rate_window_sec" validate:"required,gt=0"`
	JobTimeoutSec int `mapstructure:"job_timeout_sec" validate:"required,gt=0"`
}

// WorkerConfig holds the per-queue pool bounds.
type WorkerConfig struct {
	RecomputeStats   PoolConfig `mapstructure:"recompute_stats" validate:"required"`
	SendNotification PoolConfig `mapstructure:"send_notification" validate:"required"`
	Housekeeping     PoolConfig `mapstructure:"housekeeping" validate:"required"`
	ProcessUpload    PoolConfig `mapstructure:"process_upload" validate:"required"`
}

// UploadsConfig locates processed upload storage.
type UploadsConfig struct {
	Dir     string `mapstructure:"dir" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required"`
}

// SchedulerConfig holds the cron expressions for the three periodic
// producers and the alert thresholds read by the health-check producer.
type SchedulerConfig struct {
	StatsCron        string `mapstructure:"stats_cron" validate:"required"`
	HousekeepingCron string `mapstructure:"housekeeping_cron" validate:"required"`
	HealthCheckCron  string `mapstructure:"health_check_cron" validate:"required"`
	FailedThreshold  int    `mapstructure:"failed_threshold" validate:"required,gt=0"`
	WaitingThreshold int    `mapstructure:"waiting_threshold" validate:"required,gt=0"`
}
