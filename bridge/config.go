package bridge

import (
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// NonCompletedPolicy selects what a turn hands back when the run ends in
// any terminal status other than completed, or cannot be driven at all.
type NonCompletedPolicy string

const (
	// answer through a stateless chat completion instead
	FallbackToStateless NonCompletedPolicy = "fallback_to_stateless"
	// hand back a literal run-status string
	ReturnStatusMessage NonCompletedPolicy = "return_status_message"
)

const (
	POLL_INTERVAL    = 600 * time.Millisecond
	RUN_TIMEOUT      = 2 * time.Minute
	RUN_STEP_LIMIT   = 50
	SCAN_LIMIT       = 25
	SUMMARY_INTERVAL = 24 * time.Hour
	RETENTION_PERIOD = 30 * 24 * time.Hour
)

type Config struct {
	AssistantID string

	// how often the poller re-fetches run status
	PollInterval time.Duration

	// hard deadline for a single run to reach a terminal status
	RunTimeout time.Duration

	// page size when listing a run's steps
	RunStepLimit int

	// how many of the newest thread messages the scan fallback inspects
	ScanLimit int

	// model used for stateless fallback completions
	FallbackModel string

	OnNonCompleted NonCompletedPolicy

	// how often the turn summary job logs
	SummaryInterval time.Duration

	// turn records older than this are purged
	RetentionPeriod time.Duration
}

func DefaultConfig(assistantID string) *Config {
	return &Config{
		AssistantID:     assistantID,
		PollInterval:    POLL_INTERVAL,
		RunTimeout:      RUN_TIMEOUT,
		RunStepLimit:    RUN_STEP_LIMIT,
		ScanLimit:       SCAN_LIMIT,
		FallbackModel:   openai.GPT4oMini,
		OnNonCompleted:  FallbackToStateless,
		SummaryInterval: SUMMARY_INTERVAL,
		RetentionPeriod: RETENTION_PERIOD,
	}
}
