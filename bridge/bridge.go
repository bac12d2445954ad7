package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyThreadID is the one turn failure the caller has to handle itself:
// without a thread there is nothing to answer into. Every other failure
// comes back as displayable text.
var ErrEmptyThreadID = errors.New("missing thread id")

// Bridge drives one conversational turn against the assistants API on behalf
// of a front end that only understands request/response strings.
type Bridge struct {
	AIClient  AssistantClient
	DB        Database
	Scheduler *Scheduler
	Config    *Config
	Clock     clockwork.Clock
}

func NewBridge(client AssistantClient, db Database, scheduler *Scheduler, config *Config) *Bridge {
	return &Bridge{
		AIClient:  client,
		DB:        db,
		Scheduler: scheduler,
		Config:    config,
		Clock:     clockwork.NewRealClock(),
	}
}

// SubmitTurn appends the user's message to the thread, runs the assistant,
// and returns text to display. Apart from ErrEmptyThreadID it does not fail:
// whatever goes wrong downstream is resolved into a reply string per
// Config.OnNonCompleted.
func (b *Bridge) SubmitTurn(ctx context.Context, threadID string, message string) (string, error) {
	threadID = strings.TrimSpace(threadID)
	if threadID == "" {
		return "", ErrEmptyThreadID
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return PROMPT_FOR_INPUT_RESPONSE, nil
	}

	turnID := uuid.New().String()
	started := b.Clock.Now()
	log.Printf("turn %s: submitting message to thread %s\n", turnID, threadID)

	run, err := b.runAssistant(ctx, threadID, message)
	if err == nil && run.Status == openai.RunStatusCompleted {
		reply, result := b.resolveReply(ctx, threadID, run.ID)
		b.recordTurn(turnID, threadID, run, result, b.Clock.Since(started))
		log.Printf("turn %s: reply via %s: %s\n", turnID, result, preview(reply))
		return reply, nil
	}

	if err != nil {
		log.Printf("turn %s: run did not complete: %s\n", turnID, err)
	} else {
		log.Printf("turn %s: run ended with status %s%s\n", turnID, run.Status, lastErrorSuffix(run))
	}

	if b.Config.OnNonCompleted == ReturnStatusMessage {
		if err != nil {
			b.recordTurn(turnID, threadID, run, ResultError, b.Clock.Since(started))
			return fmt.Sprintf("%s: %s", INTERNAL_ERROR_RESPONSE, err), nil
		}
		b.recordTurn(turnID, threadID, run, ResultStatusMessage, b.Clock.Since(started))
		return fmt.Sprintf(RUN_STATUS_RESPONSE_FORMAT, run.Status), nil
	}

	reply, fallbackErr := b.fallbackResponse(ctx, message)
	if fallbackErr != nil {
		log.Printf("turn %s: fallback failed: %s\n", turnID, fallbackErr)
		b.recordTurn(turnID, threadID, run, ResultError, b.Clock.Since(started))
		return fmt.Sprintf("%s: %s", INTERNAL_ERROR_RESPONSE, fallbackErr), nil
	}

	result := ResultFallback
	if reply == FALLBACK_FAILED_RESPONSE {
		result = ResultFallbackFailed
	}
	b.recordTurn(turnID, threadID, run, result, b.Clock.Since(started))
	log.Printf("turn %s: reply via %s: %s\n", turnID, result, preview(reply))
	return reply, nil
}

// StartThread creates a fresh remote thread and returns its id, so the front
// end can open a conversation.
func (b *Bridge) StartThread(ctx context.Context) (string, error) {
	thread, err := b.AIClient.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("unable to create thread: %w", err)
	}

	log.Println("Successfully started thread: ", thread.ID)
	return thread.ID, nil
}

// TurnStats counts the turns recorded inside the window, grouped by result
// path.
func (b *Bridge) TurnStats(window time.Duration) (map[string]int64, error) {
	if b.DB == nil {
		return map[string]int64{}, nil
	}
	return b.DB.CountTurnRecordsByResult(b.Clock.Now().Add(-window))
}

// StartJobs begins the background summary and retention jobs.
func (b *Bridge) StartJobs() {
	if b.Scheduler == nil {
		return
	}

	b.Scheduler.Start()

	err := b.Scheduler.AddDurationJob(b.Config.SummaryInterval, b.logTurnSummary)
	if err != nil {
		log.Println("unable to schedule summary job: ", err)
	}

	err = b.Scheduler.AddDurationJob(24*time.Hour, b.purgeOldTurnRecords)
	if err != nil {
		log.Println("unable to schedule purge job: ", err)
	}
}

func (b *Bridge) logTurnSummary() {
	counts, err := b.TurnStats(b.Config.SummaryInterval)
	if err != nil {
		log.Println("unable to get turn stats: ", err)
		return
	}
	log.Printf("turn summary (last %s): %v\n", b.Config.SummaryInterval, counts)
}

func (b *Bridge) purgeOldTurnRecords() {
	if b.DB == nil {
		return
	}

	cutoff := b.Clock.Now().Add(-b.Config.RetentionPeriod)
	purged, err := b.DB.PurgeTurnRecordsBefore(cutoff)
	if err != nil {
		log.Println("unable to purge turn records: ", err)
		return
	}
	if purged > 0 {
		log.Printf("purged %d turn records older than %s\n", purged, cutoff.Format(time.RFC3339))
	}
}

func (b *Bridge) recordTurn(turnID string, threadID string, run openai.Run, result string, duration time.Duration) {
	if b.DB == nil {
		return
	}

	record := &TurnRecord{
		TurnID:    turnID,
		ThreadID:  threadID,
		RunID:     run.ID,
		RunStatus: string(run.Status),
		Result:    result,
		Duration:  duration,
	}
	if err := b.DB.CreateTurnRecord(record); err != nil {
		log.Println("unable to record turn: ", err)
	}
}

func lastErrorSuffix(run openai.Run) string {
	if run.LastError == nil {
		return ""
	}
	return fmt.Sprintf(" (code %s: %s)", run.LastError.Code, run.LastError.Message)
}

func preview(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
