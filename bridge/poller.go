package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// ErrRunTimeout reports a run that stayed non-terminal past Config.RunTimeout.
// Kept distinct from the remote terminal statuses so callers can tell a stuck
// run from a failed one.
var ErrRunTimeout = errors.New("timed out waiting for run to finish")

// statuses the remote service will never transition a run out of
func isTerminal(status openai.RunStatus) bool {
	switch status {
	case openai.RunStatusCompleted,
		openai.RunStatusFailed,
		openai.RunStatusCancelled,
		openai.RunStatusExpired,
		openai.RunStatusRequiresAction:
		return true
	}
	return false
}

// runAssistant appends the user's message to the thread, starts a run for the
// configured assistant, and drives it to a terminal status.
//
// The returned run is zero-valued when the append or the start call fails.
func (b *Bridge) runAssistant(ctx context.Context, threadID string, message string) (openai.Run, error) {
	messageReq := openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	}
	_, err := b.AIClient.CreateMessage(ctx, threadID, messageReq)
	if err != nil {
		return openai.Run{}, fmt.Errorf("unable to create message: %w", err)
	}

	run, err := b.AIClient.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: b.Config.AssistantID,
	})
	if err != nil {
		return openai.Run{}, fmt.Errorf("unable to create run: %w", err)
	}

	log.Println("Initial Run id: ", run.ID)
	log.Println("Run status: ", run.Status)

	return b.pollRun(ctx, threadID, run)
}

// pollRun re-fetches the run at a fixed interval until it reaches a terminal
// status or RunTimeout elapses. Transient retrieve errors are tolerated until
// the deadline.
func (b *Bridge) pollRun(ctx context.Context, threadID string, run openai.Run) (openai.Run, error) {
	deadline := b.Clock.Now().Add(b.Config.RunTimeout)
	prevStatus := run.Status

	for {
		if isTerminal(run.Status) {
			return run, nil
		}
		if !b.Clock.Now().Before(deadline) {
			return run, fmt.Errorf("%w after %s (last status %s)", ErrRunTimeout, b.Config.RunTimeout, run.Status)
		}

		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-b.Clock.After(b.Config.PollInterval):
		}

		next, err := b.AIClient.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			log.Println("error retrieving run: ", err)
			continue
		}
		run = next

		if run.Status != prevStatus {
			log.Println("Run status: ", run.Status)
			prevStatus = run.Status
		}
	}
}
