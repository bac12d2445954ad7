package bridge

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// resolveReply locates the text a completed run produced. The run's own step
// log is authoritative; the thread scan is a best-effort second pass that may
// surface a reply from an earlier run, which beats returning nothing. Never
// fails: when both passes come up empty it returns NO_ANSWER_RESPONSE.
//
// Read-only against the thread, so safe to call more than once.
func (b *Bridge) resolveReply(ctx context.Context, threadID string, runID string) (string, string) {
	if reply := b.replyFromRunSteps(ctx, threadID, runID); reply != "" {
		return reply, ResultSteps
	}
	if reply := b.replyFromThreadScan(ctx, threadID); reply != "" {
		return reply, ResultScan
	}
	return NO_ANSWER_RESPONSE, ResultSentinel
}

// replyFromRunSteps walks the run's message_creation steps in creation order
// and returns the first assistant text they point at.
func (b *Bridge) replyFromRunSteps(ctx context.Context, threadID string, runID string) string {
	limit := b.Config.RunStepLimit
	order := "asc"
	steps, err := b.AIClient.ListRunSteps(ctx, threadID, runID, openai.Pagination{
		Limit: &limit,
		Order: &order,
	})
	if err != nil {
		log.Println("unable to list run steps: ", err)
		return ""
	}

	for _, step := range steps.RunSteps {
		if step.Type != openai.RunStepTypeMessageCreation {
			continue
		}
		if step.StepDetails.MessageCreation == nil || step.StepDetails.MessageCreation.MessageID == "" {
			log.Println("run step missing message_creation details: ", step.ID)
			continue
		}

		messageID := step.StepDetails.MessageCreation.MessageID
		message, err := b.AIClient.RetrieveMessage(ctx, threadID, messageID)
		if err != nil {
			log.Println("unable to retrieve message: ", err)
			continue
		}
		if text := assistantText(message); text != "" {
			return text
		}
	}

	return ""
}

// replyFromThreadScan checks the newest thread messages for assistant text.
func (b *Bridge) replyFromThreadScan(ctx context.Context, threadID string) string {
	limit := b.Config.ScanLimit
	order := "desc"
	messages, err := b.AIClient.ListMessage(ctx, threadID, &limit, &order, nil, nil)
	if err != nil {
		log.Println("unable to list messages: ", err)
		return ""
	}

	for _, message := range messages.Messages {
		if text := assistantText(message); text != "" {
			return text
		}
	}

	return ""
}

// assistantText returns the first non-empty text part of an assistant
// message, or "" when the message is from another role or has no text.
func assistantText(message openai.Message) string {
	if message.Role != openai.ChatMessageRoleAssistant {
		return ""
	}
	for _, part := range message.Content {
		if part.Text != nil && part.Text.Value != "" {
			return part.Text.Value
		}
	}
	return ""
}
