package bridge

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// fallbackResponse answers the user's message through a stateless chat
// completion, outside the thread. Used when the stateful run could not
// produce a reply so the caller still gets something displayable.
func (b *Bridge) fallbackResponse(ctx context.Context, message string) (string, error) {
	resp, err := b.AIClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.Config.FallbackModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: FALLBACK_INSTRUCTIONS,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: message,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("unable to get fallback completion: %w", err)
	}

	for _, choice := range resp.Choices {
		if choice.Message.Content != "" {
			return choice.Message.Content, nil
		}
	}

	log.Println("fallback completion returned no text")
	return FALLBACK_FAILED_RESPONSE, nil
}
