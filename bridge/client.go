package bridge

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// openai.Client interface wrapper for modularity and testing.
// Contains only the methods this project uses.
type AssistantClient interface {
	// see openai.Client.CreateMessage
	CreateMessage(ctx context.Context, threadID string, request openai.MessageRequest) (openai.Message, error)
	CreateRun(ctx context.Context, threadID string, request openai.RunRequest) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID string, runID string) (openai.Run, error)
	ListRunSteps(ctx context.Context, threadID string, runID string, pagination openai.Pagination) (openai.RunStepList, error)
	RetrieveMessage(ctx context.Context, threadID string, messageID string) (openai.Message, error)
	// see openai.Client.ListMessage
	ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string, before *string) (openai.MessagesList, error)
	CreateThread(ctx context.Context, request openai.ThreadRequest) (openai.Thread, error)
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewAIClient builds the production client with the assistants v2 header set.
func NewAIClient(apiKey string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.AssistantVersion = "v2"
	return openai.NewClientWithConfig(clientConfig)
}
