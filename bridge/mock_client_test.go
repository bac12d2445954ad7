package bridge

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// FOR TESTING
type MockAssistantClient struct {
	createMessageErr   error
	createMessageCalls int
	createdMessages    map[string][]openai.MessageRequest

	createRunErr   error
	createRunCalls int
	createRunReq   openai.RunRequest
	initialStatus  openai.RunStatus

	// statuses returned by successive RetrieveRun calls once the scripted
	// failures are used up; the last entry repeats
	runStatuses      []openai.RunStatus
	runLastError     *openai.RunLastError
	retrieveRunErrs  int
	retrieveRunCalls int

	steps             []openai.RunStep
	listRunStepsErr   error
	listRunStepsCalls int
	stepsPagination   openai.Pagination

	messages            map[string]openai.Message
	retrieveMessageErrs map[string]error
	retrievedMessageIDs []string

	threadMessages   []openai.Message
	listMessageErr   error
	listMessageCalls int
	listMessageLimit *int
	listMessageOrder *string

	chatResponse openai.ChatCompletionResponse
	chatErr      error
	chatCalls    int
	chatReq      openai.ChatCompletionRequest

	threadID        string
	createThreadErr error
}

func newMockAssistantClient() *MockAssistantClient {
	return &MockAssistantClient{
		createdMessages:     map[string][]openai.MessageRequest{},
		messages:            map[string]openai.Message{},
		retrieveMessageErrs: map[string]error{},
	}
}

func (m *MockAssistantClient) CreateMessage(
	ctx context.Context,
	threadID string,
	request openai.MessageRequest,
) (openai.Message, error) {
	m.createMessageCalls++
	if m.createMessageErr != nil {
		return openai.Message{}, m.createMessageErr
	}
	m.createdMessages[threadID] = append(m.createdMessages[threadID], request)
	return openai.Message{ID: "msg_user", ThreadID: threadID}, nil
}

func (m *MockAssistantClient) CreateRun(
	ctx context.Context,
	threadID string,
	request openai.RunRequest,
) (openai.Run, error) {
	m.createRunCalls++
	if m.createRunErr != nil {
		return openai.Run{}, m.createRunErr
	}
	m.createRunReq = request

	status := m.initialStatus
	if status == "" {
		status = openai.RunStatusQueued
	}
	return openai.Run{ID: "run_1", ThreadID: threadID, Status: status}, nil
}

func (m *MockAssistantClient) RetrieveRun(
	ctx context.Context,
	threadID string,
	runID string,
) (openai.Run, error) {
	m.retrieveRunCalls++
	if m.retrieveRunCalls <= m.retrieveRunErrs {
		return openai.Run{}, errors.New("retrieve run failed")
	}

	run := openai.Run{ID: runID, ThreadID: threadID, Status: openai.RunStatusCompleted}
	if len(m.runStatuses) > 0 {
		idx := m.retrieveRunCalls - m.retrieveRunErrs - 1
		if idx >= len(m.runStatuses) {
			idx = len(m.runStatuses) - 1
		}
		run.Status = m.runStatuses[idx]
	}
	run.LastError = m.runLastError
	return run, nil
}

func (m *MockAssistantClient) ListRunSteps(
	ctx context.Context,
	threadID string,
	runID string,
	pagination openai.Pagination,
) (openai.RunStepList, error) {
	m.listRunStepsCalls++
	m.stepsPagination = pagination
	if m.listRunStepsErr != nil {
		return openai.RunStepList{}, m.listRunStepsErr
	}
	return openai.RunStepList{RunSteps: m.steps}, nil
}

func (m *MockAssistantClient) RetrieveMessage(
	ctx context.Context,
	threadID string,
	messageID string,
) (openai.Message, error) {
	m.retrievedMessageIDs = append(m.retrievedMessageIDs, messageID)
	if err := m.retrieveMessageErrs[messageID]; err != nil {
		return openai.Message{}, err
	}
	message, ok := m.messages[messageID]
	if !ok {
		return openai.Message{}, errors.New("message not found")
	}
	return message, nil
}

func (m *MockAssistantClient) ListMessage(
	ctx context.Context,
	threadID string,
	limit *int,
	order *string,
	after *string,
	before *string,
) (openai.MessagesList, error) {
	m.listMessageCalls++
	m.listMessageLimit = limit
	m.listMessageOrder = order
	if m.listMessageErr != nil {
		return openai.MessagesList{}, m.listMessageErr
	}
	return openai.MessagesList{Messages: m.threadMessages}, nil
}

func (m *MockAssistantClient) CreateThread(
	ctx context.Context,
	request openai.ThreadRequest,
) (openai.Thread, error) {
	if m.createThreadErr != nil {
		return openai.Thread{}, m.createThreadErr
	}
	threadID := m.threadID
	if threadID == "" {
		threadID = "thread_abc123"
	}
	return openai.Thread{ID: threadID}, nil
}

func (m *MockAssistantClient) CreateChatCompletion(
	ctx context.Context,
	request openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	m.chatCalls++
	m.chatReq = request
	if m.chatErr != nil {
		return openai.ChatCompletionResponse{}, m.chatErr
	}
	return m.chatResponse, nil
}

func assistantMessage(id string, texts ...string) openai.Message {
	message := openai.Message{
		ID:   id,
		Role: openai.ChatMessageRoleAssistant,
	}
	for _, text := range texts {
		var textValue *openai.MessageText
		if text != "" {
			textValue = &openai.MessageText{Value: text}
		}
		message.Content = append(message.Content, openai.MessageContent{
			Type: "text",
			Text: textValue,
		})
	}
	return message
}

func userMessage(id string, text string) openai.Message {
	return openai.Message{
		ID:   id,
		Role: openai.ChatMessageRoleUser,
		Content: []openai.MessageContent{
			{Type: "text", Text: &openai.MessageText{Value: text}},
		},
	}
}

func messageCreationStep(id string, messageID string) openai.RunStep {
	return openai.RunStep{
		ID:   id,
		Type: openai.RunStepTypeMessageCreation,
		StepDetails: openai.StepDetails{
			Type:            openai.RunStepTypeMessageCreation,
			MessageCreation: &openai.StepDetailsMessageCreation{MessageID: messageID},
		},
	}
}

func toolCallStep(id string) openai.RunStep {
	return openai.RunStep{
		ID:   id,
		Type: openai.RunStepTypeToolCalls,
		StepDetails: openai.StepDetails{
			Type: openai.RunStepTypeToolCalls,
		},
	}
}

func chatCompletionResponse(texts ...string) openai.ChatCompletionResponse {
	var choices []openai.ChatCompletionChoice
	for _, text := range texts {
		choices = append(choices, openai.ChatCompletionChoice{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: text,
			},
		})
	}
	return openai.ChatCompletionResponse{Choices: choices}
}
