package providers

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// AnthropicClient implements Client by calling the Anthropic SDK directly.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(apiKey, modelName string) (*AnthropicClient, error) {
	return &AnthropicClient{
		client: anthropic.NewClient(apiKey),
		model:  modelName,
	}, nil
}

// Complete implements Client.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	msgReq := anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(req.Prompt)},
			},
		},
		MaxTokens: req.MaxOutputTokens,
	}
	if req.System != "" {
		msgReq.MultiSystem = []anthropic.MessageSystemPart{
			{Type: "text", Text: req.System},
		}
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		msgReq.Temperature = &temp
	}
	if req.TopP > 0 {
		topP := req.TopP
		msgReq.TopP = &topP
	}
	if req.TopK > 0 {
		topK := req.TopK
		msgReq.TopK = &topK
	}

	resp, err := c.client.CreateMessages(ctx, msgReq)
	if err != nil {
		return "", err
	}

	if resp.StopReason == "content_filtered" {
		return "", fmt.Errorf("%w: stop_reason=content_filtered", ErrContentBlocked)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text += *block.Text
		}
	}
	return text, nil
}
