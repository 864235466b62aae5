package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"palette_api/pkg/prompting"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client wraps the OpenAI chat-completions API behind the two calls
// the diagnosis orchestrator needs. One blocking request per call; no
// retry, transport-default timeout.
type Client struct {
	client    openai.Client
	model     string
	maxTokens int
}

func NewClient(key string, url string, model string, maxTokens int) *Client {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Client{
		client:    openai.NewClient(option.WithAPIKey(key), option.WithBaseURL(url)),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Model returns the configured model name for the status endpoint.
func (c *Client) Model() string {
	return c.model
}

// Complete sends a text-only prompt and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(int64(c.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
	}
	return c.send(ctx, params)
}

// CompleteVision sends a prompt with attached images and returns the
// raw reply text. Images travel inline as base64 data URLs.
func (c *Client) CompleteVision(ctx context.Context, prompt string, parts []prompting.MediaPart) (string, error) {
	content := []openai.ChatCompletionContentPartUnionParam{
		{OfText: &openai.ChatCompletionContentPartTextParam{Text: prompt}},
	}
	for _, p := range parts {
		content = append(content, openai.ChatCompletionContentPartUnionParam{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL(p),
					Detail: "auto",
				},
			},
		})
	}

	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(int64(c.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: content,
					},
				},
			},
		},
	}
	return c.send(ctx, params)
}

func (c *Client) send(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("openai response contains no choices")
	}
	return response.Choices[0].Message.Content, nil
}

func dataURL(p prompting.MediaPart) string {
	mime := p.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
