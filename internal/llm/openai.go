package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	defaultModel openai.ChatModel
	client       *openai.Client
}

const defaultChatTimeout = 30 * time.Second

// NewOpenAIClient builds a client against api.openai.com. The default key
// may be empty as long as every request carries its own override; callers
// are expected to check key availability before issuing a call.
func NewOpenAIClient(apiKey string, defaultModel openai.ChatModel) *OpenAIClient {
	if defaultModel == "" {
		defaultModel = openai.ChatModelGPT3_5Turbo
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		defaultModel: defaultModel,
		client:       &cli,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()

	model := c.defaultModel
	if req.Model != "" {
		model = openai.ChatModel(req.Model)
	}
	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: buildMessages(req.System, req.Prompt),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	var opts []option.RequestOption
	if req.APIKey != "" {
		opts = append(opts, option.WithAPIKey(req.APIKey))
	}

	resp, err := c.client.Chat.Completions.New(reqCtx, params, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	var msgs []openai.ChatCompletionMessageParamUnion
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(user),
			},
		},
	})
	return msgs
}
