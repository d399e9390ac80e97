// Package llm is the boundary to the generative model service. It
// exposes the two structured requests the pipeline needs and fails
// explicitly whenever the service cannot produce a conforming reply.
package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"tradevisor/internal/config"
	"tradevisor/internal/dataflows"
	"tradevisor/internal/models"
)

// mime types for chart attachments, keyed by file extension.
var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Client wraps a chat model behind the two typed operations the
// pipeline performs.
type Client struct {
	cm     model.BaseChatModel
	retry  *dataflows.RetryConfig
	logger *zap.Logger
}

// NewClient builds a Client over the configured OpenAI-compatible model.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Client, error) {
	maxTokens := 4096
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   cfg.OpenAIBaseURL,
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.OpenAIModel,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	return &Client{
		cm:     cm,
		retry:  dataflows.DefaultRetryConfig(),
		logger: logger,
	}, nil
}

// NewClientWithModel wires an already-built chat model; tests use this.
func NewClientWithModel(cm model.BaseChatModel, logger *zap.Logger) *Client {
	return &Client{cm: cm, retry: dataflows.DefaultRetryConfig(), logger: logger}
}

// ClassifySentiment submits the filled sentiment prompt and parses the
// reply into a SentimentResult.
func (c *Client) ClassifySentiment(ctx context.Context, prompt string) (*models.SentimentResult, error) {
	reply, err := c.generate(ctx, []*schema.Message{
		schema.SystemMessage(sentimentSystemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("sentiment request: %w", err)
	}

	var res models.SentimentResult
	if err := decodeReply(reply, &res); err != nil {
		return nil, fmt.Errorf("sentiment reply: %w", err)
	}

	c.logger.Debug("sentiment classified",
		zap.String("label", string(res.Label)),
		zap.Float64("confidence", res.Confidence))
	return &res, nil
}

// ComposeRecommendation submits the filled recommendation prompt
// together with the chart image and parses the reply into a
// RecommendationResult.
func (c *Client) ComposeRecommendation(ctx context.Context, prompt, imagePath string) (*models.RecommendationResult, error) {
	imgPart, err := imagePart(imagePath)
	if err != nil {
		return nil, fmt.Errorf("recommendation request: %w", err)
	}

	userMsg := &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{Type: schema.ChatMessagePartTypeText, Text: prompt},
			imgPart,
		},
	}

	reply, err := c.generate(ctx, []*schema.Message{
		schema.SystemMessage(recommendationSystemPrompt),
		userMsg,
	})
	if err != nil {
		return nil, fmt.Errorf("recommendation request: %w", err)
	}

	var res models.RecommendationResult
	if err := decodeReply(reply, &res); err != nil {
		return nil, fmt.Errorf("recommendation reply: %w", err)
	}

	c.logger.Debug("recommendation composed",
		zap.String("decision", string(res.Decision)),
		zap.Float64("confidence", res.Confidence))
	return &res, nil
}

// generate runs one chat completion with bounded transport retry and
// returns the reply content.
func (c *Client) generate(ctx context.Context, msgs []*schema.Message) (string, error) {
	var out *schema.Message
	err := dataflows.WithRetry(c.retry, func() error {
		var genErr error
		out, genErr = c.cm.Generate(ctx, msgs)
		return genErr
	})
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", ErrEmptyReply
	}
	return out.Content, nil
}

// imagePart reads and base64-encodes an image file into a data-URL
// message part. Unknown extensions fall back to a generic binary MIME
// type.
func imagePart(path string) (schema.ChatMessagePart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.ChatMessagePart{}, fmt.Errorf("read chart image: %w", err)
	}

	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mime = "application/octet-stream"
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return schema.ChatMessagePart{
		Type: schema.ChatMessagePartTypeImageURL,
		ImageURL: &schema.ChatMessageImageURL{
			URL:      fmt.Sprintf("data:%s;base64,%s", mime, encoded),
			MIMEType: mime,
			Detail:   schema.ImageURLDetailAuto,
		},
	}, nil
}
