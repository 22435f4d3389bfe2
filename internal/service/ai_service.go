package service

import (
	"context"
	"errors"
	"fmt"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/util"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/sashabaranov/go-openai"
)

// StructuredRequest 一次结构化生成请求，Schema 描述期望的输出结构
type StructuredRequest struct {
	Name   string
	System string
	Prompt string
	Schema *jsonschema.Schema
}

// StructuredGenerator 外部生成服务，返回符合 Schema 的 JSON 文本
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
}

type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *openai.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	s := &AIService{}
	s.UpdateConfig(cfg)
	return s
}

// UpdateConfig 配置热更新时替换模型参数和客户端
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = openai.NewClientWithConfig(clientCfg)
}

func (s *AIService) snapshot() (config.AIConfig, *openai.Client) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.client
}

func (s *AIService) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	cfg, client := s.snapshot()

	if timeout := cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       cfg.Model,
		Messages:    messages,
		Temperature: cfg.Temperature,
	}
	if req.Schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Name,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}

	resp, err := client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("AI API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", util.ErrEmptyGeneration
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", util.ErrEmptyGeneration
	}
	return content, nil
}
