package services

import (
	"context"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"hrassist/resume-screener/internal/models"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

type openRouterService struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewOpenRouterService builds an OpenAI-compatible text generation client.
// It satisfies LLMClient so the evaluator can swap providers by config.
func NewOpenRouterService(apiKey, model string) LLMClient {
	return &openRouterService{
		client: resty.New(),
		apiKey: apiKey,
		model:  model,
	}
}

func (o *openRouterService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := o.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+o.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": o.model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an expert HR recruiter. Always respond with the exact format requested."},
				{"role": "user", "content": prompt},
			},
			"temperature": temperature,
		}).
		Post(openRouterEndpoint)
	if err != nil {
		return "", &models.ServiceError{Service: "openrouter", Err: fmt.Errorf("request failed: %w", err)}
	}

	if resp.StatusCode() != 200 {
		return "", &models.ServiceError{
			Service: "openrouter",
			Err:     fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	if content == "" {
		return "", &models.ServiceError{Service: "openrouter", Err: fmt.Errorf("no text content in response")}
	}

	return content, nil
}

func (o *openRouterService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := o.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️ OpenRouter attempt %d failed: %v. Retrying...", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
