package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"hrassist/resume-screener/internal/models"
)

// LLMClient is the text-generation surface the evaluator depends on. Both
// the Gemini and the OpenRouter providers implement it.
type LLMClient interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

// GeminiService adds embeddings on top of text generation. Embeddings always
// come from Gemini even when OpenRouter handles generation.
type GeminiService interface {
	LLMClient
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, modelName, embedModel string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
	}, nil
}

func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long for the embedding model.
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, &models.ServiceError{Service: "gemini", Err: fmt.Errorf("failed to generate embedding: %w", err)}
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, &models.ServiceError{Service: "gemini", Err: fmt.Errorf("empty embedding result")}
	}

	return result.Embeddings[0].Values, nil
}

func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", &models.ServiceError{Service: "gemini", Err: fmt.Errorf("failed to generate text: %w", err)}
	}

	if resp == nil {
		return "", &models.ServiceError{Service: "gemini", Err: fmt.Errorf("no response generated")}
	}

	text := resp.Text()
	if text == "" {
		return "", &models.ServiceError{Service: "gemini", Err: fmt.Errorf("no text content in response")}
	}

	return text, nil
}

func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
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
			log.Printf("⚠️ Gemini attempt %d failed: %v. Retrying...", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
