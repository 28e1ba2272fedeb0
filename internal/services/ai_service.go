// internal/services/ai_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/config"
)

// Advisor answers free-form business questions with the current ledger
// aggregates as context. Implementations talk to an OpenAI-compatible chat
// completion endpoint.
type Advisor interface {
	Ask(ctx context.Context, question string) (string, error)
}

var ErrAdvisorUnavailable = errors.New("ai advisor is not configured")

type chatClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *chatClient) complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat completion error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned status %d with no choices", resp.StatusCode)
	}
	return parsed.Choices[0].Message.Content, nil
}

// AIService wraps the advisor with the business-context prompt. The upstream
// client is built lazily on first use so a missing API key only fails the AI
// endpoints, never startup.
type AIService struct {
	db  *gorm.DB
	cfg config.OpenAIConfig

	once   sync.Once
	client *chatClient

	dashboard *DashboardService
	suppliers *SupplierService
}

func NewAIService(db *gorm.DB, cfg config.OpenAIConfig, dashboard *DashboardService, suppliers *SupplierService) *AIService {
	return &AIService{db: db, cfg: cfg, dashboard: dashboard, suppliers: suppliers}
}

func (s *AIService) advisor() (*chatClient, error) {
	s.once.Do(func() {
		if s.cfg.APIKey == "" {
			return
		}
		baseURL := s.cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		model := s.cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		s.client = &chatClient{
			apiKey:  s.cfg.APIKey,
			baseURL: baseURL,
			model:   model,
			http:    &http.Client{Timeout: 60 * time.Second},
		}
	})
	if s.client == nil {
		return nil, ErrAdvisorUnavailable
	}
	return s.client, nil
}

const advisorSystemPrompt = "You are a business advisor for a garden products " +
	"trading company. Answer in the language of the question, be specific and " +
	"base your advice on the figures provided."

// businessContext renders the current aggregates as plain text for the
// prompt.
func (s *AIService) businessContext(ctx context.Context) string {
	var b strings.Builder

	stats := s.dashboard.Stats(ctx)
	if stats.Error == "" {
		fmt.Fprintf(&b, "Current month: revenue %.2f, profit %.2f, %d sales, %d customers, %d products. ",
			stats.TotalRevenue, stats.TotalProfit, stats.SalesCount, stats.CustomersCount, stats.ProductsCount)
		fmt.Fprintf(&b, "Revenue growth %.2f%%, profit growth %.2f%%.\n",
			stats.RevenueGrowth, stats.ProfitGrowth)
	}

	if top := s.dashboard.TopProducts(5); len(top) > 0 {
		b.WriteString("Top products by revenue:\n")
		for _, p := range top {
			fmt.Fprintf(&b, "- %s (%s): %.2f over %d sales\n", p.Name, p.PackageType, p.TotalAmount, p.SalesCount)
		}
	}

	if risky, err := s.suppliers.Risky(2); err == nil && len(risky) > 0 {
		b.WriteString("Low-reliability suppliers:\n")
		for _, sup := range risky {
			fmt.Fprintf(&b, "- %s (rating %d)\n", sup.Name, sup.ReliabilityRating)
		}
	}

	return b.String()
}

// Ask sends a free-form question with the business context prepended.
func (s *AIService) Ask(ctx context.Context, question string) (string, error) {
	client, err := s.advisor()
	if err != nil {
		return "", err
	}
	prompt := s.businessContext(ctx) + "\nQuestion: " + question
	return client.complete(ctx, advisorSystemPrompt, prompt)
}

// Report asks for a structured monthly business report.
func (s *AIService) Report(ctx context.Context) (string, error) {
	client, err := s.advisor()
	if err != nil {
		return "", err
	}
	prompt := s.businessContext(ctx) +
		"\nWrite a concise monthly business report: performance summary, notable changes, and three action items."
	return client.complete(ctx, advisorSystemPrompt, prompt)
}

// Recommendations asks for growth recommendations.
func (s *AIService) Recommendations(ctx context.Context) (string, error) {
	client, err := s.advisor()
	if err != nil {
		return "", err
	}
	prompt := s.businessContext(ctx) +
		"\nGive five specific recommendations to grow revenue and margin, ordered by expected impact."
	return client.complete(ctx, advisorSystemPrompt, prompt)
}

// Risks asks for a risk assessment, supplier reliability included.
func (s *AIService) Risks(ctx context.Context) (string, error) {
	client, err := s.advisor()
	if err != nil {
		return "", err
	}
	prompt := s.businessContext(ctx) +
		"\nAssess the main business risks, including supplier reliability, and suggest mitigations."
	return client.complete(ctx, advisorSystemPrompt, prompt)
}
