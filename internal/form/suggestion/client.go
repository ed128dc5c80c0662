// internal/form/suggestion/client.go
package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"intake-service/internal/common/config"
	"intake-service/internal/common/i18n"
	"intake-service/internal/common/logger"
)

const systemPrompt = "You edit short form inputs. Keep responses under 280 chars, " +
	"plain text only, no markdown, no lists, no emojis."

// Client produces suggestion text for a prompt. Implementations never
// return an error; failures become displayable fallback strings and the
// second return reports that degradation.
type Client interface {
	Suggest(ctx context.Context, prompt string, tr *i18n.Translator) (string, bool)
}

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	cfg    config.AIConfig
	client *http.Client
	log    logger.Logger
}

func NewOpenAIClient(cfg config.AIConfig, log logger.Logger) *OpenAIClient {
	return &OpenAIClient{
		cfg: cfg,
		// No client timeout; the per-call context bounds the round-trip.
		client: &http.Client{},
		log:    log.WithFields(map[string]interface{}{"component": "ai-client"}),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Suggest runs one prompt through the completions endpoint. The fallback
// return is true whenever the content is an error surrogate rather than
// generated text.
func (c *OpenAIClient) Suggest(ctx context.Context, prompt string, tr *i18n.Translator) (string, bool) {
	if c.cfg.APIKey == "" {
		return tr.T("ai.fallback.notConfigured", nil), true
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Millisecond)
	defer cancel()

	body, _ := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})

	var resp *http.Response
	var lastErr error
	var lastStatus int

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return tr.T("ai.fallback.network", nil), true
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return tr.T("ai.fallback.generic", nil), true
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			lastStatus = resp.StatusCode
			resp.Body.Close()
			resp = nil
			// Client errors are not transient; only retry server failures.
			if lastStatus < http.StatusInternalServerError {
				break
			}
		}

		if ctx.Err() != nil {
			return tr.T("ai.fallback.network", nil), true
		}
	}

	if resp == nil {
		c.log.Warn("Suggestion request degraded to fallback", map[string]interface{}{
			"status": lastStatus,
			"error":  errString(lastErr),
		})
		return c.fallbackFor(lastStatus, lastErr, tr), true
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return tr.T("ai.fallback.generic", nil), true
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return tr.T("ai.fallback.noResponse", nil), true
	}

	return Sanitize(strings.TrimSpace(parsed.Choices[0].Message.Content)), false
}

func (c *OpenAIClient) fallbackFor(status int, err error, tr *i18n.Translator) string {
	if status == 0 && err != nil {
		return tr.T("ai.fallback.network", nil)
	}
	switch status {
	case http.StatusUnauthorized:
		return tr.T("ai.fallback.invalidKey", nil)
	case http.StatusTooManyRequests:
		return tr.T("ai.fallback.rateLimit", nil)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return tr.T("ai.fallback.unavailable", nil)
	default:
		return tr.T("ai.fallback.generic", nil)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
