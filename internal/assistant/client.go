// Package assistant talks to a chat-completion API on behalf of the personas and falls
// back to canned replies whenever the API cannot be used.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/settings"
	"github.com/handydesk/handydesk/internal/shared"
)

// Notices prefixed to fallback replies.
const (
	NoticeOffline = "[Running in offline mode]"
	NoticeQuota   = "[API quota exceeded. Switched to offline mode.]"
	NoticeFailure = "[Connection error. Switched to offline mode.]"
)

type Config struct {
	BaseURL       string
	Model         string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Credentials is the settings view the assistant needs.
type Credentials interface {
	Credentials(ctx context.Context) (key string, offline bool, err error)
	SetOfflineMode(ctx context.Context, offline bool) (settings.AIStatus, error)
}

type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type Reply struct {
	Content string `json:"content"`
	Notice  string `json:"notice,omitempty"`
	Offline bool   `json:"offline"`
}

type Service struct {
	cfg        Config
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewService(cfg Config, creds Credentials, logger *slog.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Service{
		cfg:        cfg,
		creds:      creds,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var (
	errQuota      = errors.New("assistant: quota exceeded")
	errRateLimit  = errors.New("assistant: rate limited")
	errBadGateway = errors.New("assistant: unexpected response")
)

// Chat answers the conversation as persona. Service failures never surface as errors:
// they switch the assistant to offline mode and return a canned reply. Only an unknown
// persona or a settings read failure is an error.
func (s *Service) Chat(ctx context.Context, personaID string, history []Message) (Reply, error) {
	persona, ok := findPersona(personaID)
	if !ok {
		return Reply{}, fmt.Errorf("%w: unknown persona %q", shared.ErrValidation, personaID)
	}
	key, offline, err := s.creds.Credentials(ctx)
	if err != nil {
		return Reply{}, err
	}
	if offline || key == "" {
		return fallback(persona, history, NoticeOffline), nil
	}

	content, err := s.complete(ctx, key, persona, history)
	if err == nil {
		return Reply{Content: content}, nil
	}

	notice := NoticeFailure
	if errors.Is(err, errQuota) {
		notice = NoticeQuota
	}
	s.logger.Warn("assistant request failed, switching to offline mode",
		slog.String("persona", persona.ID), slog.Any("error", err))
	if _, setErr := s.creds.SetOfflineMode(ctx, true); setErr != nil {
		s.logger.Error("assistant offline flag not saved", slog.Any("error", setErr))
	}
	return fallback(persona, history, notice), nil
}

func fallback(p Persona, history []Message, notice string) Reply {
	return Reply{
		Content: notice + "\n\n" + cannedReply(p, len(history)),
		Notice:  notice,
		Offline: true,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Service) complete(ctx context.Context, key string, p Persona, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: p.SystemPrompt})
	messages = append(messages, history...)
	body, err := json.Marshal(chatRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	for attempt := 0; ; attempt++ {
		content, err := s.post(ctx, key, body)
		if !errors.Is(err, errRateLimit) || attempt >= s.cfg.RetryAttempts {
			return content, err
		}
		s.logger.Info("assistant rate limited, retrying", slog.Int("attempt", attempt+1))
		if err := s.sleep(ctx, s.cfg.RetryDelay); err != nil {
			return "", err
		}
	}
}

func (s *Service) post(ctx context.Context, key string, body []byte) (string, error) {
	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 300 {
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Error.Code == "insufficient_quota" || apiErr.Error.Type == "insufficient_quota" {
			return "", errQuota
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", errRateLimit
		}
		return "", fmt.Errorf("%w: status %d", errBadGateway, resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: %v", errBadGateway, err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", errBadGateway)
	}
	return out.Choices[0].Message.Content, nil
}
