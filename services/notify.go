package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/bolhadev/blog-backend/config"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// Notifier tells the site owner about something that needs attention.
type Notifier interface {
	Notify(ctx context.Context, subject, htmlBody string) error
}

// resendEmailRequest is the request payload of the Resend API.
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}

type resendErrorResponse struct {
	Message string `json:"message"`
}

// EmailNotifier sends notifications through Resend.
type EmailNotifier struct {
	apiKey     string
	from       string
	recipients []string
	endpoint   string
	httpClient *http.Client
}

// NewEmailNotifier reads RESEND_API_KEY, RESEND_FROM_EMAIL and
// MODERATION_EMAILS. It returns nil when any of them is missing.
func NewEmailNotifier(cfg map[string]string) *EmailNotifier {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	recipients := config.GetList(cfg, "MODERATION_EMAILS")
	if apiKey == "" || from == "" || len(recipients) == 0 {
		return nil
	}
	return &EmailNotifier{
		apiKey:     apiKey,
		from:       from,
		recipients: recipients,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, subject, htmlBody string) error {
	payload, err := json.Marshal(resendEmailRequest{
		From:    n.from,
		To:      n.recipients,
		Subject: subject,
		Html:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp resendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse resendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}

func pendingCommentEmail(postID uint, name, body string) (string, string) {
	subject := fmt.Sprintf("Novo comentário aguardando moderação (post %d)", postID)
	htmlBody := fmt.Sprintf("<p><strong>%s</strong> comentou:</p><blockquote>%s</blockquote>",
		html.EscapeString(name), html.EscapeString(body))
	return subject, htmlBody
}
