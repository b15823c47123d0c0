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

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

// DefaultResendURL is the Resend e-mail endpoint.
const DefaultResendURL = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer sends e-mail through the Resend API.
type Mailer struct {
	endpoint   string
	apiKey     string
	fromEmail  string
	httpClient *http.Client
}

// NewMailer returns nil when Resend is not configured, which disables
// notifications.
func NewMailer(endpoint, apiKey, fromEmail string) *Mailer {
	if apiKey == "" || fromEmail == "" {
		return nil
	}
	if endpoint == "" {
		endpoint = DefaultResendURL
	}
	return &Mailer{
		endpoint:   endpoint,
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SendEmail sends an HTML e-mail to recipients.
func (m *Mailer) SendEmail(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    m.fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}

// NotifyNewComment tells the project owner that someone commented.
// Comments by the owner and owners without an address are skipped.
func (m *Mailer) NotifyNewComment(ctx context.Context, project models.Project, comment models.Comment, projectURL string) error {
	if m == nil || project.User == nil || project.User.Email == "" {
		return nil
	}
	if comment.UserID == project.UserID {
		return nil
	}

	commenter := "익명"
	if comment.User != nil && comment.User.DisplayName != "" {
		commenter = comment.User.DisplayName
	}

	subject := fmt.Sprintf("💬 \"%s\"에 새 댓글이 달렸어요", project.Title)
	body := fmt.Sprintf(
		"<p><strong>%s</strong>님이 댓글을 남겼습니다.</p><blockquote>%s</blockquote><p><a href=\"%s\">프로젝트 보러 가기</a></p>",
		html.EscapeString(commenter),
		html.EscapeString(comment.Content),
		html.EscapeString(projectURL),
	)
	return m.SendEmail(ctx, subject, body, []string{project.User.Email})
}
