// Package email provides a small wrapper around the Resend email API.
//
// It renders the HTML body from an embedded template and sends it.
package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/deppfellow/registry/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const defaultFrom = "Registry <onboarding@resend.dev>"

// Sender is the part of the Resend SDK the client uses.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	// sender delivers the rendered message; it is the Resend Emails service.
	sender Sender

	// from is the sender identity. Resend requires a verified domain for
	// anything other than its onboarding address.
	from string

	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration config.
//
// It returns nil when no Resend API key is configured; callers treat a nil
// client as "email disabled".
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	if cfg.Integration.ResendAPIKey == "" {
		return nil
	}

	from := cfg.Integration.EmailFrom
	if from == "" {
		from = defaultFrom
	}

	return NewClientWithSender(resend.NewClient(cfg.Integration.ResendAPIKey).Emails, from, logger)
}

// NewClientWithSender builds a Client on top of any Sender.
func NewClientWithSender(sender Sender, from string, logger *zerolog.Logger) *Client {
	return &Client{sender: sender, from: from, logger: logger}
}

// Render executes the named template with data.
func Render(templateName Template, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(templateName)+".html", data); err != nil {
		// pkg/errors.Wrapf adds context while preserving stack trace.
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := c.sender.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("email_id", resp.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}

// LowStockData is what the low_stock template renders.
type LowStockData struct {
	Name            string
	Code            string
	StockQuantity   int32
	MinStockLevel   int32
	StorageLocation string
}

// SendLowStockAlert tells to that a supply has run low.
func (c *Client) SendLowStockAlert(ctx context.Context, to string, data LowStockData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("Low stock: %s (%s)", data.Name, data.Code),
		TemplateLowStock,
		data,
	)
}
