// Package mailer delivers outreach emails to candidates.
package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"net/mail"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/octobees/hireloop/api/internal/config"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends a message or reports why it could not.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a Gmail mailer when credentials are configured and a log-only mailer otherwise.
func New(ctx context.Context, cfg config.MailConfig) (Mailer, error) {
	if !cfg.Enabled() {
		return LogMailer{}, nil
	}
	return NewGmailMailer(ctx, cfg.CredentialsFile, cfg.TokenFile, cfg.Sender)
}

// LogMailer records messages in the log without delivering them.
type LogMailer struct{}

// Send implements Mailer.
func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("mail delivery=disabled to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

// GmailMailer sends through the Gmail API as the authorized account.
type GmailMailer struct {
	service *gmail.Service
	sender  string
}

// NewGmailMailer reads OAuth client credentials and a previously authorized token from disk.
// Extra client options are appended after the authorized HTTP client.
func NewGmailMailer(ctx context.Context, credentialsFile, tokenFile, sender string, opts ...option.ClientOption) (*GmailMailer, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read gmail token: %w", err)
	}

	// Token refreshes happen for the life of the process, not the startup deadline.
	client := oauthCfg.Client(context.WithoutCancel(ctx), tok)
	srv, err := gmail.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailMailer{service: srv, sender: sender}, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Send implements Mailer.
func (g *GmailMailer) Send(ctx context.Context, msg Message) error {
	raw, err := BuildMIME(g.sender, msg, time.Now())
	if err != nil {
		return err
	}
	_, err = g.service.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}

// BuildMIME renders msg as an RFC 5322 plain-text message. An empty sender omits
// the From header so Gmail fills in the authorized account.
func BuildMIME(sender string, msg Message, date time.Time) ([]byte, error) {
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}

	var b strings.Builder
	if sender != "" {
		from, err := mail.ParseAddress(sender)
		if err != nil {
			return nil, fmt.Errorf("invalid sender %q: %w", sender, err)
		}
		fmt.Fprintf(&b, "From: %s\r\n", from.String())
	}
	fmt.Fprintf(&b, "To: %s\r\n", to.String())
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String()), nil
}
