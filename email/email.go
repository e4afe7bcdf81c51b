// Package email sends transactional mail (password resets). The active
// client handle is shared across requests behind a mutex, so sends are
// serialized.
package email

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"server/config"
)

type Client interface {
	SendMessage(address, subject, body string) error
}

type Emailer struct {
	mu     sync.Mutex
	client Client
}

func Init() *Emailer {
	if config.MAILGUN_KEY != "" && config.MAILGUN_DOMAIN != "" {
		return &Emailer{client: &mailgunClient{
			key:    config.MAILGUN_KEY,
			domain: config.MAILGUN_DOMAIN,
			from:   "noreply@" + config.MAILGUN_DOMAIN,
			http:   &http.Client{Timeout: 10 * time.Second},
		}}
	}
	log.Println("Mailgun not configured, using log-only emailer")
	return &Emailer{client: &logOnlyClient{}}
}

func (e *Emailer) SendMessage(address, subject, body string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.SendMessage(address, subject, body)
}

// Sent returns messages captured by the log-only client, for tests
func (e *Emailer) Sent() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l, ok := e.client.(*logOnlyClient); ok {
		return l.sent
	}
	return nil
}

type mailgunClient struct {
	key    string
	domain string
	from   string
	http   *http.Client
}

func (m *mailgunClient) SendMessage(address, subject, body string) error {
	form := url.Values{}
	form.Set("from", m.from)
	form.Set("to", address)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := "https://api.mailgun.net/v3/" + m.domain + "/messages"
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth("api", m.key)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailgun returned status %d", resp.StatusCode)
	}
	return nil
}

// logOnlyClient is the fallback for development and tests
type logOnlyClient struct {
	sent []string
}

func (l *logOnlyClient) SendMessage(address, subject, body string) error {
	log.Printf("Sending message to '%s': '%s'", address, subject)
	l.sent = append(l.sent, fmt.Sprintf("<%s>::[%s]", address, body))
	return nil
}
