package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultLoginBase = "https://login.microsoftonline.com"
	defaultGraphBase = "https://graph.microsoft.com/v1.0"
	graphScope       = "https://graph.microsoft.com/.default"
)

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Sender       string // mailbox the API sends as

	// LoginBase and GraphBase override the endpoints in tests.
	LoginBase string
	GraphBase string
}

// Client sends transactional mail through the graph-style API using an
// OAuth client-credentials grant.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens *TokenCache
}

func NewClient(cfg Config) *Client {
	if cfg.LoginBase == "" {
		cfg.LoginBase = defaultLoginBase
	}
	if cfg.GraphBase == "" {
		cfg.GraphBase = defaultGraphBase
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
	c.tokens = NewTokenCache(c.fetchToken, time.Now)
	return c
}

func (c *Client) fetchToken(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("scope", graphScope)

	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.cfg.LoginBase, c.cfg.TenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token endpoint responded %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", 0, fmt.Errorf("parse token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, fmt.Errorf("token endpoint returned an empty token")
	}
	return payload.AccessToken, time.Duration(payload.ExpiresIn) * time.Second, nil
}

type graphMessage struct {
	Message struct {
		Subject string `json:"subject"`
		Body    struct {
			ContentType string `json:"contentType"`
			Content     string `json:"content"`
		} `json:"body"`
		ToRecipients []struct {
			EmailAddress struct {
				Address string `json:"address"`
			} `json:"emailAddress"`
		} `json:"toRecipients"`
	} `json:"message"`
	SaveToSentItems bool `json:"saveToSentItems"`
}

// SendMail sends one HTML email as the configured sender.
func (c *Client) SendMail(ctx context.Context, to, subject, htmlBody string) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("obtain mail token: %w", err)
	}

	var msg graphMessage
	msg.Message.Subject = subject
	msg.Message.Body.ContentType = "HTML"
	msg.Message.Body.Content = htmlBody
	msg.Message.ToRecipients = make([]struct {
		EmailAddress struct {
			Address string `json:"address"`
		} `json:"emailAddress"`
	}, 1)
	msg.Message.ToRecipients[0].EmailAddress.Address = to
	msg.SaveToSentItems = true

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/users/%s/sendMail", c.cfg.GraphBase, url.PathEscape(c.cfg.Sender))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sendMail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendMail responded %d: %s", resp.StatusCode, body)
	}
	return nil
}
