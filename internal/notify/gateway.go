package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/spotsecure/internal/model"
)

const (
	messagePath    = "/push/2/message"
	messageTitle   = "Parking Confirmation - SpotSecure"
	channelPush    = "push"
	defaultTimeout = 10 * time.Second

	// authScheme is sent as "Authorization: App <key>".
	authScheme = "App"
)

// Config holds the push-messaging endpoint settings.
type Config struct {
	BaseURL string
	AppKey  string
	Timeout time.Duration
}

// Message is the JSON body of an outbound push request.
type Message struct {
	To      string `json:"to"`
	Body    string `json:"body"`
	Title   string `json:"title"`
	Channel string `json:"channel"`
}

// Gateway sends parking confirmations to vehicle owners.
type Gateway struct {
	httpClient *http.Client
	endpoint   string
	enabled    bool
	log        *zap.Logger
}

// NewGateway creates a Gateway. Without an app key or base URL the gateway is
// disabled and Notify is a no-op.
func NewGateway(ctx context.Context, cfg Config, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.AppKey,
		TokenType:   authScheme,
	})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = timeout

	return &Gateway{
		httpClient: client,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + messagePath,
		enabled:    cfg.AppKey != "" && cfg.BaseURL != "",
		log:        log,
	}
}

// Enabled reports whether the gateway will issue requests.
func (g *Gateway) Enabled() bool {
	return g.enabled
}

// NewMessage builds the confirmation message for e.
func NewMessage(e model.Entry) Message {
	return Message{
		To: e.MobileNumber,
		Body: fmt.Sprintf("Dear %s, your car (%s) has been successfully added to the parking slot. "+
			"Entry time: %s, Exit time: %s. Thank you for choosing SpotSecure!",
			e.Owner, e.LicensePlate, e.EntryTime, e.ExitTime),
		Title:   messageTitle,
		Channel: channelPush,
	}
}

// Notify sends one confirmation for e. Entries without a mobile number are
// skipped silently. There is no retry.
func (g *Gateway) Notify(ctx context.Context, e model.Entry) error {
	if e.MobileNumber == "" {
		return nil
	}
	if !g.enabled {
		g.log.Debug("notification gateway disabled, skipping", zap.String("id", e.ID))
		return nil
	}

	payload, err := json.Marshal(NewMessage(e))
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &Error{Kind: TransportFailure, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: TransportFailure, Err: err}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	if err != nil {
		return &Error{Kind: TransportFailure, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: NonSuccessResponse, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
