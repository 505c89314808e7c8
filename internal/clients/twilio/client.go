package twilio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/reservas/internal/common/logger"
	twilioSDK "github.com/twilio/twilio-go"
	twilioClient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

const (
	// DefaultFrom is the Twilio WhatsApp sandbox number
	DefaultFrom = "whatsapp:+14155238886"

	whatsAppPrefix = "whatsapp:"
	defaultTimeout = 10 * time.Second
)

// Config holds configuration for the Twilio client
type Config struct {
	AccountSID string
	AuthToken  string

	// From is the sending WhatsApp address
	From string

	// BaseURL replaces the Twilio API host; tests point it at a local server
	BaseURL string

	HTTPClient *http.Client

	Logger *zap.Logger
}

// Message is the part of a Twilio message resource the client reads back
type Message struct {
	SID    string
	To     string
	From   string
	Status string
}

// APIError is the error Twilio returns for a rejected request
type APIError struct {
	Code       int
	Message    string
	MoreInfo   string
	HTTPStatus int
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("twilio: %d %s (code %d)", e.HTTPStatus, e.Message, e.Code)
}

// Client sends WhatsApp messages through the Twilio Messages API
type Client struct {
	accountSID string
	from       string
	rest       *twilioSDK.RestClient
	logger     *zap.Logger
}

// New creates a new Twilio client
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, errors.New("account SID and auth token are required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
		if err != nil || base.Host == "" {
			return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
		}

		next := httpClient.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		rewritten := *httpClient
		rewritten.Transport = &baseURLTransport{base: base, next: next}
		httpClient = &rewritten
	}

	base := &twilioClient.Client{
		Credentials: twilioClient.NewCredentials(cfg.AccountSID, cfg.AuthToken),
		HTTPClient:  httpClient,
	}
	base.SetAccountSid(cfg.AccountSID)

	c := &Client{
		accountSID: cfg.AccountSID,
		from:       cfg.From,
		rest:       twilioSDK.NewRestClientWithParams(twilioSDK.ClientParams{Client: base}),
		logger:     logger.OrNop(cfg.Logger),
	}
	if c.from == "" {
		c.from = DefaultFrom
	}

	return c, nil
}

// Send delivers text to a WhatsApp recipient. Bare phone numbers get the whatsapp: prefix.
func (c *Client) Send(ctx context.Context, recipient, text string) error {
	_, err := c.CreateMessage(ctx, recipient, text)
	return err
}

// CreateMessage posts a message and returns the created resource.
// The SDK call takes no context, so a cancelled ctx abandons the wait but not the request.
func (c *Client) CreateMessage(ctx context.Context, recipient, text string) (*Message, error) {
	if recipient == "" {
		return nil, errors.New("recipient cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(recipient, whatsAppPrefix) {
		recipient = whatsAppPrefix + recipient
	}

	params := &openapi.CreateMessageParams{}
	params.SetPathAccountSid(c.accountSID)
	params.SetFrom(c.from)
	params.SetTo(recipient)
	params.SetBody(text)

	type result struct {
		msg *openapi.ApiV2010Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := c.rest.Api.CreateMessage(params)
		done <- result{msg: msg, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		var restErr *twilioClient.TwilioRestError
		if errors.As(res.err, &restErr) {
			return nil, &APIError{
				Code:       restErr.Code,
				Message:    restErr.Message,
				MoreInfo:   restErr.MoreInfo,
				HTTPStatus: restErr.Status,
			}
		}
		return nil, fmt.Errorf("failed to send message: %w", res.err)
	}

	msg := &Message{
		SID:    deref(res.msg.Sid),
		To:     deref(res.msg.To),
		From:   deref(res.msg.From),
		Status: deref(res.msg.Status),
	}

	c.logger.Debug("twilio message created",
		zap.String("sid", msg.SID),
		zap.String("to", msg.To),
		zap.String("status", msg.Status),
	)

	return msg, nil
}

// baseURLTransport sends every request to base instead of the Twilio host
type baseURLTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *baseURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.base.Scheme
	req.URL.Host = t.base.Host
	req.Host = t.base.Host
	return t.next.RoundTrip(req)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
