// Package expo is a client for the Expo push notification service.
package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"pushrelay/config"
	"pushrelay/internal/domain/constants"
	"pushrelay/internal/domain/entity"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

const (
	pushSendPath     = "/--/api/v2/push/send"
	maxResponseBytes = 1 << 20
)

var (
	// ErrInvalidPushToken is returned before any network call for tokens the
	// Expo service would not accept.
	ErrInvalidPushToken = errors.New("invalid Expo push token")

	// ErrMissingAccessToken is returned when no access token is available at send time.
	ErrMissingAccessToken = errors.New("expo push access token is not set")

	expoTokenPattern = regexp.MustCompile(`^Expo(nent)?PushToken\[.+\]$`)
	bareTokenPattern = regexp.MustCompile(`(?i)^[a-z\d]{8}-[a-z\d]{4}-[a-z\d]{4}-[a-z\d]{4}-[a-z\d]{12}$`)
)

// IsPushToken reports whether token has a shape the Expo service accepts.
func IsPushToken(token string) bool {
	return expoTokenPattern.MatchString(token) || bareTokenPattern.MatchString(token)
}

// Message is one entry of a push request.
type Message struct {
	To    string         `json:"to"`
	Title string         `json:"title,omitempty"`
	Body  string         `json:"body,omitempty"`
	Sound string         `json:"sound,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// Ticket is the per-message result of a push request.
type Ticket struct {
	ID      string         `json:"id,omitempty"`
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorDetail is one request-level error reported by the push service.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type pushResponse struct {
	Data   []Ticket      `json:"data"`
	Errors []ErrorDetail `json:"errors"`
}

// PushServerError is returned when the push service rejects a whole request.
type PushServerError struct {
	StatusCode int
	Errors     []ErrorDetail
	Body       string
}

func (e *PushServerError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("push service returned status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
	}

	parts := make([]string, 0, len(e.Errors))
	for _, detail := range e.Errors {
		parts = append(parts, detail.Code+": "+detail.Message)
	}

	return fmt.Sprintf("push service returned status %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// Retryable reports whether the same request may succeed later.
func (e *PushServerError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Options configures a Client
type Options struct {
	APIURL string

	// AccessToken is consulted on every send so credentials can be supplied
	// after startup.
	AccessToken func() string

	BatchSize  int
	HTTPClient *http.Client

	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Client sends push messages to the Expo service.
type Client struct {
	apiURL          string
	accessToken     func() string
	batchSize       int
	httpClient      *http.Client
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// EnvAccessToken reads the access token from the named environment variable.
func EnvAccessToken(name string) func() string {
	return func() string {
		return strings.TrimSpace(os.Getenv(name))
	}
}

// NewClient creates a client; zero options fall back to the Expo defaults.
func NewClient(opts Options) *Client {
	apiURL := strings.TrimRight(opts.APIURL, "/")
	if apiURL == "" {
		apiURL = config.DefaultExpoAPIURL
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 || batchSize > config.MaxExpoBatchSize {
		batchSize = config.MaxExpoBatchSize
	}

	accessToken := opts.AccessToken
	if accessToken == nil {
		accessToken = EnvAccessToken(config.DefaultExpoAccessTokenEnv)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		apiURL:          apiURL,
		accessToken:     accessToken,
		batchSize:       batchSize,
		httpClient:      httpClient,
		maxRetries:      max(opts.MaxRetries, 0),
		initialInterval: opts.InitialInterval,
		maxInterval:     opts.MaxInterval,
	}
}

// NewFromConfig builds the client described by the expo config section.
func NewFromConfig(cfg *config.Config) *Client {
	return NewClient(Options{
		APIURL:          cfg.Expo.APIURL,
		AccessToken:     EnvAccessToken(cfg.Expo.AccessTokenEnv),
		BatchSize:       cfg.Expo.BatchSize,
		HTTPClient:      &http.Client{Timeout: cfg.Expo.RequestTimeout},
		MaxRetries:      cfg.Expo.Retry.MaxRetries,
		InitialInterval: cfg.Expo.Retry.InitialInterval,
		MaxInterval:     cfg.Expo.Retry.MaxInterval,
	})
}

// Name identifies the provider
func (c *Client) Name() string {
	return constants.ProviderExpo
}

// Publish sends one notification to token.
func (c *Client) Publish(ctx context.Context, token string, notification *entity.Notification) ([]entity.Receipt, error) {
	message := Message{
		To:    token,
		Title: notification.Title,
		Body:  notification.Body,
		Sound: notification.Sound,
		Data:  notification.Data,
	}

	tickets, err := c.PublishMultiple(ctx, []Message{message})
	if err != nil {
		return nil, err
	}

	receipts := make([]entity.Receipt, 0, len(tickets))
	for _, ticket := range tickets {
		receipts = append(receipts, entity.Receipt{
			ID:      ticket.ID,
			Status:  ticket.Status,
			Message: ticket.Message,
			Details: ticket.Details,
		})
	}

	return receipts, nil
}

// PublishMultiple validates messages, splits them into batches and sends each
// batch. The first failing batch aborts the call.
func (c *Client) PublishMultiple(ctx context.Context, messages []Message) ([]Ticket, error) {
	accessToken := c.accessToken()
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	for _, message := range messages {
		if !IsPushToken(message.To) {
			return nil, errors.Wrapf(ErrInvalidPushToken, "%q", message.To)
		}
	}

	tickets := make([]Ticket, 0, len(messages))
	for _, chunk := range c.Chunk(messages) {
		chunkTickets, err := c.sendWithRetry(ctx, accessToken, chunk)
		if err != nil {
			return nil, errors.Wrap(err, "error sending push notification")
		}
		tickets = append(tickets, chunkTickets...)
	}

	return tickets, nil
}

// Chunk splits messages into batches the push service accepts.
func (c *Client) Chunk(messages []Message) [][]Message {
	chunks := make([][]Message, 0, (len(messages)+c.batchSize-1)/c.batchSize)
	for start := 0; start < len(messages); start += c.batchSize {
		end := min(start+c.batchSize, len(messages))
		chunks = append(chunks, messages[start:end])
	}

	return chunks
}

func (c *Client) sendWithRetry(ctx context.Context, accessToken string, messages []Message) ([]Ticket, error) {
	var tickets []Ticket

	operation := func() error {
		result, retryable, err := c.send(ctx, accessToken, messages)
		if err != nil {
			if !retryable {
				return backoff.Permanent(err)
			}

			return err
		}
		tickets = result

		return nil
	}

	if err := backoff.Retry(operation, c.newBackOff(ctx)); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	if c.initialInterval > 0 {
		exponential.InitialInterval = c.initialInterval
	}
	if c.maxInterval > 0 {
		exponential.MaxInterval = c.maxInterval
	}
	// attempts are bounded by MaxRetries, not by wall time
	exponential.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(c.maxRetries)), ctx)
}

// send performs one HTTP request and reports whether a failure is worth retrying.
func (c *Client) send(ctx context.Context, accessToken string, messages []Message) ([]Ticket, bool, error) {
	payload, err := json.Marshal(messages)
	if err != nil {
		return nil, false, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+pushSendPath, bytes.NewReader(payload))
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, errors.Wrap(err, "push request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, true, errors.Wrap(err, "read push response")
	}

	var parsed pushResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		serverErr := &PushServerError{
			StatusCode: resp.StatusCode,
			Errors:     parsed.Errors,
			Body:       string(raw),
		}

		return nil, serverErr.Retryable(), serverErr
	}

	if decodeErr != nil {
		return nil, false, errors.Wrap(decodeErr, "decode push response")
	}

	if len(parsed.Errors) > 0 && len(parsed.Data) == 0 {
		return nil, false, &PushServerError{StatusCode: resp.StatusCode, Errors: parsed.Errors, Body: string(raw)}
	}

	if len(parsed.Data) != len(messages) {
		return nil, false, errors.Errorf("push service returned %d tickets for %d messages", len(parsed.Data), len(messages))
	}

	return parsed.Data, false, nil
}
