package expo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pushrelay/config"
	"pushrelay/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessToken = "test-access-token"

// fakePushServer answers push requests with handle and records every batch it received.
type fakePushServer struct {
	*httptest.Server
	requests atomic.Int32
	batches  chan []Message
}

func newFakePushServer(t *testing.T, handle func(w http.ResponseWriter, batch []Message, attempt int32)) *fakePushServer {
	t.Helper()

	fake := &fakePushServer{batches: make(chan []Message, 16)}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempt := fake.requests.Add(1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, pushSendPath, r.URL.Path)
		assert.Equal(t, "Bearer "+testAccessToken, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var batch []Message
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&batch)) {
			w.WriteHeader(http.StatusBadRequest)

			return
		}
		fake.batches <- batch

		handle(w, batch, attempt)
	}))
	t.Cleanup(fake.Close)

	return fake
}

func okTickets(w http.ResponseWriter, batch []Message) {
	tickets := make([]Ticket, len(batch))
	for i := range batch {
		tickets[i] = Ticket{ID: fmt.Sprintf("ticket-%d", i), Status: entity.ReceiptStatusOK}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(pushResponse{Data: tickets})
}

func newTestClient(serverURL string, opts Options) *Client {
	opts.APIURL = serverURL
	if opts.AccessToken == nil {
		opts.AccessToken = func() string { return testAccessToken }
	}
	if opts.InitialInterval == 0 {
		opts.InitialInterval = time.Millisecond
	}
	if opts.MaxInterval == 0 {
		opts.MaxInterval = 5 * time.Millisecond
	}

	return NewClient(opts)
}

func testNotification() *entity.Notification {
	value := 78.5

	return &entity.Notification{
		Title: "Influx Alert: temperature_high",
		Body:  "CPU Temp > 75°C!",
		Sound: "default",
		Data:  map[string]any{"value": &value, "time": "2025-06-01T14:20:00Z"},
	}
}

func TestIsPushToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{token: "ExponentPushToken[abc]", want: true},
		{token: "ExpoPushToken[xyz-123]", want: true},
		{token: "F5741A13-BCDA-434B-A316-5DC0E6FFA94F", want: true},
		{token: "f5741a13-bcda-434b-a316-5dc0e6ffa94f", want: true},
		{token: "ExponentPushToken[]", want: false},
		{token: "ExponentPushToken", want: false},
		{token: "fcm:APA91bH", want: false},
		{token: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPushToken(tt.token))
		})
	}
}

func TestClient_Publish_Success(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, batch []Message, _ int32) {
		okTickets(w, batch)
	})
	client := newTestClient(fake.URL, Options{})

	receipts, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.NoError(t, err)

	require.Len(t, receipts, 1)
	assert.Equal(t, "ticket-0", receipts[0].ID)
	assert.True(t, receipts[0].OK())

	batch := <-fake.batches
	require.Len(t, batch, 1)
	assert.Equal(t, "ExponentPushToken[abc]", batch[0].To)
	assert.Equal(t, "Influx Alert: temperature_high", batch[0].Title)
	assert.Equal(t, "CPU Temp > 75°C!", batch[0].Body)
	assert.Equal(t, "default", batch[0].Sound)
	assert.InDelta(t, 78.5, batch[0].Data["value"], 1e-9)
	assert.Equal(t, "2025-06-01T14:20:00Z", batch[0].Data["time"])
}

func TestClient_Publish_ErrorTicketIsAReceipt(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, _ []Message, _ int32) {
		_ = json.NewEncoder(w).Encode(pushResponse{Data: []Ticket{{
			Status:  entity.ReceiptStatusError,
			Message: `"ExponentPushToken[abc]" is not a registered push notification recipient`,
			Details: map[string]any{"error": "DeviceNotRegistered"},
		}}})
	})
	client := newTestClient(fake.URL, Options{})

	receipts, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.False(t, receipts[0].OK())
	assert.Equal(t, "DeviceNotRegistered", receipts[0].Details["error"])
}

func TestClient_Publish_MissingAccessToken(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, batch []Message, _ int32) {
		okTickets(w, batch)
	})
	client := newTestClient(fake.URL, Options{AccessToken: func() string { return "" }})

	_, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.ErrorIs(t, err, ErrMissingAccessToken)
	assert.Zero(t, fake.requests.Load())
}

func TestClient_Publish_AccessTokenResolvedAtSendTime(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, batch []Message, _ int32) {
		okTickets(w, batch)
	})
	client := newTestClient(fake.URL, Options{AccessToken: EnvAccessToken("PUSHRELAY_TEST_EXPO_TOKEN")})

	t.Setenv("PUSHRELAY_TEST_EXPO_TOKEN", "")
	_, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.ErrorIs(t, err, ErrMissingAccessToken)

	t.Setenv("PUSHRELAY_TEST_EXPO_TOKEN", testAccessToken)
	receipts, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}

func TestClient_Publish_InvalidTokenSkipsNetwork(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, batch []Message, _ int32) {
		okTickets(w, batch)
	})
	client := newTestClient(fake.URL, Options{})

	_, err := client.Publish(context.Background(), "not-a-token", testNotification())
	require.ErrorIs(t, err, ErrInvalidPushToken)
	assert.Zero(t, fake.requests.Load())
}

func TestClient_PublishMultiple_ChunksBatches(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, batch []Message, _ int32) {
		okTickets(w, batch)
	})
	client := newTestClient(fake.URL, Options{})

	messages := make([]Message, 150)
	for i := range messages {
		messages[i] = Message{To: fmt.Sprintf("ExponentPushToken[%d]", i), Body: "hi"}
	}

	tickets, err := client.PublishMultiple(context.Background(), messages)
	require.NoError(t, err)
	assert.Len(t, tickets, 150)
	assert.Equal(t, int32(2), fake.requests.Load())

	assert.Len(t, <-fake.batches, config.MaxExpoBatchSize)
	assert.Len(t, <-fake.batches, 50)
}

func TestClient_Chunk(t *testing.T) {
	client := NewClient(Options{BatchSize: 2})

	chunks := client.Chunk([]Message{{To: "a"}, {To: "b"}, {To: "c"}})
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 2)
	assert.Len(t, chunks[1], 1)

	assert.Empty(t, client.Chunk(nil))
}

func TestNewClient_ClampsBatchSize(t *testing.T) {
	assert.Equal(t, config.MaxExpoBatchSize, NewClient(Options{BatchSize: 500}).batchSize)
	assert.Equal(t, config.MaxExpoBatchSize, NewClient(Options{}).batchSize)
	assert.Equal(t, 10, NewClient(Options{BatchSize: 10}).batchSize)
	assert.Equal(t, config.DefaultExpoAPIURL, NewClient(Options{}).apiURL)
}

func TestClient_Publish_RetriesServerErrors(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, batch []Message, attempt int32) {
		if attempt < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(pushResponse{Errors: []ErrorDetail{{Code: "INTERNAL_SERVER_ERROR", Message: "try later"}}})

			return
		}
		okTickets(w, batch)
	})
	client := newTestClient(fake.URL, Options{MaxRetries: 2})

	receipts, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
	assert.Equal(t, int32(3), fake.requests.Load())
}

func TestClient_Publish_RetriesExhausted(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, _ []Message, _ int32) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	client := newTestClient(fake.URL, Options{MaxRetries: 1})

	_, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.Error(t, err)

	var serverErr *PushServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusTooManyRequests, serverErr.StatusCode)
	assert.Equal(t, int32(2), fake.requests.Load())
}

func TestClient_Publish_ClientErrorIsNotRetried(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, _ []Message, _ int32) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(pushResponse{Errors: []ErrorDetail{{Code: "UNAUTHORIZED", Message: "bad access token"}}})
	})
	client := newTestClient(fake.URL, Options{MaxRetries: 3})

	_, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED: bad access token")
	assert.Equal(t, int32(1), fake.requests.Load())
}

func TestClient_Publish_TicketCountMismatch(t *testing.T) {
	fake := newFakePushServer(t, func(w http.ResponseWriter, _ []Message, _ int32) {
		_ = json.NewEncoder(w).Encode(pushResponse{Data: []Ticket{}})
	})
	client := newTestClient(fake.URL, Options{MaxRetries: 3})

	_, err := client.Publish(context.Background(), "ExponentPushToken[abc]", testNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 0 tickets for 1 messages")
	assert.Equal(t, int32(1), fake.requests.Load())
}

func TestPushServerError_Retryable(t *testing.T) {
	assert.True(t, (&PushServerError{StatusCode: http.StatusTooManyRequests}).Retryable())
	assert.True(t, (&PushServerError{StatusCode: http.StatusBadGateway}).Retryable())
	assert.False(t, (&PushServerError{StatusCode: http.StatusBadRequest}).Retryable())
}

func TestClient_Name(t *testing.T) {
	assert.Equal(t, "expo", NewClient(Options{}).Name())
}
