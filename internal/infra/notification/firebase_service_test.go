package notification

import (
	"context"
	"testing"

	"pushrelay/internal/domain/entity"

	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFCMSender struct {
	sent      []*messaging.Message
	messageID string
	err       error
}

func (f *fakeFCMSender) Send(_ context.Context, message *messaging.Message) (string, error) {
	f.sent = append(f.sent, message)

	return f.messageID, f.err
}

func TestFirebaseService_Publish(t *testing.T) {
	sender := &fakeFCMSender{messageID: "projects/demo/messages/1"}
	svc := &firebaseService{client: sender}

	value := 42.0
	receipts, err := svc.Publish(context.Background(), "fcm-token", &entity.Notification{
		Title: "Influx Alert: disk",
		Body:  "Disk almost full",
		Sound: "default",
		Data:  map[string]any{"value": &value, "time": "2025-06-01T14:20:00Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, []entity.Receipt{{ID: "projects/demo/messages/1", Status: entity.ReceiptStatusOK}}, receipts)

	require.Len(t, sender.sent, 1)
	message := sender.sent[0]
	assert.Equal(t, "fcm-token", message.Token)
	assert.Equal(t, "Influx Alert: disk", message.Notification.Title)
	assert.Equal(t, "Disk almost full", message.Notification.Body)
	assert.Equal(t, map[string]string{"value": "42", "time": "2025-06-01T14:20:00Z"}, message.Data)
	assert.Equal(t, "default", message.APNS.Payload.Aps.Sound)
	assert.Equal(t, "default", message.Android.Notification.Sound)
}

func TestFirebaseService_Publish_SendError(t *testing.T) {
	svc := &firebaseService{client: &fakeFCMSender{err: errors.New("connection reset")}}

	_, err := svc.Publish(context.Background(), "fcm-token", &entity.Notification{Title: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send notification")
}

func TestFirebaseService_Publish_RejectedTokenIsAFailure(t *testing.T) {
	svc := &firebaseService{
		client:       &fakeFCMSender{err: errors.New("registration token is not a valid FCM registration token")},
		invalidToken: func(error) bool { return true },
	}

	receipts, err := svc.Publish(context.Background(), "stale-token", &entity.Notification{Title: "t"})
	require.ErrorIs(t, err, ErrInvalidFCMToken)
	assert.Contains(t, err.Error(), "not a valid FCM registration token")
	assert.Nil(t, receipts)
}

func TestIsInvalidFCMToken_PlainError(t *testing.T) {
	assert.False(t, isInvalidFCMToken(errors.New("connection reset")))
}

func TestFirebaseService_Name(t *testing.T) {
	assert.Equal(t, "fcm", (&firebaseService{}).Name())
}

func TestStringifyData(t *testing.T) {
	value := 78.5
	var missing *float64

	got := stringifyData(map[string]any{
		"value":   &value,
		"absent":  missing,
		"nothing": nil,
		"time":    "2025-06-01T14:20:00Z",
		"count":   3,
		"ratio":   0.25,
	})

	assert.Equal(t, map[string]string{
		"value": "78.5",
		"time":  "2025-06-01T14:20:00Z",
		"count": "3",
		"ratio": "0.25",
	}, got)
	assert.Nil(t, stringifyData(nil))
}
