package notification

import (
	"context"
	"fmt"
	"strconv"

	"pushrelay/internal/domain/constants"
	"pushrelay/internal/domain/entity"
	"pushrelay/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// fcmSender is the part of messaging.Client the service relies on.
type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// ErrInvalidFCMToken is returned when FCM rejects the registration token.
var ErrInvalidFCMToken = errors.New("invalid FCM registration token")

type firebaseService struct {
	client       fcmSender
	invalidToken func(error) bool
}

func isInvalidFCMToken(err error) bool {
	return messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err)
}

// NewFirebaseService creates a Firebase Cloud Messaging push service
func NewFirebaseService(ctx context.Context, projectID, credentialsPath string) (service.PushService, error) {
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{client: client, invalidToken: isInvalidFCMToken}, nil
}

func (s *firebaseService) Name() string {
	return constants.ProviderFCM
}

// Publish sends the notification to a single FCM registration token.
func (s *firebaseService) Publish(ctx context.Context, token string, notification *entity.Notification) ([]entity.Receipt, error) {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: stringifyData(notification.Data),
	}
	if notification.Sound != "" {
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: notification.Sound}},
		}
		message.Android = &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{Sound: notification.Sound},
		}
	}

	messageID, err := s.client.Send(ctx, message)
	if err != nil {
		if s.invalidToken != nil && s.invalidToken(err) {
			return nil, errors.WithMessage(ErrInvalidFCMToken, err.Error())
		}

		return nil, errors.Wrap(err, "failed to send notification")
	}

	return []entity.Receipt{{ID: messageID, Status: entity.ReceiptStatusOK}}, nil
}

// stringifyData flattens a notification payload into FCM's string-only data map.
// Nil values are dropped.
func stringifyData(data map[string]any) map[string]string {
	if len(data) == 0 {
		return nil
	}

	out := make(map[string]string, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case nil:
		case *float64:
			if v != nil {
				out[key] = strconv.FormatFloat(*v, 'f', -1, 64)
			}
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprint(v)
		}
	}

	return out
}
