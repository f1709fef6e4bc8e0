// Package constants holds identifiers shared across layers.
package constants

const (
	// TagUserID is the alert tag naming the user whose devices are notified.
	TagUserID = "userId"

	// ProviderExpo delivers through the Expo push API.
	ProviderExpo = "expo"
	// ProviderFCM delivers through Firebase Cloud Messaging.
	ProviderFCM = "fcm"
)
