// Package platform sends desktop notifications with the host's native
// mechanism.
package platform

// AppName identifies the sender to the notification service.
const AppName = "photoedit"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath, when set, points to an image shown with the notification
	// where supported.
	IconPath string
	// Timeout in milliseconds; zero uses the service default.
	TimeoutMS int32
}
