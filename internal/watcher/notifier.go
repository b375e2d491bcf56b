package watcher

import (
	"github.com/gen2brain/beeep"
)

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier sends native desktop notifications.
type DesktopNotifier struct{}

// NewDesktopNotifier creates a notifier using the platform notification
// facility.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// Notify shows a desktop notification.
func (n *DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}
