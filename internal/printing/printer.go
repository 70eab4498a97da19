package printing

import "context"

// Printer transmits already-formatted receipt text to a device. The
// formatter owns layout; implementations own transport only.
type Printer interface {
	Connected() bool
	Print(ctx context.Context, text string) error
}
