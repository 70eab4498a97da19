package printing

import (
	"context"
	"fmt"

	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

// LogSpooler is the shipped Printer implementation. Thermal transport
// lives on the device beside the register; the backend spools the text
// to the log so a print bridge can tail it.
type LogSpooler struct {
	logg *logger.Logger
}

// NewLogSpooler builds a spooler bound to the shared logger.
func NewLogSpooler(logg *logger.Logger) (*LogSpooler, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &LogSpooler{logg: logg}, nil
}

// Connected always reports true; the log sink is always available.
func (s *LogSpooler) Connected() bool {
	return true
}

// Print writes the receipt text to the structured log.
func (s *LogSpooler) Print(ctx context.Context, text string) error {
	ctx = s.logg.WithField(ctx, "event", "receipt.print")
	ctx = s.logg.WithField(ctx, "receipt", text)
	s.logg.Info(ctx, "receipt spooled")
	return nil
}
