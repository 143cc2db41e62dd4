// Package clipboard copies rendered snapshot output to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// copyFailedFormat wraps clipboard write failures.
const copyFailedFormat = "copying snapshot to clipboard: %w"

// Copier copies rendered snapshot text to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf(copyFailedFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
