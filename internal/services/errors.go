package services

import (
	"errors"
	"fmt"

	"flowstate/internal/fieldmap"
	"flowstate/internal/repositories"
	"flowstate/pkg/utils"
)

// repoError maps data layer failures onto the service sentinels the HTTP
// layer understands.
func repoError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fieldmap.ErrInvalidValue):
		return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	case errors.Is(err, repositories.ErrPoolUnavailable):
		return fmt.Errorf("%w: %s: %w", utils.ErrServiceBusy, op, err)
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return fmt.Errorf("%w: referenced record does not exist", utils.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: %s: %w", utils.ErrDatabaseError, op, err)
	}
}
