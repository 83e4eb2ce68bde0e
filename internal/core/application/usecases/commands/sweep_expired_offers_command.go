package commands

import (
	"errors"
	"time"

	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var ErrSweepExpiredOffersCommandIsNotConstructed = errors.New(
	"SweepExpiredOffersCommand must be created via NewSweepExpiredOffersCommand constructor",
)

// SweepExpiredOffersCommand runs one sweep over offers stale at now.
type SweepExpiredOffersCommand struct {
	now   time.Time
	guard guard.ConstructorGuard
}

func NewSweepExpiredOffersCommand(now time.Time) (SweepExpiredOffersCommand, error) {
	if now.IsZero() {
		return SweepExpiredOffersCommand{}, errs.NewValueIsRequiredError("now")
	}
	return SweepExpiredOffersCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c SweepExpiredOffersCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredOffersCommandIsNotConstructed)
}

func (c SweepExpiredOffersCommand) Now() time.Time { return c.now }
