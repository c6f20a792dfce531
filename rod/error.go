package rod

import (
	"context"
	"errors"

	"github.com/fwojciec/vidcat"
	"github.com/go-rod/rod"
)

// WrapError translates a driver error into an application error. Expired
// deadlines become ETIMEOUT and failed navigations ENAVIGATE. Cancellation
// is returned unchanged. Everything else is EDRIVER.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var navErr *rod.NavigationError
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return vidcat.Errorf(vidcat.ETIMEOUT, "%s: timed out", op)
	case errors.As(err, &navErr):
		return vidcat.Errorf(vidcat.ENAVIGATE, "%s: %s", op, navErr.Reason)
	}
	return vidcat.Errorf(vidcat.EDRIVER, "%s: %v", op, err)
}
