package rod_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/vidcat"
	"github.com/fwojciec/vidcat/rod"
	gorod "github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"deadline", context.DeadlineExceeded, vidcat.ETIMEOUT},
		{"wrapped deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), vidcat.ETIMEOUT},
		{"navigation", &gorod.NavigationError{Reason: "net::ERR_NAME_NOT_RESOLVED"}, vidcat.ENAVIGATE},
		{"other", errors.New("websocket closed"), vidcat.EDRIVER},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := rod.WrapError("navigate", tt.err)

			require.Error(t, err)
			assert.Equal(t, tt.code, vidcat.ErrorCode(err))
			assert.Contains(t, vidcat.ErrorMessage(err), "navigate")
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, rod.WrapError("navigate", nil))
	})

	t.Run("passes cancellation through", func(t *testing.T) {
		t.Parallel()

		err := rod.WrapError("navigate", context.Canceled)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("navigation reason in message", func(t *testing.T) {
		t.Parallel()

		err := rod.WrapError("navigate", &gorod.NavigationError{Reason: "net::ERR_CONNECTION_REFUSED"})

		assert.Contains(t, vidcat.ErrorMessage(err), "ERR_CONNECTION_REFUSED")
		assert.True(t, vidcat.IsTransient(err))
	})
}
