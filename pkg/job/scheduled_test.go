package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledTaskExecutor_Execute(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		called := false
		executor := &scheduledTaskExecutor{handler: func(ctx context.Context) error {
			called = true
			return nil
		}}

		require.NoError(t, executor.Execute(context.Background()))
		assert.True(t, called)
	})

	t.Run("handler error", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("handler failed")
		executor := &scheduledTaskExecutor{handler: func(ctx context.Context) error {
			return expectedErr
		}}

		assert.ErrorIs(t, executor.Execute(context.Background()), expectedErr)
	})
}
