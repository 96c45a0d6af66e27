package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestSweepDeletesExpiredReadNotifications(t *testing.T) {
	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer poolMock.Close()

	// The retention cutoff travels as a bound parameter.
	poolMock.ExpectExec("DELETE FROM notifications").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	sweeper := NewNotificationSweeper(poolMock)
	sweeper.sweep(context.Background())

	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestSweepSurvivesDatabaseError(t *testing.T) {
	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer poolMock.Close()

	poolMock.ExpectExec("DELETE FROM notifications").
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	sweeper := NewNotificationSweeper(poolMock)
	sweeper.sweep(context.Background())

	require.NoError(t, poolMock.ExpectationsWereMet())
}
