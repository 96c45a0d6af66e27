package utils

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/interfaces"
	"commerce-core/internal/schemas"
)

// BeginTransaction starts a database transaction with a 10 second deadline.
// It returns the transaction, the transaction context, and the cancel
// function. On failure it writes the error response and returns nils.
func BeginTransaction(c *gin.Context, pool interfaces.PgxPoolIface) (pgx.Tx, context.Context, context.CancelFunc) {
	transactionCtx, cancel := context.WithDeadline(c.Request.Context(), time.Now().Add(10*time.Second))

	tx, err := pool.Begin(transactionCtx)
	if err != nil {
		WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		cancel()
		return nil, nil, nil
	}

	return tx, transactionCtx, cancel
}

// RollbackTransaction rolls the transaction back if an error occurred.
// A rollback after commit is a no-op (pgx.ErrTxClosed is swallowed).
func RollbackTransaction(c *gin.Context, tx pgx.Tx, ctx context.Context, cancel context.CancelFunc, err error) {
	if err != nil {
		log.Debug("Rolling back transaction due to error: ", err)
		rollbackErr := tx.Rollback(ctx)

		if rollbackErr != nil {
			if errors.Is(rollbackErr, pgx.ErrTxClosed) {
				return
			}

			cancel()
			WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, rollbackErr)
			return
		}
		log.Debug("Transaction rolled back")
	}
}

// CommitTransaction commits the transaction and cancels its context. On
// failure it writes the error response and returns the error.
func CommitTransaction(c *gin.Context, tx pgx.Tx, ctx context.Context, cancel context.CancelFunc) error {
	err := tx.Commit(ctx)
	defer func() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug("Context error: ", ctxErr)
		}
		cancel()
	}()

	if err != nil {
		WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return err
	}

	return nil
}
