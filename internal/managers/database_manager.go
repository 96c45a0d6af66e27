// Package managers wraps the external collaborators (database, session
// cache, mail, media host, token signing) behind small interfaces so that
// handlers stay testable.
package managers

import (
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/interfaces"
)

// DatabaseMgr provides access to the database connection pool.
type DatabaseMgr interface {
	GetPool() interfaces.PgxPoolIface
}

// DatabaseManager owns the pgx connection pool. The pool is opened once at
// startup and closed on shutdown by the initializer.
type DatabaseManager struct {
	Pool interfaces.PgxPoolIface
}

// GetPool returns the database connection pool.
func (dbMgr *DatabaseManager) GetPool() interfaces.PgxPoolIface {
	return dbMgr.Pool
}

// NewDatabaseManager creates a DatabaseManager around an open pool.
func NewDatabaseManager(pool interfaces.PgxPoolIface) DatabaseMgr {
	log.Info("Initializing database manager")
	return &DatabaseManager{Pool: pool}
}
