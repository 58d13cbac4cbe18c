// Package resilience groups the fault tolerance helpers used around the database:
//
//   - circuitbreaker wraps the connection pool so a failing database is not
//     hammered by every request
//   - retry reconnects with exponential backoff and jitter at startup
//
// Usage Example:
//
//	err := retry.Do(ctx, retry.Startup(), func() error {
//	    conn, dialect, err = db.Open(ctx, url, poolCfg)
//	    return err
//	})
//	q := circuitbreaker.NewGuardedDB(conn, db.IsClientError)
package resilience
