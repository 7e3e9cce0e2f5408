// Package resilience groups the fault tolerance building blocks: circuit
// breakers for the database and the image store, and retry logic with
// exponential backoff for transient failures.
//
// Usage:
//
//	handle := circuitbreaker.NewDB(sqlDB)
//	repos use handle as their db.Handle
//
//	err := retry.WithBackoff(ctx, retry.DBConfig(), logger, func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
