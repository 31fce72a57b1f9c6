// Package txn runs multi-collection writes inside a mongo transaction when
// the deployment supports one, and falls back to sequential writes when it
// does not (standalone servers and some DocumentDB versions reject sessions).
//
// Rotating a czar touches both the rooms collection and the credential
// side-table; running both writes under one transaction keeps the two from
// drifting apart when the server allows it.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn within a session transaction. If the server does not
// support transactions, fn runs once outside any session instead. The
// fallback is not atomic: writes fn made before a failure stay applied, so
// callers that cannot tolerate partial state must compensate on error.
func Run(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Info("mongo transactions unsupported; applying writes sequentially")
		}
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err means the deployment cannot run
// transactions at all (as opposed to a transaction that merely failed).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation, 51 CommandNotSupported, 263 OperationNotSupportedInTransaction
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") ||
			strings.Contains(msg, "not supported") ||
			strings.Contains(msg, "session") ||
			strings.Contains(msg, "illegal operation")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
