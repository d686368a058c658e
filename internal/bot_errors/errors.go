package bot_errors

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
	CodeCheckConstraint      = "23514"
)

var (
	ErrInternal           = errors.New("internal service error. please try again later")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnAuthorized       = errors.New("user not allowed to perform this action")
	ErrNotFound           = errors.New("entity not found")
	ErrPersistenceFailed  = errors.New("persistence failed")
	ErrCatalogUnavailable = errors.New("problem catalog unavailable")
	ErrExhausted          = errors.New("no unposted problem found, catalog likely saturated")
	ErrHttpResponse       = errors.New("error occurred with http response")
	ErrComponentStart     = errors.New("cannot start component")
)

// IsUniqueViolation reports whether err carries a postgres unique key violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueConstraint
}

// HandleDBErrors converts a store error into a service error. Missing rows become
// ErrNotFound, known constraint violations become ErrInvalidRequest with the
// message registered in errMsgs, and everything else is a persistence failure.
func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("%s, %v", contextMessage, ErrNotFound)
		return fmt.Errorf("%w, %s", ErrNotFound, contextMessage)
	}

	// assume its a persistence failure first
	wrapped := fmt.Errorf(
		"%w, %s, %w",
		ErrPersistenceFailed,
		contextMessage,
		err,
	)

	// check if its a pg error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error(wrapped)
		return wrapped
	}

	if errMsgs == nil {
		log.Warnf("got null errMsgs")
		log.Error(wrapped)
		return wrapped
	}

	switch pgErr.Code {
	case CodeForeignKeyConstraint, CodeUniqueConstraint, CodeCheckConstraint:
		msgs, ok := errMsgs[pgErr.Code]
		if !ok {
			log.Warnf("no msg map found for constraint code %s", pgErr.Code)
			log.Error(wrapped)
			return wrapped
		}
		return handleConstraintError(pgErr, msgs, wrapped)
	}

	// unknown error
	log.Error(wrapped)
	return wrapped
}

func handleConstraintError(
	pgErr *pgconn.PgError,
	msgs map[string]string,
	fallback error,
) error {
	msg, ok := msgs[pgErr.ConstraintName]
	if !ok {
		log.Warnf(
			"unknown constraint violation %s (code %s)",
			pgErr.ConstraintName,
			pgErr.Code,
		)
		log.Error(fallback)
		return fallback
	}
	err := fmt.Errorf(
		"%w, %s",
		ErrInvalidRequest,
		msg,
	)
	log.Error(err)
	return err
}

// WrapCatalogError wraps errors raised while talking to the problem catalog
func WrapCatalogError(err error) error {
	var opError *net.OpError
	if errors.As(err, &opError) {
		return fmt.Errorf(
			"%w, \"%s\" error occurred during \"%s\" operation, network: %s, dest: %s",
			ErrCatalogUnavailable,
			opError.Error(),
			opError.Op,
			opError.Net,
			opError.Addr,
		)
	}

	// unknown error
	return fmt.Errorf(
		"%w, %w", ErrCatalogUnavailable, err,
	)
}
