package postgres

import (
	"context"
	"errors"
	"fmt"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

const (
	pgUniqueViolation       = "23505"
	pgInsufficientPrivilege = "42501"
	pgClassConnection       = "08"
	pgAdminShutdown         = "57P01"
	pgCannotConnectNow      = "57P03"
)

// translateDBError maps driver errors onto apperrors sentinels. No-rows is left
// to the caller, which knows which entity was missing.
func translateDBError(err error, logger *slog.Logger) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			logger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		case pgErr.Code == pgInsufficientPrivilege:
			logger.Error("Database refused operation", "message", pgErr.Message)
			return fmt.Errorf("%w: %s", apperrors.ErrPermission, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, pgClassConnection), pgErr.Code == pgAdminShutdown, pgErr.Code == pgCannotConnectNow:
			logger.Error("Database connection error", "code", pgErr.Code, "message", pgErr.Message)
			return fmt.Errorf("%w: %w", apperrors.ErrConnectivity, err)
		}

		logger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		logger.Error("Database unreachable", "error", err)
		return fmt.Errorf("%w: %w", apperrors.ErrConnectivity, err)
	}

	logger.Error("Generic database error", "error", err)
	return fmt.Errorf("%w: %w", apperrors.ErrDatabase, err)
}
