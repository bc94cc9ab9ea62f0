package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// Pool ajusta el pool de conexiones. Cero vale default.
type Pool struct {
	// MaxConns limita conexiones abiertas. Cada cambio de filtro es un UPDATE
	// de una fila, así que con pocas alcanza.
	MaxConns int
	// AppName aparece en pg_stat_activity.
	AppName string
	// StatementTimeout corta queries colgadas del lado del servidor.
	StatementTimeout time.Duration
}

const (
	defaultMaxConns         = 4
	defaultStatementTimeout = 5 * time.Second
)

func (p Pool) withDefaults() Pool {
	if p.MaxConns <= 0 {
		p.MaxConns = defaultMaxConns
	}
	if p.StatementTimeout <= 0 {
		p.StatementTimeout = defaultStatementTimeout
	}
	return p
}

// Open arma un *sql.DB sobre pgx y hace ping antes de devolverlo.
func Open(dsn string, p Pool) (*sql.DB, error) {
	p = p.withDefaults()

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	if p.AppName != "" {
		cfg.RuntimeParams["application_name"] = p.AppName
	}
	cfg.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", p.StatementTimeout.Milliseconds())

	db := stdlib.OpenDB(*cfg)

	// Los persist son ráfagas cortas: pocas idle y que roten rápido.
	db.SetMaxOpenConns(p.MaxConns)
	db.SetMaxIdleConns(p.MaxConns / 2)
	db.SetConnMaxIdleTime(time.Minute)
	db.SetConnMaxLifetime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return db, nil
}
