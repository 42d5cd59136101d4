package hrms

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/pkg/config"
)

var _ ports.LegacyPSRSource = (*Client)(nil)

const fetchPSRsQuery = `
	SELECT emp_code AS psr_code, full_name, area_code
	FROM employees
	WHERE position = ?
	ORDER BY emp_code`

// Client acceso de solo lectura a la base MySQL del HRMS, con pool acotado.
type Client struct {
	db       *sqlx.DB
	position string
	latin1   bool
	log      zerolog.Logger
}

// Open abre el pool contra el HRMS. La configuración debe pasar Validate antes.
func Open(cfg config.HRMSConfig, log zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("hrms: open: %w", err)
	}
	size := cfg.PoolSize
	if size <= 0 {
		size = 10
	}
	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)
	return New(db, cfg.PSRPosition, cfg.Latin1(), log), nil
}

// New envuelve un *sqlx.DB ya abierto (en tests, uno respaldado por sqlmock).
// latin1 solo es correcto si la sesión MySQL también usa charset=latin1 (ver HRMSConfig.DSN).
func New(db *sqlx.DB, position string, latin1 bool, log zerolog.Logger) *Client {
	return &Client{db: db, position: position, latin1: latin1, log: log}
}

// Close cierra el pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// WithConn toma una conexión del pool, la valida con ping y la devuelve al terminar, falle o no fn.
func (c *Client) WithConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := c.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("hrms: acquire conn: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			c.log.Warn().Err(cerr).Msg("hrms: release conn")
		}
	}()
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("hrms: ping: %w", err)
	}
	return fn(conn)
}

// WithTx ejecuta fn dentro de una transacción. Error o panic en fn → rollback antes de propagar.
func (c *Client) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("hrms: begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil && rerr != sql.ErrTxDone {
			c.log.Error().Err(rerr).Msg("hrms: rollback")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("hrms: commit: %w", err)
	}
	return nil
}

// FetchPSRs filas del personal cuyo cargo coincide con el filtro configurado.
func (c *Client) FetchPSRs(ctx context.Context) ([]entity.LegacyPSR, error) {
	var rows []entity.LegacyPSR
	err := c.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, fetchPSRsQuery, c.position)
	})
	if err != nil {
		return nil, err
	}
	if c.latin1 {
		for i := range rows {
			if err := decodeLatin1(&rows[i]); err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}

func decodeLatin1(row *entity.LegacyPSR) error {
	dec := charmap.ISO8859_1.NewDecoder()
	for _, f := range []*string{&row.Code, &row.FullName, &row.AreaCode} {
		s, err := dec.String(*f)
		if err != nil {
			return fmt.Errorf("hrms: decode latin1: %w", err)
		}
		*f = s
	}
	return nil
}
