package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
	"github.com/dahorta/freshmarket/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on. Tests substitute
// a pgxmock pool through it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// newPgxPool is swapped out in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// NewWithPool wraps an existing pool without schema initialization.
func NewWithPool(pool Pool, logger *slog.Logger) *Storage {
	return &Storage{pool: pool, logger: logger}
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var _ repository.Factory = (*Storage)(nil)

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            staff BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            items JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            number TEXT UNIQUE NOT NULL,
            lines JSONB NOT NULL,
            shipping_address JSONB NOT NULL,
            contact JSONB NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL,
            delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
            total DOUBLE PRECISION NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            delivery_date TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, staff, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Staff, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, staff, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Staff, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Get(ctx context.Context, userID int64) ([]model.CartLine, error) {
	const query = `SELECT items FROM carts WHERE user_id=$1`
	var raw []byte
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var lines []model.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return lines, nil
}

func (r *cartRepository) Replace(ctx context.Context, userID int64, lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}

	const query = `INSERT INTO carts (user_id, items, updated_at) VALUES ($1, $2, NOW())
                   ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()`
	_, err = r.storage.pool.Exec(ctx, query, userID, raw)
	return err
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM carts WHERE user_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, number, lines, shipping_address, contact,
                      subtotal, delivery_fee, total, notes, status, created_at, updated_at, delivery_date`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode shipping address: %w", err)
	}
	contact, err := json.Marshal(order.Contact)
	if err != nil {
		return fmt.Errorf("encode contact: %w", err)
	}

	// Submitting an order consumes the cart, so the insert and the cart
	// delete commit together; a failed insert leaves the cart intact.
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO orders
                       (id, user_id, number, lines, shipping_address, contact,
                        subtotal, delivery_fee, total, notes, status, created_at, updated_at, delivery_date)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
		if _, err := tx.Exec(ctx, query,
			order.ID, order.UserID, order.Number, lines, address, contact,
			order.Subtotal, order.DeliveryFee, order.Total, order.Notes,
			order.Status.String(), order.CreatedAt, order.UpdatedAt, order.DeliveryDate); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, order.UserID)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	args := []any{userID}
	if status != nil {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND status=$2 ORDER BY created_at DESC`
		args = append(args, status.String())
	}
	return r.storage.queryOrders(ctx, query, args...)
}

func (r *orderRepository) ListAll(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	var args []any
	if status != nil {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE status=$1 ORDER BY created_at DESC`
		args = append(args, status.String())
	}
	return r.storage.queryOrders(ctx, query, args...)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, deliveryDate *time.Time) (*model.Order, error) {
	query := `UPDATE orders
              SET status=$1, updated_at=NOW(), delivery_date=COALESCE($2, delivery_date)
              WHERE id=$3
              RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, status.String(), deliveryDate, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *Storage) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanOrder decodes one order row. Stored statuses may carry legacy names;
// they normalize on read.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order       model.Order
		lines       []byte
		address     []byte
		contact     []byte
		rawStatus   string
		deliveredAt *time.Time
	)
	err := row.Scan(&order.ID, &order.UserID, &order.Number, &lines, &address, &contact,
		&order.Subtotal, &order.DeliveryFee, &order.Total, &order.Notes,
		&rawStatus, &order.CreatedAt, &order.UpdatedAt, &deliveredAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lines, &order.Lines); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}
	if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if err := json.Unmarshal(contact, &order.Contact); err != nil {
		return nil, fmt.Errorf("decode contact: %w", err)
	}

	status, err := model.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", order.ID, err)
	}
	order.Status = status
	order.DeliveryDate = deliveredAt
	return &order, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
