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

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/domain/repository"
)

// printQueueCapacity must match the admission gate constant; the serialized
// check lives here so concurrent submissions cannot oversubscribe the queue.
const printQueueCapacity = 5

// admissionLockKey is the advisory lock serializing order admission and
// queue-position reranking.
const admissionLockKey = 0x57443344 // "WD3D"

// pgxPool is the subset of pgxpool.Pool the storage uses; pgxmock satisfies
// it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type printModelRepository struct {
	storage *Storage
}

type generationRepository struct {
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

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Models() repository.PrintModelRepository {
	return &printModelRepository{storage: s}
}

func (s *Storage) Generations() repository.GenerationRepository {
	return &generationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            staff BOOLEAN NOT NULL DEFAULT FALSE,
            disabled_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS print_models (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            creator_id BIGINT NOT NULL REFERENCES customers(id),
            source_kind TEXT NOT NULL,
            model_urls JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS generations (
            id TEXT PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            name TEXT NOT NULL DEFAULT '',
            source_kind TEXT NOT NULL,
            prompt TEXT NOT NULL DEFAULT '',
            image_key TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            progress INT NOT NULL DEFAULT 0,
            model_id TEXT REFERENCES print_models(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE SEQUENCE IF NOT EXISTS order_ids START 1000`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            model_id TEXT NOT NULL,
            size TEXT NOT NULL,
            color TEXT NOT NULL,
            scale_adjustment DOUBLE PRECISION NOT NULL DEFAULT 1.0,
            price DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            queue_position INT,
            payment_method TEXT NOT NULL DEFAULT '',
            shipping_address TEXT NOT NULL DEFAULT '',
            tracking_number TEXT,
            estimated_delivery TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_status_audit (
            id SERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            from_status TEXT NOT NULL,
            to_status TEXT NOT NULL,
            actor_id BIGINT NOT NULL,
            override BOOLEAN NOT NULL DEFAULT FALSE,
            at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_status ON generations(status, updated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CustomerRepository implementation ---

func (r *customerRepository) Create(ctx context.Context, email, name, passwordHash string) (*model.Customer, error) {
	const query = `INSERT INTO customers (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, email, name, passwordHash).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	c.Email = email
	c.Name = name
	c.PasswordHash = passwordHash
	return &c, nil
}

const customerColumns = `id, email, name, password_hash, staff, disabled_at, created_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.Staff, &c.DisabledAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE email=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return scanCustomer(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.Staff, &c.DisabledAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *customerRepository) Disable(ctx context.Context, id int64) error {
	const query = `UPDATE customers SET disabled_at = COALESCE(disabled_at, NOW()) WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, customer_id, model_id, size, color, scale_adjustment, price, status,
    queue_position, payment_method, shipping_address, tracking_number, estimated_delivery,
    created_at, updated_at`

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.ModelID, &o.Size, &o.Color, &o.ScaleAdjustment,
		&o.Price, &o.Status, &o.QueuePosition, &o.PaymentMethod, &o.ShippingAddress,
		&o.TrackingNumber, &o.EstimatedDelivery, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ModelID, &o.Size, &o.Color, &o.ScaleAdjustment,
			&o.Price, &o.Status, &o.QueuePosition, &o.PaymentMethod, &o.ShippingAddress,
			&o.TrackingNumber, &o.EstimatedDelivery, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const inFlightCondition = `status IN ('pending', 'crafting', 'processing')`

// Create admits an order under the advisory lock: the capacity check and the
// insert are one serialized transaction, so no more than five in-flight
// orders can ever exist regardless of concurrent submissions.
func (r *orderRepository) Create(ctx context.Context, order repository.NewOrder) (*model.Order, error) {
	var created *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(admissionLockKey)); err != nil {
			return err
		}

		var inFlight int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+inFlightCondition).Scan(&inFlight); err != nil {
			return err
		}
		if inFlight >= printQueueCapacity {
			return domainErrors.ErrQueueFull
		}

		var seq int64
		if err := tx.QueryRow(ctx, `SELECT nextval('order_ids')`).Scan(&seq); err != nil {
			return err
		}
		id := fmt.Sprintf("WD-%04d", seq)

		const insert = `INSERT INTO orders
            (id, customer_id, model_id, size, color, scale_adjustment, price, status, queue_position, payment_method, shipping_address)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
            RETURNING created_at, updated_at`
		position := inFlight + 1
		o := &model.Order{
			ID:              id,
			CustomerID:      order.CustomerID,
			ModelID:         order.ModelID,
			Size:            order.Size,
			Color:           order.Color,
			ScaleAdjustment: order.ScaleAdjustment,
			Price:           order.Price,
			Status:          model.OrderStatusPending,
			QueuePosition:   &position,
			PaymentMethod:   order.PaymentMethod,
			ShippingAddress: order.ShippingAddress,
		}
		if err := tx.QueryRow(ctx, insert, id, order.CustomerID, order.ModelID, order.Size, order.Color,
			order.ScaleAdjustment, order.Price, model.OrderStatusPending, position,
			order.PaymentMethod, order.ShippingAddress).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrderRow(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *orderRepository) CountInFlight(ctx context.Context) (int, error) {
	var count int
	err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+inFlightCondition).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyStatusChange writes the transition, re-ranks the in-flight set, and
// records the audit entry in one transaction. The updated_at guard makes a
// lost race visible as ErrConcurrentModification instead of silently
// clobbering a concurrent transition.
func (r *orderRepository) ApplyStatusChange(ctx context.Context, change repository.StatusChange) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(admissionLockKey)); err != nil {
			return err
		}

		const update = `UPDATE orders
            SET status=$1, updated_at=NOW(),
                tracking_number=COALESCE($2, tracking_number),
                estimated_delivery=COALESCE($3, estimated_delivery)
            WHERE id=$4 AND updated_at=$5`
		tag, err := tx.Exec(ctx, update, change.To, change.TrackingNumber, change.EstimatedDelivery,
			change.OrderID, change.ExpectedUpdatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, change.OrderID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domainErrors.ErrNotFound
			}
			return domainErrors.ErrConcurrentModification
		}

		const clearPositions = `UPDATE orders SET queue_position=NULL
            WHERE queue_position IS NOT NULL AND NOT (` + inFlightCondition + `)`
		if _, err := tx.Exec(ctx, clearPositions); err != nil {
			return err
		}

		const rerank = `UPDATE orders o SET queue_position = ranked.pos
            FROM (SELECT id, ROW_NUMBER() OVER (ORDER BY created_at) AS pos
                  FROM orders WHERE ` + inFlightCondition + `) ranked
            WHERE o.id = ranked.id AND o.queue_position IS DISTINCT FROM ranked.pos`
		if _, err := tx.Exec(ctx, rerank); err != nil {
			return err
		}

		const audit = `INSERT INTO order_status_audit (order_id, from_status, to_status, actor_id, override)
            VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, audit, change.OrderID, change.From, change.To, change.ActorID, change.Override); err != nil {
			return err
		}

		o, err := scanOrderRow(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, change.OrderID))
		if err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *orderRepository) UpdateScale(ctx context.Context, orderID string, customerID int64, scale, price float64) (*model.Order, error) {
	const query = `UPDATE orders SET scale_adjustment=$1, price=$2, updated_at=NOW()
        WHERE id=$3 AND customer_id=$4 AND status='pending'
        RETURNING ` + orderColumns
	return scanOrderRow(r.storage.pool.QueryRow(ctx, query, scale, price, orderID, customerID))
}

func (r *orderRepository) ListAudit(ctx context.Context, orderID string) ([]model.StatusAudit, error) {
	const query = `SELECT id, order_id, from_status, to_status, actor_id, override, at
        FROM order_status_audit WHERE order_id=$1 ORDER BY at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusAudit
	for rows.Next() {
		var a model.StatusAudit
		if err := rows.Scan(&a.ID, &a.OrderID, &a.From, &a.To, &a.ActorID, &a.Override, &a.At); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PrintModelRepository implementation ---

func (r *printModelRepository) Create(ctx context.Context, m *model.PrintModel) (*model.PrintModel, error) {
	urls, err := json.Marshal(m.ModelURLs)
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO print_models (id, name, creator_id, source_kind, model_urls)
        VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	stored := *m
	err = r.storage.pool.QueryRow(ctx, query, m.ID, m.Name, m.CreatorID, m.SourceKind, urls).Scan(&stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func scanPrintModel(row pgx.Row) (*model.PrintModel, error) {
	var m model.PrintModel
	var urls []byte
	err := row.Scan(&m.ID, &m.Name, &m.CreatorID, &m.SourceKind, &urls, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(urls, &m.ModelURLs); err != nil {
		return nil, err
	}
	return &m, nil
}

const printModelColumns = `id, name, creator_id, source_kind, model_urls, created_at`

func (r *printModelRepository) GetByID(ctx context.Context, id string) (*model.PrintModel, error) {
	const query = `SELECT ` + printModelColumns + ` FROM print_models WHERE id=$1`
	return scanPrintModel(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *printModelRepository) listQuery(ctx context.Context, query string, args ...any) ([]model.PrintModel, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PrintModel
	for rows.Next() {
		var m model.PrintModel
		var urls []byte
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatorID, &m.SourceKind, &urls, &m.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(urls, &m.ModelURLs); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *printModelRepository) ListByCreator(ctx context.Context, creatorID int64) ([]model.PrintModel, error) {
	const query = `SELECT ` + printModelColumns + ` FROM print_models WHERE creator_id=$1 ORDER BY created_at DESC`
	return r.listQuery(ctx, query, creatorID)
}

func (r *printModelRepository) ListAll(ctx context.Context) ([]model.PrintModel, error) {
	const query = `SELECT ` + printModelColumns + ` FROM print_models ORDER BY created_at DESC`
	return r.listQuery(ctx, query)
}

// --- GenerationRepository implementation ---

const generationColumns = `id, customer_id, name, source_kind, prompt, image_key, status, progress, model_id, created_at, updated_at`

func scanGeneration(row pgx.Row) (*model.Generation, error) {
	var g model.Generation
	err := row.Scan(&g.ID, &g.CustomerID, &g.Name, &g.SourceKind, &g.Prompt, &g.ImageKey,
		&g.Status, &g.Progress, &g.ModelID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *generationRepository) Create(ctx context.Context, g *model.Generation) (*model.Generation, error) {
	const query = `INSERT INTO generations (id, customer_id, name, source_kind, prompt, image_key, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`
	stored := *g
	err := r.storage.pool.QueryRow(ctx, query, g.ID, g.CustomerID, g.Name, g.SourceKind, g.Prompt, g.ImageKey, g.Status).
		Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *generationRepository) GetByID(ctx context.Context, id string) (*model.Generation, error) {
	const query = `SELECT ` + generationColumns + ` FROM generations WHERE id=$1`
	return scanGeneration(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *generationRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Generation, error) {
	const query = `SELECT ` + generationColumns + ` FROM generations WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Generation
	for rows.Next() {
		var g model.Generation
		if err := rows.Scan(&g.ID, &g.CustomerID, &g.Name, &g.SourceKind, &g.Prompt, &g.ImageKey,
			&g.Status, &g.Progress, &g.ModelID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectBatchForPolling claims unresolved generations, oldest poll first.
// Claiming bumps updated_at so concurrent pollers skip fresh claims.
func (r *generationRepository) SelectBatchForPolling(ctx context.Context, limit int) ([]model.Generation, error) {
	const selectQuery = `SELECT ` + generationColumns + `
        FROM generations
        WHERE status IN ('pending', 'processing')
        ORDER BY updated_at
        LIMIT $1
        FOR UPDATE SKIP LOCKED`

	var generations []model.Generation
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var g model.Generation
			if err := rows.Scan(&g.ID, &g.CustomerID, &g.Name, &g.SourceKind, &g.Prompt, &g.ImageKey,
				&g.Status, &g.Progress, &g.ModelID, &g.CreatedAt, &g.UpdatedAt); err != nil {
				return err
			}
			generations = append(generations, g)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, g := range generations {
			if _, err := tx.Exec(ctx, `UPDATE generations SET updated_at=NOW() WHERE id=$1`, g.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return generations, nil
}

func (r *generationRepository) UpdateProgress(ctx context.Context, id string, status model.GenerationStatus, progress int) error {
	const query = `UPDATE generations SET status=$1, progress=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, progress, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *generationRepository) Resolve(ctx context.Context, id string, status model.GenerationStatus, modelID *string) error {
	const query = `UPDATE generations SET status=$1, progress=100, model_id=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, modelID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
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
