package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/warehouse-api/internal/models"
)

type PostgresLedgerRepository struct {
	db *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

// Record applies the stock adjustment and appends the audit entry inside one
// database transaction. The OUT path is a conditional decrement: the update
// itself fails when the resulting stock would be negative, so two concurrent
// withdrawals against the same snapshot cannot both succeed. The IN path is
// an upsert-increment that creates the product on first reference.
func (r *PostgresLedgerRepository) Record(t models.Transaction) (models.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	switch t.Type {
	case models.TransactionOut:
		var stock int
		err := tx.QueryRowContext(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = $2
			WHERE name = $3 AND stock >= $1
			RETURNING stock
		`, t.Quantity, now, t.ProductName).Scan(&stock)

		if errors.Is(err, sql.ErrNoRows) {
			// Missing product counts as stock 0.
			current := 0
			if err := tx.QueryRowContext(ctx,
				`SELECT stock FROM products WHERE name = $1`, t.ProductName,
			).Scan(&current); err != nil && !errors.Is(err, sql.ErrNoRows) {
				return models.Transaction{}, fmt.Errorf("failed to read current stock: %w", err)
			}
			return models.Transaction{}, &InsufficientStockError{Current: current, Requested: t.Quantity}
		}
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to withdraw stock: %w", err)
		}

	case models.TransactionIn:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (name, category, stock, created_at, updated_at)
			VALUES ($1, 'General', $2, $3, $3)
			ON CONFLICT (name) DO UPDATE
			SET stock = products.stock + EXCLUDED.stock, updated_at = EXCLUDED.updated_at
		`, t.ProductName, t.Quantity, now)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to deposit stock: %w", err)
		}

	default:
		return models.Transaction{}, ErrInvalidTransactionType
	}

	t.Reference = uuid.NewString()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (reference, product_name, quantity, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, t.Reference, t.ProductName, t.Quantity, t.Type, now).Scan(&t.ID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.Timestamp = now.Format(time.RFC3339Nano)
	return t, nil
}

const defaultLimit = 100

// GetAll returns ledger entries, newest first.
func (r *PostgresLedgerRepository) GetAll(tf TransactionFilter) ([]models.Transaction, int, error) {
	whereClause, args := buildWhereClause(tf)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if tf.Offset != nil && *tf.Offset >= total {
		return []models.Transaction{}, total, nil
	}

	query, queryArgs := buildMainQuery(whereClause, args, tf)
	transactions, err := r.executeQuery(query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return transactions, total, nil
}

func buildWhereClause(tf TransactionFilter) (string, []any) {
	args := []any{}
	whereClause := "WHERE 1=1"
	argIndex := 1

	if tf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *tf.Since)
		argIndex++
	}

	if tf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *tf.Until)
	}

	return whereClause, args
}

func buildMainQuery(whereClause string, baseArgs []any, tf TransactionFilter) (string, []any) {
	query := fmt.Sprintf(
		"SELECT id, reference, product_name, quantity, type, created_at FROM transactions %s ORDER BY created_at DESC",
		whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	limit := defaultLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if tf.Offset != nil && *tf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *tf.Offset)
	}

	return query, args
}

func (r *PostgresLedgerRepository) getTotal(whereClause string, args []any) (int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", whereClause)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresLedgerRepository) executeQuery(query string, args []any) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var createdAt time.Time
		if err := rows.Scan(&t.ID, &t.Reference, &t.ProductName, &t.Quantity, &t.Type, &createdAt); err != nil {
			return nil, err
		}
		t.Timestamp = createdAt.Format(time.RFC3339Nano)
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
