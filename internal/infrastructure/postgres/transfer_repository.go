package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo transferencias entre sucursales sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Los nombres de sucursal salen del join; no se guardan en la cabecera.
const transferSelect = `
	SELECT t.id, t.origin_branch_id, o.name, t.destination_branch_id, d.name,
	       t.created_by, t.created_at, t.received_by, t.received_at, t.status
	FROM transfers t
	JOIN branches o ON o.id = t.origin_branch_id
	JOIN branches d ON d.id = t.destination_branch_id`

// Create persiste la cabecera.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, origin_branch_id, destination_branch_id, created_by, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.OriginBranchID, t.DestinationBranchID, nullIfEmpty(t.CreatedBy), t.CreatedAt, string(t.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// CreateLine persiste un renglón.
func (r *TransferRepo) CreateLine(ctx context.Context, line *entity.TransferLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `INSERT INTO transfer_lines (id, transfer_id, product_id, quantity) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, line.ID, line.TransferID, line.ProductID, line.Quantity); err != nil {
		return fmt.Errorf("insert transfer line: %w", err)
	}
	return nil
}

// GetByID cabecera con renglones; nil si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.get(ctx, transferSelect+` WHERE t.id = $1`, id)
}

// GetForUpdate bloquea sólo la fila de transfers (FOR UPDATE OF t).
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.get(ctx, transferSelect+` WHERE t.id = $1 FOR UPDATE OF t`, id)
}

// UpdateStatus persiste estado y datos de recepción.
func (r *TransferRepo) UpdateStatus(ctx context.Context, t *entity.Transfer) error {
	query := `UPDATE transfers SET status = $2, received_by = $3, received_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, string(t.Status), nullIfEmpty(t.ReceivedBy), t.ReceivedAt)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListIncoming en tránsito hacia la sucursal.
func (r *TransferRepo) ListIncoming(ctx context.Context, branchID string) ([]*entity.Transfer, error) {
	return r.list(ctx, transferSelect+` WHERE t.destination_branch_id = $1 AND t.status = $2 ORDER BY t.created_at DESC`,
		branchID, string(entity.TransferInTransit))
}

// ListOutgoing todas las enviadas por la sucursal.
func (r *TransferRepo) ListOutgoing(ctx context.Context, branchID string) ([]*entity.Transfer, error) {
	return r.list(ctx, transferSelect+` WHERE t.origin_branch_id = $1 ORDER BY t.created_at DESC`, branchID)
}

// ListReceived completadas con destino en la sucursal.
func (r *TransferRepo) ListReceived(ctx context.Context, branchID string) ([]*entity.Transfer, error) {
	return r.list(ctx, transferSelect+` WHERE t.destination_branch_id = $1 AND t.status = $2 ORDER BY t.created_at DESC`,
		branchID, string(entity.TransferCompleted))
}

func (r *TransferRepo) get(ctx context.Context, query, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if t.Lines, err = r.lines(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransferRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Los renglones se leen después de cerrar rows: la conexión no admite dos consultas a la vez.
	for _, t := range list {
		if t.Lines, err = r.lines(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TransferRepo) lines(ctx context.Context, transferID string) ([]entity.TransferLine, error) {
	query := `
		SELECT l.id, l.transfer_id, l.product_id, p.name, COALESCE(p.sku, ''), l.quantity
		FROM transfer_lines l JOIN products p ON p.id = l.product_id
		WHERE l.transfer_id = $1 ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.TransferLine
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.ProductName, &l.SKU, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var status string
	var createdBy, receivedBy *string
	if err := row.Scan(&t.ID, &t.OriginBranchID, &t.OriginName, &t.DestinationBranchID, &t.DestinationName,
		&createdBy, &t.CreatedAt, &receivedBy, &t.ReceivedAt, &status); err != nil {
		return nil, err
	}
	t.Status = entity.TransferStatus(status)
	t.CreatedBy = derefString(createdBy)
	t.ReceivedBy = derefString(receivedBy)
	return &t, nil
}
