package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact messages.
// The entity is append-only, so Insert is the only operation.
type ContactRepository interface {
	// Insert stores one validated message and populates msg.ID and
	// msg.CreatedAt from the database.
	Insert(ctx context.Context, msg *model.ContactMessage) error
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	gateway *Gateway
}

// NewPgContactRepository creates a PgContactRepository backed by the given
// connection gateway.
func NewPgContactRepository(gateway *Gateway) *PgContactRepository {
	return &PgContactRepository{gateway: gateway}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Insert appends one contact_messages row. ID and CreatedAt are assigned by
// the database and scanned back via RETURNING; the caller never supplies
// either.
func (r *PgContactRepository) Insert(ctx context.Context, msg *model.ContactMessage) error {
	pool, err := r.gateway.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		msg.Name, msg.Email, msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt)
}
