// Package store persists verification records.
//
// Error contract for every implementation:
//   - sentinel.ErrNotFound when the record does not exist
//   - sentinel.ErrConflict when a record for the same (user, type) already exists
//   - errors returned by an Update patch are passed through unchanged
//   - wrapped errors for infrastructure failures
package store

import (
	"context"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

// PatchFunc mutates a record in place. Returning an error aborts the update.
type PatchFunc func(*models.VerificationRecord) error

// Store is the verification record persistence port.
type Store interface {
	Create(ctx context.Context, record *models.VerificationRecord) error
	FindByID(ctx context.Context, recordID id.RecordID) (*models.VerificationRecord, error)
	// FindByUser returns the user's records ordered by creation time.
	FindByUser(ctx context.Context, userID id.UserID) ([]*models.VerificationRecord, error)
	FindByUserAndType(ctx context.Context, userID id.UserID, t models.VerificationType) (*models.VerificationRecord, error)
	// Update applies patch to the current record under a lock and persists
	// the result. ID, owner, type and creation time cannot be changed.
	Update(ctx context.Context, recordID id.RecordID, patch PatchFunc) (*models.VerificationRecord, error)
}
