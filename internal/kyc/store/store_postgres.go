package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

const selectColumns = `
	id, user_id, verification_type,
	document_number, document_image_url, address_line, city, district, country, selfie_image_url,
	extracted_fields, ocr_confidence, liveness_score, identity_similarity_score,
	status, reviewed_by, reviewed_at, notes,
	created_at, updated_at
`

// PostgresStore persists verification records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) Create(ctx context.Context, record *models.VerificationRecord) error {
	if record == nil {
		return fmt.Errorf("verification record is required")
	}
	extracted, err := json.Marshal(record.ExtractedFields)
	if err != nil {
		return fmt.Errorf("encode extracted fields: %w", err)
	}

	query := `
		INSERT INTO verification_records (` + selectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(record.ID),
		uuid.UUID(record.UserID),
		string(record.Type),
		record.DocumentNumber,
		record.DocumentImageURL,
		record.AddressLine,
		record.City,
		record.District,
		record.Country,
		record.SelfieImageURL,
		string(extracted),
		record.OCRConfidence,
		record.LivenessScore,
		record.IdentitySimilarityScore,
		string(record.Status),
		record.ReviewedBy,
		record.ReviewedAt,
		record.Notes,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create verification record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, recordID id.RecordID) (*models.VerificationRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM verification_records WHERE id = $1`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, uuid.UUID(recordID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification record: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) FindByUser(ctx context.Context, userID id.UserID) ([]*models.VerificationRecord, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM verification_records
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list verification records: %w", err)
	}
	defer rows.Close()

	var records []*models.VerificationRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification records: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) FindByUserAndType(ctx context.Context, userID id.UserID, t models.VerificationType) (*models.VerificationRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM verification_records WHERE user_id = $1 AND verification_type = $2`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, uuid.UUID(userID), string(t)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification record by type: %w", err)
	}
	return record, nil
}

// Update locks the row with SELECT ... FOR UPDATE for the duration of patch.
func (s *PostgresStore) Update(ctx context.Context, recordID id.RecordID, patch PatchFunc) (*models.VerificationRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin verification update tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT ` + selectColumns + ` FROM verification_records WHERE id = $1 FOR UPDATE`
	record, err := scanRecord(tx.QueryRowContext(ctx, query, uuid.UUID(recordID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification record for update: %w", err)
	}

	original := *record
	if err := patch(record); err != nil {
		return nil, err
	}
	record.ID = original.ID
	record.UserID = original.UserID
	record.Type = original.Type
	record.CreatedAt = original.CreatedAt

	if err := updateRecord(ctx, tx, record); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit verification update: %w", err)
	}
	return record, nil
}

func updateRecord(ctx context.Context, exec dbExecutor, record *models.VerificationRecord) error {
	extracted, err := json.Marshal(record.ExtractedFields)
	if err != nil {
		return fmt.Errorf("encode extracted fields: %w", err)
	}
	query := `
		UPDATE verification_records SET
			document_number = $2, document_image_url = $3, address_line = $4, city = $5,
			district = $6, country = $7, selfie_image_url = $8,
			extracted_fields = $9, ocr_confidence = $10,
			liveness_score = $11, identity_similarity_score = $12,
			status = $13, reviewed_by = $14, reviewed_at = $15, notes = $16,
			updated_at = $17
		WHERE id = $1
	`
	res, err := exec.ExecContext(ctx, query,
		uuid.UUID(record.ID),
		record.DocumentNumber,
		record.DocumentImageURL,
		record.AddressLine,
		record.City,
		record.District,
		record.Country,
		record.SelfieImageURL,
		string(extracted),
		record.OCRConfidence,
		record.LivenessScore,
		record.IdentitySimilarityScore,
		string(record.Status),
		record.ReviewedBy,
		record.ReviewedAt,
		record.Notes,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update verification record: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update verification record rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type recordRow interface {
	Scan(dest ...any) error
}

func scanRecord(row recordRow) (*models.VerificationRecord, error) {
	var (
		record     models.VerificationRecord
		recordID   uuid.UUID
		userID     uuid.UUID
		recordType string
		status     string
		extracted  []byte
		liveness   sql.NullFloat64
		similarity sql.NullFloat64
		reviewedBy sql.NullString
		reviewedAt sql.NullTime
		notes      sql.NullString
	)
	err := row.Scan(
		&recordID, &userID, &recordType,
		&record.DocumentNumber, &record.DocumentImageURL, &record.AddressLine, &record.City,
		&record.District, &record.Country, &record.SelfieImageURL,
		&extracted, &record.OCRConfidence, &liveness, &similarity,
		&status, &reviewedBy, &reviewedAt, &notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ID = id.RecordID(recordID)
	record.UserID = id.UserID(userID)
	record.Type = models.VerificationType(recordType)
	record.Status = models.Status(status)
	if len(extracted) > 0 {
		if err := json.Unmarshal(extracted, &record.ExtractedFields); err != nil {
			return nil, fmt.Errorf("decode extracted fields: %w", err)
		}
	}
	if liveness.Valid {
		record.LivenessScore = &liveness.Float64
	}
	if similarity.Valid {
		record.IdentitySimilarityScore = &similarity.Float64
	}
	if reviewedBy.Valid {
		record.ReviewedBy = &reviewedBy.String
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		record.ReviewedAt = &t
	}
	if notes.Valid {
		record.Notes = &notes.String
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

var _ Store = (*PostgresStore)(nil)
