package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
)

type credentialRepository struct {
	db *database.DB
}

func NewCredentialRepository(db *database.DB) auth.CredentialRepository {
	return &credentialRepository{db: db}
}

// GetByEmail implements auth.CredentialRepository.
func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (auth.Credential, error) {
	q := GetQuerier(ctx, r.db)

	var c auth.Credential
	err := q.QueryRow(ctx, `
		SELECT email, password_hash, staff_id, created_at
		FROM credentials
		WHERE email = $1
	`, email).Scan(&c.Email, &c.PasswordHash, &c.StaffID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Credential{}, auth.ErrCredentialNotFound
		}
		return auth.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}
	return c, nil
}

// Create implements auth.CredentialRepository.
func (r *credentialRepository) Create(ctx context.Context, credential auth.Credential) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO credentials (email, password_hash, staff_id)
		VALUES ($1, $2, $3)
	`, credential.Email, credential.PasswordHash, credential.StaffID)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrEmailExists
		}
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// Delete implements auth.CredentialRepository.
func (r *credentialRepository) Delete(ctx context.Context, email string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM credentials WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrCredentialNotFound
	}
	return nil
}
