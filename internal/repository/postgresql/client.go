package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type clientRepositoryImpl struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

// GetCustomerByEmail implements client.ClientRepository.
func (c *clientRepositoryImpl) GetCustomerByEmail(ctx context.Context, email string) (client.Client, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT client_id, client_type, company_name, email, mypunctoo_enabled, mypunctoo_enabled_at
		FROM client
		WHERE lower(email) = lower($1) AND client_type = $2
		LIMIT 1
	`

	var cl client.Client
	err := q.QueryRow(ctx, query, email, client.TypeCustomer).Scan(
		&cl.ID, &cl.Type, &cl.CompanyName, &cl.Email, &cl.MyPunctooEnabled, &cl.MyPunctooEnabledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNoCustomerAccount
		}
		return client.Client{}, fmt.Errorf("failed to get client by email: %w", err)
	}

	return cl, nil
}

// GetActiveScanTag implements client.ClientRepository.
func (c *clientRepositoryImpl) GetActiveScanTag(ctx context.Context, clientID string) (client.ScanTag, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT scantag_id, client_id, qr_url_in, qr_url_out, status, created_at
		FROM scantag
		WHERE client_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var tag client.ScanTag
	err := q.QueryRow(ctx, query, clientID, client.ScanTagStatusActive).Scan(
		&tag.ID, &tag.ClientID, &tag.QRURLIn, &tag.QRURLOut, &tag.Status, &tag.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.ScanTag{}, client.ErrNoActiveScanTag
		}
		return client.ScanTag{}, fmt.Errorf("failed to get active scantag: %w", err)
	}

	return tag, nil
}
