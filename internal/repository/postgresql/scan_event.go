package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scanEventRepositoryImpl struct {
	db *database.DB
}

func NewScanEventRepository(db *database.DB) scanevent.ScanEventRepository {
	return &scanEventRepositoryImpl{db: db}
}

const scanEventColumns = `
	scan_event_id, client_id, scantag_id, employee_id, direction::text, scanned_at,
	source, user_agent, host(ip_address), anomaly_code, measurement_valid, is_system, created_at
`

func scanScanEvent(row pgx.Row) (scanevent.ScanEvent, error) {
	var (
		ev        scanevent.ScanEvent
		direction string
		anomaly   *string
	)
	err := row.Scan(
		&ev.ID, &ev.ClientID, &ev.ScanTagID, &ev.EmployeeID, &direction, &ev.ScannedAt,
		&ev.Source, &ev.UserAgent, &ev.IPAddress, &anomaly, &ev.MeasurementValid, &ev.IsSystem, &ev.CreatedAt,
	)
	if err != nil {
		return scanevent.ScanEvent{}, err
	}
	ev.Direction = scanevent.Direction(direction)
	if anomaly != nil {
		code := scanevent.AnomalyCode(*anomaly)
		ev.AnomalyCode = &code
	}
	ev.ScannedAt = ev.ScannedAt.UTC()
	ev.CreatedAt = ev.CreatedAt.UTC()
	return ev, nil
}

func collectScanEvents(rows pgx.Rows) ([]scanevent.ScanEvent, error) {
	defer rows.Close()

	events := []scanevent.ScanEvent{}
	for rows.Next() {
		ev, err := scanScanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// GetLatest implements scanevent.ScanEventRepository.
func (r *scanEventRepositoryImpl) GetLatest(ctx context.Context, employeeID string) (*scanevent.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scanEventColumns + `
		FROM scan_event
		WHERE employee_id = $1
		ORDER BY scanned_at DESC, created_at DESC, scan_event_id DESC
		LIMIT 1
	`

	ev, err := scanScanEvent(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest scan event: %w", err)
	}

	return &ev, nil
}

// Create implements scanevent.ScanEventRepository.
func (r *scanEventRepositoryImpl) Create(ctx context.Context, event scanevent.ScanEvent) (scanevent.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	if event.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return scanevent.ScanEvent{}, fmt.Errorf("failed to generate scan event id: %w", err)
		}
		event.ID = id.String()
	}
	if event.Source == "" {
		event.Source = scanevent.SourceMyPunctoo
	}

	var anomaly *string
	if event.AnomalyCode != nil {
		code := string(*event.AnomalyCode)
		anomaly = &code
	}

	query := `
		INSERT INTO scan_event (
			scan_event_id, client_id, scantag_id, employee_id, direction, scanned_at,
			source, user_agent, ip_address, anomaly_code, measurement_valid, is_system
		) VALUES (
			$1, $2, $3, $4, $5::scan_direction, $6,
			$7, $8, $9::inet, $10, $11, $12
		)
		RETURNING ` + scanEventColumns

	created, err := scanScanEvent(q.QueryRow(ctx, query,
		event.ID, event.ClientID, event.ScanTagID, event.EmployeeID, string(event.Direction), event.ScannedAt,
		event.Source, event.UserAgent, event.IPAddress, anomaly, event.MeasurementValid, event.IsSystem,
	))
	if err != nil {
		return scanevent.ScanEvent{}, fmt.Errorf("failed to create scan event: %w", err)
	}

	return created, nil
}

// ListRecent implements scanevent.ScanEventRepository.
func (r *scanEventRepositoryImpl) ListRecent(ctx context.Context, clientID string, employeeID string, limit int) ([]scanevent.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scanEventColumns + `
		FROM scan_event
		WHERE client_id = $1 AND employee_id = $2
		ORDER BY scanned_at DESC, created_at DESC, scan_event_id DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, clientID, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan events: %w", err)
	}

	return collectScanEvents(rows)
}

// ListRange implements scanevent.ScanEventRepository.
func (r *scanEventRepositoryImpl) ListRange(ctx context.Context, clientID string, employeeID *string, from, to time.Time) ([]scanevent.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scanEventColumns + `
		FROM scan_event
		WHERE client_id = $1
		  AND scanned_at >= $2
		  AND scanned_at < $3
		  AND ($4::uuid IS NULL OR employee_id = $4::uuid)
		ORDER BY employee_id, scanned_at, created_at, scan_event_id
	`

	rows, err := q.Query(ctx, query, clientID, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan events in range: %w", err)
	}

	return collectScanEvents(rows)
}

// LatestByClient implements scanevent.ScanEventRepository.
func (r *scanEventRepositoryImpl) LatestByClient(ctx context.Context, clientID string) (map[string]scanevent.ScanEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT DISTINCT ON (employee_id) ` + scanEventColumns + `
		FROM scan_event
		WHERE client_id = $1
		ORDER BY employee_id, scanned_at DESC, created_at DESC, scan_event_id DESC
	`

	rows, err := q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest scan events: %w", err)
	}

	events, err := collectScanEvents(rows)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]scanevent.ScanEvent, len(events))
	for _, ev := range events {
		latest[ev.EmployeeID] = ev
	}

	return latest, nil
}
