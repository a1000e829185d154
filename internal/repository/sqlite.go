package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rmaia/floodwatch/internal/models"
)

type SQLiteArchive struct {
	db *sql.DB
}

func NewSQLiteArchive(path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteArchive{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteArchive) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			route_id TEXT NOT NULL,
			route_name TEXT NOT NULL,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			is_read INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
		CREATE INDEX IF NOT EXISTS idx_alerts_route_id ON alerts(route_id);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteArchive) Save(ctx context.Context, a models.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, route_id, route_name, type, severity, message, timestamp, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.RouteID, a.RouteName, string(a.Type), string(a.Severity), a.Message, a.Timestamp, a.IsRead, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting alert: %w", err)
	}
	return nil
}

func (s *SQLiteArchive) ListRecent(ctx context.Context, limit int) ([]models.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, route_id, route_name, type, severity, message, timestamp, is_read, created_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var typ, severity string
		if err := rows.Scan(&a.ID, &a.RouteID, &a.RouteName, &typ, &severity, &a.Message, &a.Timestamp, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning alert: %w", err)
		}
		a.Type = models.AlertType(typ)
		a.Severity = models.AlertSeverity(severity)
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

func (s *SQLiteArchive) Close() error {
	return s.db.Close()
}
