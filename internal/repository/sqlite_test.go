package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rmaia/floodwatch/internal/models"
)

func setupTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	a, err := NewSQLiteArchive(":memory:")
	if err != nil {
		t.Fatalf("failed to create test archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func testAlert(id string, createdAt time.Time) models.Alert {
	return models.Alert{
		ID:        id,
		RouteID:   "route_1",
		RouteName: "Escola - Ana Clara",
		Type:      models.AlertTypeFloodWarning,
		Message:   "flooding likely",
		Severity:  models.AlertSeverityHigh,
		Timestamp: models.FormatTimestamp(createdAt),
		CreatedAt: createdAt,
	}
}

func TestSQLiteArchive_SaveAndList(t *testing.T) {
	archive := setupTestArchive(t)
	ctx := context.Background()

	a := testAlert("alert_1", time.Now())
	if err := archive.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := archive.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(got))
	}
	if got[0].ID != "alert_1" {
		t.Errorf("expected id alert_1, got %s", got[0].ID)
	}
	if got[0].Type != models.AlertTypeFloodWarning || got[0].Severity != models.AlertSeverityHigh {
		t.Errorf("type/severity did not round-trip: %+v", got[0])
	}
}

func TestSQLiteArchive_ListRecent_NewestFirstWithLimit(t *testing.T) {
	archive := setupTestArchive(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		a := testAlert(fmt.Sprintf("alert_%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := archive.Save(ctx, a); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := archive.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(got))
	}
	if got[0].ID != "alert_4" || got[2].ID != "alert_2" {
		t.Errorf("expected newest-first ordering, got %s..%s", got[0].ID, got[2].ID)
	}
}

func TestSQLiteArchive_DuplicateIDRejected(t *testing.T) {
	archive := setupTestArchive(t)
	ctx := context.Background()

	a := testAlert("alert_1", time.Now())
	if err := archive.Save(ctx, a); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := archive.Save(ctx, a); err == nil {
		t.Error("expected primary key violation on duplicate id")
	}
}

func TestSQLiteArchive_EmptyList(t *testing.T) {
	archive := setupTestArchive(t)

	got, err := archive.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty archive, got %d alerts", len(got))
	}
}
