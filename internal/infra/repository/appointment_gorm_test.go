package repository

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/httperr"
	"github.com/BruksfildServices01/lab-scheduler/internal/models"
)

// dryRunDB builds SQL without opening a connection.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=lab dbname=lab sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestLockDayUsesTransactionScopedAdvisoryLock(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return lockDay(tx, "2024-05-01")
	})

	if !strings.Contains(sql, "pg_advisory_xact_lock(hashtext('2024-05-01'))") {
		t.Fatalf("unexpected lock statement: %s", sql)
	}
}

func TestSameDayComparesTrimmedDates(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []models.AppointmentRecord
		return sameDay(tx, "2024-05-01").Find(&rows)
	})

	if !strings.Contains(sql, "BTRIM(data,") {
		t.Fatalf("day filter must trim stored dates: %s", sql)
	}
	if !strings.Contains(sql, "'2024-05-01'") || !strings.Contains(sql, "ORDER BY seq ASC") {
		t.Fatalf("unexpected day query: %s", sql)
	}
}

func TestMapWriteError(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if err := mapWriteError(dup); httperr.CodeOf(err) != domain.CodeDuplicateID {
		t.Fatalf("expected duplicate_id, got %v", err)
	}

	boom := errors.New("connection reset")
	if err := mapWriteError(boom); !errors.Is(err, boom) {
		t.Fatalf("other errors must pass through, got %v", err)
	}
}

func TestRecordMapping(t *testing.T) {
	ap := domain.New("abc", labFields())

	row := toRecord(ap)
	if row.AppointmentID != "abc" || row.Seq != 0 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if got := row.ToAppointment(); got != ap {
		t.Fatalf("row round trip mismatch:\n got %+v\nwant %+v", got, ap)
	}

	second := domain.New("def", domain.Fields{Nome: "Sala 12"})
	rows := []models.AppointmentRecord{toRecord(ap), toRecord(second)}

	got := toAppointments(rows)
	if !reflect.DeepEqual(got, []models.Appointment{ap, second}) {
		t.Fatalf("unexpected list: %+v", got)
	}

	if empty := toAppointments(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}
