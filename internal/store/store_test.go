package store

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hoanglong2311/telebot/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite memory: %v", err)
	}
	if err := db.AutoMigrate(&model.TargetDate{}, &model.HealthProfile{}, &model.WaterCounter{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return New(db)
}

func TestTargetDateRoundTripAndOverwrite(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, ok, err := s.TargetDate(1); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := s.SetTargetDate(1, "2025-12-31"); err != nil {
		t.Fatalf("set target date: %v", err)
	}
	if err := s.SetTargetDate(1, "2026-01-15"); err != nil {
		t.Fatalf("overwrite target date: %v", err)
	}

	date, ok, err := s.TargetDate(1)
	if err != nil {
		t.Fatalf("read target date: %v", err)
	}
	if !ok || date != "2026-01-15" {
		t.Fatalf("got %q (set=%v), want overwritten value", date, ok)
	}

	all, err := s.TargetDates()
	if err != nil {
		t.Fatalf("list target dates: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("overwrite must not create a second row, got %d", len(all))
	}
}

func TestSetProfileComputesTargetAndResetsCounter(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	profile, err := s.SetProfile(1, 170, 65)
	if err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if profile.DailyTargetML != 2275 {
		t.Fatalf("daily target = %d, want 2275", profile.DailyTargetML)
	}

	if _, err := s.AddWater(1, 750); err != nil {
		t.Fatalf("add water: %v", err)
	}
	if _, err := s.SetProfile(1, 170, 80); err != nil {
		t.Fatalf("re-set profile: %v", err)
	}

	statuses, err := s.HydrationStatuses()
	if err != nil {
		t.Fatalf("hydration statuses: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected one status, got %+v", statuses)
	}
	if statuses[0].ConsumedML != 0 {
		t.Fatalf("re-setting the profile must reset the counter, got %d", statuses[0].ConsumedML)
	}
	if statuses[0].DailyTargetML != 2800 {
		t.Fatalf("daily target = %d, want 2800", statuses[0].DailyTargetML)
	}
}

func TestAddWaterAccumulates(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	var total int
	var err error
	for i := 0; i < 4; i++ {
		total, err = s.AddWater(1, 250)
		if err != nil {
			t.Fatalf("add water: %v", err)
		}
	}
	if total != 1000 {
		t.Fatalf("total = %d, want 1000", total)
	}
}

func TestHydrationStatusesDefaultsMissingCounterToZero(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, err := s.SetProfile(1, 170, 65); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	// Counter row dropped behind the profile's back.
	if err := s.db.Delete(&model.WaterCounter{}, "user_id = ?", int64(1)).Error; err != nil {
		t.Fatalf("delete counter: %v", err)
	}

	statuses, err := s.HydrationStatuses()
	if err != nil {
		t.Fatalf("hydration statuses: %v", err)
	}
	if len(statuses) != 1 || statuses[0].ConsumedML != 0 {
		t.Fatalf("missing counter should read as zero, got %+v", statuses)
	}
}
