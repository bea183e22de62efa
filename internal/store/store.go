package store

import (
	"errors"

	"github.com/hoanglong2311/telebot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MLPerKg is the daily water target per kilogram of body weight.
const MLPerKg = 35

// Store gives command handlers and scheduled jobs access to the three
// per-user containers: target dates, health profiles, and water counters.
type Store struct {
	db *gorm.DB
}

// New wraps a database handle in a Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SetTargetDate stores a YYYY-MM-DD date for the user, replacing any prior value.
func (s *Store) SetTargetDate(userID int64, date string) error {
	rec := model.TargetDate{UserID: userID, Date: date}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// TargetDate returns the stored date for the user. The bool reports whether
// a date has been set.
func (s *Store) TargetDate(userID int64) (string, bool, error) {
	var rec model.TargetDate
	err := s.db.First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Date, true, nil
}

// TargetDates returns every stored target date.
func (s *Store) TargetDates() ([]model.TargetDate, error) {
	var recs []model.TargetDate
	if err := s.db.Order("user_id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// SetProfile stores the user's measurements with the derived daily water
// target and resets the water counter to zero in the same transaction.
func (s *Store) SetProfile(userID int64, heightCM, weightKG float64) (model.HealthProfile, error) {
	profile := model.HealthProfile{
		UserID:        userID,
		HeightCM:      heightCM,
		WeightKG:      weightKG,
		DailyTargetML: int(weightKG * MLPerKg),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&profile).Error; err != nil {
			return err
		}
		counter := model.WaterCounter{UserID: userID, ConsumedML: 0}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&counter).Error
	})
	return profile, err
}

// Profile returns the stored health profile for the user. The bool reports
// whether a profile has been set.
func (s *Store) Profile(userID int64) (model.HealthProfile, bool, error) {
	var profile model.HealthProfile
	err := s.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.HealthProfile{}, false, nil
	}
	if err != nil {
		return model.HealthProfile{}, false, err
	}
	return profile, true, nil
}

// AddWater increments the user's counter and returns the new total.
func (s *Store) AddWater(userID int64, amountML int) (int, error) {
	var total int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var counter model.WaterCounter
		err := tx.First(&counter, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = model.WaterCounter{UserID: userID}
		} else if err != nil {
			return err
		}
		counter.ConsumedML += amountML
		total = counter.ConsumedML
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&counter).Error
	})
	return total, err
}

// HydrationStatus pairs a user's logged consumption with their daily target.
type HydrationStatus struct {
	UserID        int64
	ConsumedML    int
	DailyTargetML int
}

// HydrationStatuses returns the status of every user with a health profile.
// Users without a counter row count as zero consumption.
func (s *Store) HydrationStatuses() ([]HydrationStatus, error) {
	var profiles []model.HealthProfile
	if err := s.db.Order("user_id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	var counters []model.WaterCounter
	if err := s.db.Find(&counters).Error; err != nil {
		return nil, err
	}

	consumed := make(map[int64]int, len(counters))
	for _, c := range counters {
		consumed[c.UserID] = c.ConsumedML
	}

	statuses := make([]HydrationStatus, 0, len(profiles))
	for _, p := range profiles {
		statuses = append(statuses, HydrationStatus{
			UserID:        p.UserID,
			ConsumedML:    consumed[p.UserID],
			DailyTargetML: p.DailyTargetML,
		})
	}
	return statuses, nil
}
