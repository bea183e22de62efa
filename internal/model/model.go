package model

import "time"

// TargetDate stores the calendar date a Telegram user is counting down to.
// The date is kept as a plain YYYY-MM-DD string; the reference timezone is
// applied only when remaining days are computed.
type TargetDate struct {
	UserID    int64  `gorm:"primaryKey"`
	Date      string `gorm:"not null"`
	UpdatedAt time.Time
}

// HealthProfile stores a user's measurements and derived daily water target.
type HealthProfile struct {
	UserID        int64   `gorm:"primaryKey"`
	HeightCM      float64 `gorm:"not null"`
	WeightKG      float64 `gorm:"not null"`
	DailyTargetML int     `gorm:"not null"`
	UpdatedAt     time.Time
}

// WaterCounter tracks the milliliters a user has logged since their profile
// was last set.
type WaterCounter struct {
	UserID     int64 `gorm:"primaryKey"`
	ConsumedML int   `gorm:"not null"`
	UpdatedAt  time.Time
}
