package bot

import (
	"fmt"
	"time"
)

const (
	// 10:50 in the configured reference timezone.
	dailyReminderSpec = "50 10 * * *"

	hydrationInitialDelay = 5 * time.Minute
	hydrationInterval     = 2 * time.Hour
)

// StartScheduler registers the daily countdown job with cron and kicks off
// the hydration reminder loop.
func (b *Bot) StartScheduler() error {
	_, err := b.cron.AddFunc(dailyReminderSpec, func() {
		go b.sendDailyReminders()
	})
	if err != nil {
		return err
	}
	b.cron.Start()

	b.timer = time.AfterFunc(hydrationInitialDelay, b.hydrationLoop)
	return nil
}

// StopScheduler drains the cron scheduler and stops the hydration loop.
func (b *Bot) StopScheduler() {
	ctx := b.cron.Stop()
	<-ctx.Done()

	if b.timer != nil {
		b.timer.Stop()
	}
	close(b.quit)
}

func (b *Bot) hydrationLoop() {
	b.sendHydrationReminders()

	ticker := time.NewTicker(hydrationInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.sendHydrationReminders()
		case <-b.quit:
			return
		}
	}
}

// sendDailyReminders pushes a countdown message to every user with a stored
// target date. A failed send for one user never blocks the rest.
func (b *Bot) sendDailyReminders() {
	records, err := b.store.TargetDates()
	if err != nil {
		b.logger.Printf("daily reminder: fetch target dates: %v", err)
		return
	}

	now := b.now()
	for _, rec := range records {
		days, err := daysRemaining(rec.Date, now, b.cfg.LocalTimezone)
		if err != nil {
			b.logger.Printf("daily reminder: user %d: bad stored date %q: %v", rec.UserID, rec.Date, err)
			continue
		}

		text := "🔔 The target date has passed!"
		if days >= 0 {
			text = fmt.Sprintf("🔔 Daily Reminder:\n%d days remaining until %s 🎉", days, rec.Date)
		}
		if err := b.sender.SendMessage(rec.UserID, text); err != nil {
			b.logger.Printf("daily reminder: send to user %d: %v", rec.UserID, err)
		}
	}
}

// sendHydrationReminders nudges every user with a health profile who is
// still below their daily water target.
func (b *Bot) sendHydrationReminders() {
	statuses, err := b.store.HydrationStatuses()
	if err != nil {
		b.logger.Printf("hydration reminder: fetch statuses: %v", err)
		return
	}

	for _, st := range statuses {
		if st.ConsumedML >= st.DailyTargetML {
			continue
		}
		text := fmt.Sprintf("💧 Hydration reminder: you've logged %d ml today, %d ml to go!", st.ConsumedML, st.DailyTargetML-st.ConsumedML)
		if err := b.sender.SendMessage(st.UserID, text); err != nil {
			b.logger.Printf("hydration reminder: send to user %d: %v", st.UserID, err)
		}
	}
}
