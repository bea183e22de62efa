package bot

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hoanglong2311/telebot/internal/config"
	"github.com/hoanglong2311/telebot/internal/store"
	"github.com/robfig/cron/v3"
)

const (
	dateLayout = "2006-01-02"

	waterPerLogML = 250

	minHeightCM = 100
	maxHeightCM = 250
	minWeightKG = 30
	maxWeightKG = 200
)

// Sender delivers an outbound message to a chat. Implemented by the
// telegram client; faked in tests.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Bot routes incoming commands and runs the two reminder jobs.
type Bot struct {
	cfg    *config.Config
	store  *store.Store
	sender Sender
	cron   *cron.Cron
	quit   chan struct{}
	timer  *time.Timer
	logger *log.Logger
	now    func() time.Time
}

// New creates a fully configured Bot instance.
func New(cfg *config.Config, st *store.Store, sender Sender, logger *log.Logger) *Bot {
	c := cron.New(cron.WithLocation(cfg.LocalTimezone))
	return &Bot{
		cfg:    cfg,
		store:  st,
		sender: sender,
		cron:   c,
		quit:   make(chan struct{}),
		logger: logger,
		now:    time.Now,
	}
}

// Dispatch routes an incoming update to its command handler. Non-command
// updates are ignored.
func (b *Bot) Dispatch(update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil || !update.Message.IsCommand() {
		return
	}

	msg := update.Message
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.reply(chatID, greetingText)
	case "help":
		b.reply(chatID, helpText)
	case "setdate":
		b.handleSetDate(chatID, userID, msg.CommandArguments())
	case "countdown":
		b.handleCountdown(chatID, userID)
	case "sethealth":
		b.handleSetHealth(chatID, userID, msg.CommandArguments())
	case "water":
		b.handleLogWater(chatID, userID)
	default:
		b.reply(chatID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleSetDate(chatID, userID int64, rawArgs string) {
	args := strings.Fields(rawArgs)
	if len(args) == 0 {
		b.reply(chatID, "Please provide a date in YYYY-MM-DD format\nExample: /setdate 2025-12-31")
		return
	}

	dateStr := args[0]
	if _, err := time.Parse(dateLayout, dateStr); err != nil {
		b.reply(chatID, "Invalid date format! Please use YYYY-MM-DD\nExample: /setdate 2025-12-31")
		return
	}

	if err := b.store.SetTargetDate(userID, dateStr); err != nil {
		b.logger.Printf("set target date for user %d: %v", userID, err)
		b.reply(chatID, "Sorry, I couldn't save your date. Please try again.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Target date set to %s! You will receive daily reminders at 10:50 AM.", dateStr))
}

func (b *Bot) handleCountdown(chatID, userID int64) {
	dateStr, ok, err := b.store.TargetDate(userID)
	if err != nil {
		b.logger.Printf("read target date for user %d: %v", userID, err)
		b.reply(chatID, "Sorry, something went wrong. Please try again.")
		return
	}
	if !ok {
		b.reply(chatID, "Please set your target date first using /setdate YYYY-MM-DD")
		return
	}

	days, err := daysRemaining(dateStr, b.now(), b.cfg.LocalTimezone)
	if err != nil {
		b.logger.Printf("countdown for user %d: bad stored date %q: %v", userID, dateStr, err)
		b.reply(chatID, "Sorry, something went wrong. Please try again.")
		return
	}

	if days >= 0 {
		b.reply(chatID, fmt.Sprintf("%d days remaining until %s 🎉", days, dateStr))
	} else {
		b.reply(chatID, "The target date has passed!")
	}
}

func (b *Bot) handleSetHealth(chatID, userID int64, rawArgs string) {
	args := strings.Fields(rawArgs)
	if len(args) != 2 {
		b.reply(chatID, "Usage: /sethealth HEIGHT_CM WEIGHT_KG\nExample: /sethealth 170 65")
		return
	}

	height, errH := strconv.ParseFloat(args[0], 64)
	weight, errW := strconv.ParseFloat(args[1], 64)
	if errH != nil || errW != nil {
		b.reply(chatID, "Height and weight must be numbers.\nExample: /sethealth 170 65")
		return
	}
	if height < minHeightCM || height > maxHeightCM {
		b.reply(chatID, fmt.Sprintf("Height must be between %d and %d cm.", minHeightCM, maxHeightCM))
		return
	}
	if weight < minWeightKG || weight > maxWeightKG {
		b.reply(chatID, fmt.Sprintf("Weight must be between %d and %d kg.", minWeightKG, maxWeightKG))
		return
	}

	profile, err := b.store.SetProfile(userID, height, weight)
	if err != nil {
		b.logger.Printf("set health profile for user %d: %v", userID, err)
		b.reply(chatID, "Sorry, I couldn't save your profile. Please try again.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Health profile saved! Your daily water target is %d ml.\nLog each glass with /water.", profile.DailyTargetML))
}

func (b *Bot) handleLogWater(chatID, userID int64) {
	profile, ok, err := b.store.Profile(userID)
	if err != nil {
		b.logger.Printf("read health profile for user %d: %v", userID, err)
		b.reply(chatID, "Sorry, something went wrong. Please try again.")
		return
	}
	if !ok {
		b.reply(chatID, "Please set your health profile first using /sethealth HEIGHT WEIGHT")
		return
	}

	total, err := b.store.AddWater(userID, waterPerLogML)
	if err != nil {
		b.logger.Printf("log water for user %d: %v", userID, err)
		b.reply(chatID, "Sorry, I couldn't log that. Please try again.")
		return
	}

	percent := float64(total) / float64(profile.DailyTargetML) * 100
	b.reply(chatID, fmt.Sprintf("💧 Logged %d ml. Today: %d/%d ml (%.1f%%)", waterPerLogML, total, profile.DailyTargetML, percent))
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.sender.SendMessage(chatID, text); err != nil {
		b.logger.Printf("send to chat %d: %v", chatID, err)
	}
}

// daysRemaining floors the distance from now to midnight of the target date
// to whole days, with both instants interpreted in loc. The same rule serves
// the interactive command and the daily job so their answers always agree.
func daysRemaining(dateStr string, now time.Time, loc *time.Location) (int, error) {
	target, err := time.ParseInLocation(dateLayout, dateStr, loc)
	if err != nil {
		return 0, err
	}
	return int(math.Floor(target.Sub(now.In(loc)).Hours() / 24)), nil
}

const greetingText = "Hello! Use /setdate YYYY-MM-DD to set your target date, then /countdown to check remaining days.\n\nType /help for detailed instructions."

const helpText = "🤖 *Countdown Bot Guide* 🤖\n\n" +
	"*Available Commands:*\n" +
	"/start - Start the bot\n" +
	"/help - Show this help message\n" +
	"/setdate - Set your target date\n" +
	"/countdown - Check remaining days\n" +
	"/sethealth - Save your height (cm) and weight (kg)\n" +
	"/water - Log a glass of water (250 ml)\n\n" +
	"*How to use:*\n" +
	"1️⃣ Set your target date using:\n" +
	"   `/setdate YYYY-MM-DD`\n" +
	"   Example: `/setdate 2025-12-31`\n\n" +
	"2️⃣ Check remaining days using:\n" +
	"   `/countdown`\n\n" +
	"3️⃣ Save your health profile using:\n" +
	"   `/sethealth HEIGHT WEIGHT`\n" +
	"   Example: `/sethealth 170 65`\n\n" +
	"4️⃣ Log water with `/water` - your daily target is weight × 35 ml\n\n" +
	"*Date Format:*\n" +
	"• Use YYYY-MM-DD format\n" +
	"• Year must be 4 digits\n" +
	"• Month must be 2 digits (01-12)\n" +
	"• Day must be 2 digits (01-31)\n\n" +
	"*Reminders:*\n" +
	"• Daily countdown reminders arrive at 10:50 AM (Vietnam time)\n" +
	"• Hydration reminders arrive every 2 hours until you reach your target\n" +
	"• Your water counter resets when you update your profile\n\n" +
	"*Note:*\n" +
	"• Each user has their own date and hydration goal\n" +
	"• The bot remembers your data until restart\n" +
	"• Make sure you haven't blocked the bot to receive reminders"
