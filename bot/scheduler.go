package bot

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"community-bot/database"
	"community-bot/ledger"
	"community-bot/models"
	"community-bot/utils"

	"github.com/robfig/cron/v3"
)

// StartScheduler starts the cron jobs.
func (b *Bot) StartScheduler(db *sql.DB, cfg *models.Settings) {
	log.Println("Initializing scheduler...")
	b.sched = cron.New()
	_, err := b.sched.AddFunc("@daily", func() {
		participationSummary(db, cfg)
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	b.sched.Start()
	log.Println("Participation summary scheduled to run daily.")
}

// stopScheduler stops the cron jobs.
func (b *Bot) stopScheduler() {
	if b.sched != nil {
		b.sched.Stop()
		log.Println("Scheduler stopped.")
	}
}

// participationSummary tallies in-window activity per tier and mirrors the
// result to the admin channel.
func participationSummary(db *sql.DB, cfg *models.Settings) {
	log.Println("Running participation summary...")

	since := time.Now().AddDate(0, 0, -cfg.Activity.WindowDays).Unix()
	counts, err := database.ActiveUserCounts(db, since)
	if err != nil {
		utils.Error("scheduler", "participation_summary", fmt.Sprintf("failed to query activity: %v", err))
		return
	}

	tally := make(map[models.Tier]int)
	for _, count := range counts {
		tally[ledger.TierForCount(count, cfg.Tiers)]++
	}

	utils.Info("scheduler", "participation_summary", fmt.Sprintf(
		"Active users in the last %d days: %d (elite: %d, detective: %d, helper: %d)",
		cfg.Activity.WindowDays, len(counts),
		tally[models.TierElite], tally[models.TierDetective], tally[models.TierHelper],
	))
}
