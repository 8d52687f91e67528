// services/scheduler.go
package services

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"grindspace-cafe/storage"
	"grindspace-cafe/utils"

	"github.com/go-co-op/gocron/v2"
)

// StartLeaderboardScheduler runs the derived-view maintenance jobs:
// every minute the top-5 board is rebuilt from the per-address burn counters
// (so it reconciles with the authoritative totals), and every 15 minutes a
// JSON snapshot is pushed to R2 for the static pages when R2 is configured.
func (s *LeaderboardService) StartLeaderboardScheduler(lister storage.PrefixLister) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := s.Board.Rebuild(lister); err != nil {
				log.Printf("[Scheduler] Leaderboard rebuild failed: %v", err)
			}
		}),
	)

	if !utils.R2Enabled() {
		log.Println("[Scheduler] R2 not configured, skipping snapshot export job")
		return
	}

	_, _ = sched.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() {
			entries, err := s.Board.Top()
			if err != nil {
				log.Printf("[Scheduler] Snapshot read failed: %v", err)
				return
			}
			total, err := s.Recorder.TotalBurned()
			if err != nil {
				log.Printf("[Scheduler] Snapshot read failed: %v", err)
				return
			}

			payload, err := json.Marshal(map[string]any{
				"entries":      entries,
				"total_burned": strconv.FormatFloat(total, 'f', -1, 64),
				"exported_at":  time.Now().UTC().Format(time.RFC3339),
			})
			if err != nil {
				log.Printf("[Scheduler] Snapshot encode failed: %v", err)
				return
			}

			url, err := utils.UploadBytesToR2("snapshots/burn-leaderboard.json", payload, "application/json")
			if err != nil {
				log.Printf("[Scheduler] Snapshot upload failed: %v", err)
				return
			}
			log.Printf("✅ Leaderboard snapshot exported: %s", url)
		}),
	)
}
