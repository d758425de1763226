package scheduler

import (
	"log"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/services"
	"github.com/go-co-op/gocron/v2"
)

// LeaderboardJob 周期性重算排行榜，让缓存常驻新鲜，
// 避免 TTL 过期后第一个读请求扛重算延迟
type LeaderboardJob struct {
	leaderboard *services.LeaderboardService
	interval    time.Duration
}

func NewLeaderboardJob(leaderboard *services.LeaderboardService, interval time.Duration) *LeaderboardJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &LeaderboardJob{leaderboard: leaderboard, interval: interval}
}

func (j *LeaderboardJob) GetName() string {
	return "leaderboard_recompute"
}

func (j *LeaderboardJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *LeaderboardJob) Execute() {
	if err := j.leaderboard.Recompute(); err != nil {
		log.Printf("Leaderboard recompute job failed: %v", err)
	}
}
