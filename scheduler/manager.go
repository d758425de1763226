package scheduler

import (
	"log"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/services"
	"github.com/go-co-op/gocron/v2"
)

// Manager 后台任务管理器
type Manager struct {
	scheduler   gocron.Scheduler
	leaderboard *services.LeaderboardService
	interval    time.Duration
}

// NewManager 创建新的任务管理器
func NewManager(leaderboard *services.LeaderboardService, interval time.Duration) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	return &Manager{scheduler: s, leaderboard: leaderboard, interval: interval}
}

// Start 注册任务并启动调度器
func (m *Manager) Start() {
	m.registerLeaderboardJob()
	m.scheduler.Start()
	log.Println("Task manager started successfully")
}

func (m *Manager) registerLeaderboardJob() {
	job := NewLeaderboardJob(m.leaderboard, m.interval)
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		log.Printf("Failed to shutdown scheduler: %v", err)
	}
	log.Println("Task manager stopped")
}
