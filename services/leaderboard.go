package services

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/SRKRCC/HackOverflow-backend/repository"
)

type LeaderboardEntry struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	TotalPoints    int    `json:"totalPoints"`
	CompletedTasks int    `json:"completedTasks"`
	Rank           int    `json:"rank"`
}

// TiePolicy 同分队伍的名次策略
type TiePolicy string

const (
	// TieByTeamID 同分按队伍主键升序排出确定名次
	TieByTeamID TiePolicy = "team_id"
	// TieDense 同分共享名次（标准竞赛排名）
	TieDense TiePolicy = "dense"
)

type cachedBoard struct {
	entries    []LeaderboardEntry
	computedAt time.Time
}

// LeaderboardService 排行榜引擎。重算结果整体换入缓存（原子交换，不原地改），
// 读方永远拿到一致的快照，过期读触发惰性重算。
type LeaderboardService struct {
	store  *repository.Store
	ttl    time.Duration
	policy TiePolicy
	clock  func() time.Time

	cache atomic.Value // cachedBoard
	mu    sync.Mutex   // 同一时刻只允许一个重算
}

func NewLeaderboardService(store *repository.Store, ttl time.Duration, policy TiePolicy, clock func() time.Time) *LeaderboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if policy != TieDense {
		policy = TieByTeamID
	}
	if clock == nil {
		clock = time.Now
	}
	return &LeaderboardService{store: store, ttl: ttl, policy: policy, clock: clock}
}

// Recompute 全量重算并换入缓存。幂等：数据不变时两次输出完全一致。
// 存储暂时不可达时重试一次，仍失败则保留旧缓存。
func (s *LeaderboardService) Recompute() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams, err := s.store.Teams.AllWithTasks()
	if err != nil && repository.IsTransient(err) {
		teams, err = s.store.Teams.AllWithTasks()
	}
	if err != nil {
		return err
	}

	entries := rankTeams(teams, s.policy)
	s.cache.Store(cachedBoard{entries: entries, computedAt: s.clock()})
	return nil
}

// Get 读穿缓存。缓存缺失或过期时触发重算；重算失败只记日志，
// 继续提供旧值（宁可陈旧，不可不可用）。
func (s *LeaderboardService) Get() []LeaderboardEntry {
	board, ok := s.cache.Load().(cachedBoard)
	if !ok || s.clock().Sub(board.computedAt) >= s.ttl {
		if err := s.Recompute(); err != nil {
			log.Printf("Leaderboard recompute failed, serving cached value: %v", err)
		}
		if fresh, ok := s.cache.Load().(cachedBoard); ok {
			return fresh.entries
		}
		return []LeaderboardEntry{}
	}
	return board.entries
}

// rankTeams 统计已完成任务的得分并排名
func rankTeams(teams []models.Team, policy TiePolicy) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		total, completed := 0, 0
		for _, task := range team.Tasks {
			if task.Status != models.TaskStatusCompleted {
				continue
			}
			completed++
			if task.PointsEarned != nil {
				total += *task.PointsEarned
			} else {
				total += task.Points
			}
		}
		entries = append(entries, LeaderboardEntry{
			ID:             team.ID,
			Title:          team.Title,
			TotalPoints:    total,
			CompletedTasks: completed,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].ID < entries[j].ID
	})

	switch policy {
	case TieDense:
		rank := 0
		lastPoints := -1
		for i := range entries {
			if entries[i].TotalPoints != lastPoints {
				rank++
				lastPoints = entries[i].TotalPoints
			}
			entries[i].Rank = rank
		}
	default:
		for i := range entries {
			entries[i].Rank = i + 1
		}
	}

	return entries
}
