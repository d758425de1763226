package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	leaderboardCacheKey = "hackoverflow:leaderboard"
	leaderboardCacheTTL = 30 * time.Second
)

// --- 排行榜接口 ---

// GetLeaderboard 公开排行榜。先查 redis 镜像，未命中则读进程内缓存并回填。
// redis 故障时直接降级为进程内缓存，不向外暴露。
func (h *Handlers) GetLeaderboard(c *gin.Context) {
	ctx := context.Background()

	if h.RDB != nil {
		// redis.Nil 与连接错误同样处理：降级走进程内缓存
		cached, err := h.RDB.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	entries := h.Leaderboard.Get()
	payload := gin.H{"message": "Leaderboard fetched successfully", "data": entries}

	if h.RDB != nil {
		if raw, err := json.Marshal(payload); err == nil {
			h.RDB.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL)
		}
	}
	c.JSON(http.StatusOK, payload)
}

// AdminGetLeaderboard 管理端直读进程内缓存，不走 redis 镜像。响应是裸数组。
func (h *Handlers) AdminGetLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.Leaderboard.Get())
}
