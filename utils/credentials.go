package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SccPrefix 队伍登录标识的固定前缀
const SccPrefix = "SCC"

// GeneratePassword 生成指定长度的随机口令，crypto/rand 十六进制大写
func GeneratePassword(length int) string {
	if length <= 0 {
		length = 16
	}
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 不可用时退回时间戳派生口令，不中断注册
		return strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 16))[:length]
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:length]
}

// NextSccID 由上一个已签发标识推出下一个，数字后缀递增并补零到三位
func NextSccID(lastID string) string {
	next := 1
	if lastID != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(lastID, SccPrefix)); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", SccPrefix, next)
}

// FallbackSccID 唯一性重试耗尽后的降级标识，时间戳后缀
func FallbackSccID(now time.Time) string {
	return fmt.Sprintf("%s%d", SccPrefix, now.Unix())
}

// CustomPsID 自定义题目编号，序号按自定义题目计数递增
func CustomPsID(index int) string {
	return fmt.Sprintf("CUS_%02d", index)
}

// CatalogPsID 目录题目编号
func CatalogPsID(index int) string {
	return fmt.Sprintf("HO2K25%03d", index)
}
