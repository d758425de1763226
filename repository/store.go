package repository

import (
	"database/sql/driver"
	"errors"
	"net"

	"gorm.io/gorm"
)

// Store 聚合各实体仓库。Transaction 内得到的 Store 绑定同一事务，
// 事务内外调用方使用同一套仓库方法。
type Store struct {
	db *gorm.DB

	Teams         TeamRepo
	Members       MemberRepo
	Tasks         TaskRepo
	Statements    ProblemStatementRepo
	Admins        AdminRepo
	Announcements AnnouncementRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Teams:         TeamRepo{db: db},
		Members:       MemberRepo{db: db},
		Tasks:         TaskRepo{db: db},
		Statements:    ProblemStatementRepo{db: db},
		Admins:        AdminRepo{db: db},
		Announcements: AnnouncementRepo{db: db},
	}
}

// DB 暴露底层句柄，仅供迁移和测试装配使用
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction 在单个事务中执行 fn，fn 收到事务作用域的 Store
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// IsTransient 存储是否为暂时不可达，此类错误允许一次重连重试
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
