package services

import (
	"time"

	"github.com/SRKRCC/HackOverflow-backend/models"
	"github.com/google/uuid"
)

type AuditLevel string

const (
	AuditInfo  AuditLevel = "INFO"
	AuditWarn  AuditLevel = "WARN"
	AuditError AuditLevel = "ERROR"
)

// AuditEvent 审计事件的结构化记录
type AuditEvent struct {
	Timestamp  string                 `json:"timestamp"`
	Service    string                 `json:"service"`
	Env        string                 `json:"env"`
	Level      AuditLevel             `json:"level"`
	EventType  string                 `json:"event_type"`
	Action     string                 `json:"action"`
	Message    string                 `json:"message"`
	RequestID  string                 `json:"request_id,omitempty"`
	Role       models.Role            `json:"role,omitempty"`
	TeamID     uint                   `json:"team_id,omitempty"`
	AdminID    uint                   `json:"admin_id,omitempty"`
	Resource   string                 `json:"resource,omitempty"`
	StatusCode int                    `json:"status_code,omitempty"`
	IP         string                 `json:"ip,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// AuditContext 单次请求的审计上下文
type AuditContext struct {
	RequestID string
	Role      models.Role
	TeamID    uint
	AdminID   uint
	IP        string
}

func NewRequestID() string {
	return uuid.NewString()
}

// AuditService 将领域动作转为结构化事件并投递到 sink。
// 投递为尽力而为，任何 sink 故障都不会影响主流程。
type AuditService struct {
	sink    AuditSink
	service string
	env     string
}

func NewAuditService(sink AuditSink, env string) *AuditService {
	if env == "" {
		env = "development"
	}
	return &AuditService{sink: sink, service: "hackoverflow-backend", env: env}
}

func (s *AuditService) emit(level AuditLevel, eventType, action, message string, ctx AuditContext, resource string, status int, meta map[string]interface{}) {
	if s == nil || s.sink == nil {
		return
	}
	entry := AuditEvent{
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Service:    s.service,
		Env:        s.env,
		Level:      level,
		EventType:  eventType,
		Action:     action,
		Message:    message,
		RequestID:  ctx.RequestID,
		Role:       ctx.Role,
		TeamID:     ctx.TeamID,
		AdminID:    ctx.AdminID,
		Resource:   resource,
		StatusCode: status,
		IP:         ctx.IP,
		Meta:       meta,
	}
	s.sink.Write(entry)
}

func (s *AuditService) LogAuth(action string, ctx AuditContext, resource string, status int, meta map[string]interface{}) {
	level := AuditInfo
	if action == "LOGIN_FAILED" {
		level = AuditWarn
	}
	s.emit(level, "AUTH", action, "auth "+action, ctx, resource, status, meta)
}

func (s *AuditService) LogRegistration(action string, ctx AuditContext, resource string, status int, meta map[string]interface{}) {
	level := AuditInfo
	if action == "REGISTER_FAILED" {
		level = AuditError
	}
	s.emit(level, "TEAM_REGISTRATION", action, "team registration "+action, ctx, resource, status, meta)
}

func (s *AuditService) LogTask(action string, ctx AuditContext, resource string, status int, meta map[string]interface{}) {
	s.emit(AuditInfo, "TASK_LIFECYCLE", action, "task "+action, ctx, resource, status, meta)
}

func (s *AuditService) LogAdminAction(action string, ctx AuditContext, resource string, status int, meta map[string]interface{}) {
	s.emit(AuditInfo, "ADMIN_ACTION", action, "admin "+action, ctx, resource, status, meta)
}

func (s *AuditService) LogEmail(delivered bool, recipient, subject string, ctx AuditContext, meta map[string]interface{}) {
	action, level := "EMAIL_SENT", AuditInfo
	if !delivered {
		action, level = "EMAIL_FAILED", AuditWarn
	}
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["recipient"] = recipient
	meta["subject"] = subject
	s.emit(level, "EMAIL", action, "credential email dispatch", ctx, "email", 0, meta)
}

func (s *AuditService) Close() {
	if s != nil && s.sink != nil {
		s.sink.Close()
	}
}
