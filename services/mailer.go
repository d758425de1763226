package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/SRKRCC/HackOverflow-backend/config"
	"github.com/SRKRCC/HackOverflow-backend/dto"
	"github.com/SRKRCC/HackOverflow-backend/models"
)

// CredentialMail 注册成功后发给队长的凭据邮件内容
type CredentialMail struct {
	TeamTitle        string
	SccID            string
	SccPassword      string
	Members          []dto.MemberInput
	ProblemStatement *models.ProblemStatement
	LeadEmail        string
}

// Mailer 邮件投递端。投递失败不回滚注册。
type Mailer interface {
	SendCredentials(mail CredentialMail) error
}

// SMTPMailer 经 SMTP 发送 HTML 凭据邮件
type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendCredentials(mail CredentialMail) error {
	subject := fmt.Sprintf("Registration Confirmation - Team %s", mail.TeamTitle)
	body := renderCredentialHTML(mail)

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + mail.LeadEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{mail.LeadEmail}, []byte(msg))
}

func renderCredentialHTML(mail CredentialMail) string {
	var rows strings.Builder
	for i, member := range mail.Members {
		rows.WriteString(fmt.Sprintf("<tr><td>%d</td><td>%s</td><td>%s</td></tr>", i+1, member.Name, member.Email))
	}

	psLine := ""
	if mail.ProblemStatement != nil {
		psLine = fmt.Sprintf("<p><b>Problem Statement:</b> %s (%s)</p>", mail.ProblemStatement.Title, mail.ProblemStatement.PsID)
	}

	return fmt.Sprintf(`<html><body>
<h2>Welcome to HackOverflow, Team %s!</h2>
<p>Your team has been registered successfully. Please save your credentials safely.</p>
<p><b>SCC ID:</b> %s<br/><b>Password:</b> %s</p>
%s
<table border="0" cellpadding="8"><tr><th>#</th><th>Name</th><th>Email</th></tr>%s</table>
</body></html>`, mail.TeamTitle, mail.SccID, mail.SccPassword, psLine, rows.String())
}

// LogMailer 开发与测试环境用，只记录不外发，也不落口令明文
type LogMailer struct{}

func (LogMailer) SendCredentials(mail CredentialMail) error {
	log.Printf("credential email skipped (mailer disabled): team=%s scc_id=%s to=%s", mail.TeamTitle, mail.SccID, mail.LeadEmail)
	return nil
}
