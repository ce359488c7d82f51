package service

import (
	"context"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"gala/config"
	"gala/internal/domain"
	"gala/pkg/mailer"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var applicationTmpl = template.Must(template.New("application").Parse(`
<h2>New Job Application Received</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.PhoneNumber}}</p>
<p><strong>Job Position:</strong> {{.RecruitmentID}}</p>
<p><strong>Application Date:</strong> {{.Date}}</p>
{{if .HasResume}}<p><strong>Resume:</strong> Attached</p>{{else}}<p><strong>Resume:</strong> No file attached</p>{{end}}
<hr>
<p><em>This email was sent from the {{.Site}} website contact form.</em></p>
`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<h2>Thank you for your application!</h2>
<p>Dear {{.Name}},</p>
<p>We have successfully received your job application. Our HR team will review your application and get back to you soon.</p>
<p>Thank you for your interest in joining {{.Site}}.</p>
<hr>
<p>Best regards,<br>
{{.Site}} HR Team</p>
`))

type ContactInput struct {
	Name          string
	Email         string
	PhoneNumber   string
	RecruitmentID string
	Resume        *mailer.Attachment
}

type applicationView struct {
	ContactInput
	Date      string
	HasResume bool
	Site      string
}

// EmailService forwards job applications to the HR mailbox.
type EmailService struct {
	sender         mailer.Sender
	cfg            config.MailConfig
	maxResumeBytes int
	log            *zap.Logger
}

func NewEmailService(sender mailer.Sender, cfg config.MailConfig, maxResumeMB int, log *zap.Logger) *EmailService {
	return &EmailService{sender: sender, cfg: cfg, maxResumeBytes: maxResumeMB << 20, log: log}
}

// MaxResumeBytes is the largest accepted resume.
func (s *EmailService) MaxResumeBytes() int { return s.maxResumeBytes }

// SendApplication mails the application (with resume) to the recipient and
// a confirmation to the applicant.
func (s *EmailService) SendApplication(ctx context.Context, in ContactInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.RecruitmentID = strings.TrimSpace(in.RecruitmentID)
	if in.Name == "" || in.Email == "" || in.PhoneNumber == "" || in.RecruitmentID == "" {
		return domain.BadRequest("All fields are required")
	}
	if !emailPattern.MatchString(in.Email) {
		return domain.BadRequest("Invalid email format")
	}
	if in.Resume != nil {
		if len(in.Resume.Data) > s.maxResumeBytes {
			return domain.BadRequest(fmt.Sprintf("Resume file too large. Maximum size is %dMB", s.maxResumeBytes>>20))
		}
		if !mimetype.Detect(in.Resume.Data).Is("application/pdf") {
			return domain.BadRequest("Only PDF files are allowed for resume")
		}
	}

	application := mailer.Message{
		To:       s.cfg.RecipientEmail,
		Subject:  "New Job Application from " + in.Name,
		Template: applicationTmpl,
		Data: applicationView{
			ContactInput: in,
			Date:         time.Now().Format("2006-01-02"),
			HasResume:    in.Resume != nil,
			Site:         s.cfg.SiteName,
		},
	}
	if in.Resume != nil {
		application.Attachments = []mailer.Attachment{*in.Resume}
	}
	confirmation := mailer.Message{
		To:       in.Email,
		Subject:  "Thank you for your application - " + s.cfg.SiteName,
		Template: confirmationTmpl,
		Data:     applicationView{ContactInput: in, Site: s.cfg.SiteName},
	}

	if err := s.sender.Send(ctx, application, confirmation); err != nil {
		s.log.Error("send application mail", zap.String("recruitment_id", in.RecruitmentID), zap.Error(err))
		return err
	}
	s.log.Info("application forwarded", zap.String("recruitment_id", in.RecruitmentID))
	return nil
}
