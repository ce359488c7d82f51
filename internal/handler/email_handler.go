package handler

import (
	"io"
	"net/http"

	"gala/internal/service"
	"gala/pkg/mailer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EmailHandler struct {
	svc *service.EmailService
	log *zap.Logger
}

func NewEmailHandler(svc *service.EmailService, log *zap.Logger) *EmailHandler {
	return &EmailHandler{svc: svc, log: log}
}

// Contact handles POST /api/email/contact: a job application with an
// optional PDF resume.
func (h *EmailHandler) Contact(c *gin.Context) {
	in := service.ContactInput{
		Name:          c.PostForm("name"),
		Email:         c.PostForm("email"),
		PhoneNumber:   c.PostForm("phone_number"),
		RecruitmentID: c.PostForm("recruitment_id"),
	}
	if fh, err := c.FormFile("resume"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "could not read resume"})
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, int64(h.svc.MaxResumeBytes())+1))
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "could not read resume"})
			return
		}
		in.Resume = &mailer.Attachment{Name: fh.Filename, Data: data}
	}

	if err := h.svc.SendApplication(c.Request.Context(), in); err != nil {
		status, body := errorBody(c, h.log, err)
		if status == http.StatusInternalServerError {
			body["message"] = "Failed to send application. Please try again later."
		}
		body["success"] = false
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application submitted successfully. You will receive a confirmation email shortly.",
	})
}
