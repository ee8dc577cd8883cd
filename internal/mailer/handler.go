package mailer

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/nguyenchibao12/job-backend/internal/dto"
)

// MailHandler consumes notification events from the queue and turns them
// into outbound mail. Failures are returned to the consumer loop, which
// logs them; they never reach the request that produced the event.
type MailHandler struct {
	svc *MailService
}

func NewMailHandler(svc *MailService) *MailHandler {
	return &MailHandler{svc: svc}
}

func (h *MailHandler) HandleMessage(message string) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(message), &probe); err != nil {
		return fmt.Errorf("malformed event: %w", err)
	}

	switch probe.Type {
	case dto.EventJobSubmitted:
		var ev dto.JobSubmittedEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return err
		}
		return h.svc.send(h.svc.adminEmail,
			fmt.Sprintf("New job listing awaiting review: %s", ev.JobTitle),
			tmplJobSubmitted, ev)

	case dto.EventJobResubmitted:
		var ev dto.JobSubmittedEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return err
		}
		return h.svc.send(h.svc.adminEmail,
			"An approved job listing was edited",
			tmplJobResubmitted, ev)

	case dto.EventJobReviewed:
		var ev dto.JobReviewedEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return err
		}
		if ev.Status == "Approved" {
			return h.svc.send(ev.RecruiterEmail,
				fmt.Sprintf("Job listing approved: %s", ev.JobTitle),
				tmplJobApproved, ev)
		}
		return h.svc.send(ev.RecruiterEmail,
			fmt.Sprintf("Job listing rejected: %s", ev.JobTitle),
			tmplJobRejected, ev)

	case dto.EventApplicationHired:
		var ev dto.ApplicationDecidedEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return err
		}
		return h.svc.send(ev.StudentEmail,
			fmt.Sprintf("Congratulations! You have been hired at %s", ev.Company),
			tmplApplicationHired, ev)

	case dto.EventApplicationRejected:
		var ev dto.ApplicationDecidedEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return err
		}
		return h.svc.send(ev.StudentEmail,
			fmt.Sprintf("Update on your application at %s", ev.Company),
			tmplApplicationRejected, ev)

	case dto.EventResetPassword:
		var ev dto.ResetPasswordEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return err
		}
		link := fmt.Sprintf("%s/reset-password/%s", h.svc.frontendURL, url.PathEscape(ev.Token))
		return h.svc.send(ev.Email,
			"StudentWork password reset request",
			tmplResetPassword, map[string]string{"Link": link})
	}

	return fmt.Errorf("unknown event type %q", probe.Type)
}
