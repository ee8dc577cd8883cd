package dto

// Notification event payloads published to the queue and consumed by the
// mailer. Every payload carries its Type so the consumer can dispatch from
// the message body alone.

const (
	EventJobSubmitted        = "job.submitted"
	EventJobResubmitted      = "job.resubmitted"
	EventJobReviewed         = "job.reviewed"
	EventApplicationHired    = "application.hired"
	EventApplicationRejected = "application.rejected"
	EventResetPassword       = "user.reset_password"
)

// JobSubmittedEvent tells the admin a paid listing is waiting for review.
// Also used for job.resubmitted when an approved listing was edited.
type JobSubmittedEvent struct {
	Type          string `json:"type"`
	JobID         uint   `json:"job_id"`
	JobTitle      string `json:"job_title"`
	Company       string `json:"company"`
	RecruiterID   uint   `json:"recruiter_id"`
	PaymentAmount int64  `json:"payment_amount"`
	ProofURL      string `json:"proof_url,omitempty"`
}

type JobReviewedEvent struct {
	Type            string `json:"type"`
	JobID           uint   `json:"job_id"`
	JobTitle        string `json:"job_title"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	RecruiterName   string `json:"recruiter_name"`
	RecruiterEmail  string `json:"recruiter_email"`
}

type ApplicationDecidedEvent struct {
	Type           string `json:"type"`
	StudentName    string `json:"student_name"`
	StudentEmail   string `json:"student_email"`
	JobTitle       string `json:"job_title"`
	Company        string `json:"company"`
	Location       string `json:"location,omitempty"`
	Salary         string `json:"salary,omitempty"`
	RecruiterName  string `json:"recruiter_name,omitempty"`
	RecruiterEmail string `json:"recruiter_email,omitempty"`
	RecruiterPhone string `json:"recruiter_phone,omitempty"`
}

type ResetPasswordEvent struct {
	Type      string `json:"type"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
