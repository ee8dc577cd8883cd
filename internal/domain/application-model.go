package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationStatusSubmitted    = "Submitted"
	ApplicationStatusViewed       = "Viewed"
	ApplicationStatusShortlisted  = "Shortlisted"
	ApplicationStatusRejected     = "Rejected"
	ApplicationStatusInterviewing = "Interviewing"
	ApplicationStatusHired        = "Hired"
)

// Application links a job, the applying student and the job's recruiter.
// The recruiter id is denormalized from the Job at creation so status
// updates authorize without a live Job lookup.
type Application struct {
	ID uint `gorm:"primaryKey" json:"id"`

	JobID uint `gorm:"not null;uniqueIndex:uidx_applications_job_student" json:"job_id"`
	Job   *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`

	StudentID uint  `gorm:"not null;uniqueIndex:uidx_applications_job_student" json:"student_id"`
	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`

	RecruiterID uint  `gorm:"not null;index" json:"recruiter_id"`
	Recruiter   *User `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`

	ApplicationDate time.Time `json:"application_date"`
	Status          string    `gorm:"type:varchar(20);not null;default:Submitted" json:"status"`

	CoverLetter    string `gorm:"type:text" json:"cover_letter"`
	CVSnapshotLink string `json:"cv_snapshot_link"`
	RecruiterNotes string `gorm:"type:text" json:"recruiter_notes"`

	gorm.Model
}

func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusSubmitted, ApplicationStatusViewed, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusInterviewing, ApplicationStatusHired:
		return true
	}
	return false
}
