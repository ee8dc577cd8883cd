package domain

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	JobStatusPendingPayment  = "PendingPayment"
	JobStatusPendingApproval = "PendingApproval"
	JobStatusApproved        = "Approved"
	JobStatusRejected        = "Rejected"
	JobStatusExpired         = "Expired"
)

const (
	PaymentStatusUnpaid   = "Unpaid"
	PaymentStatusPending  = "Pending"
	PaymentStatusVerified = "Verified"
	PaymentStatusRejected = "Rejected"
)

const (
	JobTypePartTime   = "Part-time"
	JobTypeFlexible   = "Flexible"
	JobTypeFullTime   = "Full-time"
	JobTypeInternship = "Internship"
)

const DefaultJobRejectionReason = "Payment could not be verified or the listing content is not appropriate"

type Job struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Company      string         `gorm:"not null" json:"company"`
	Logo         string         `json:"logo"`
	Location     string         `gorm:"not null" json:"location"`
	Salary       string         `gorm:"not null" json:"salary"`
	Type         string         `gorm:"type:varchar(20);not null;default:Part-time" json:"type"`
	Slots        pq.StringArray `gorm:"type:text[]" json:"slots,omitempty"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Requirements pq.StringArray `gorm:"type:text[]" json:"requirements,omitempty"`
	Benefits     pq.StringArray `gorm:"type:text[]" json:"benefits,omitempty"`

	RecruiterID uint  `gorm:"not null;index" json:"recruiter_id"`
	Recruiter   *User `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:PendingPayment" json:"status"`

	PackageType   string     `gorm:"type:varchar(10);not null;default:1month" json:"package_type"`
	Duration      int        `gorm:"not null;default:1" json:"duration"`
	PaymentAmount int64      `gorm:"not null;default:150000" json:"payment_amount"`
	PaymentProof  *string    `json:"payment_proof,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	PaymentStatus string     `gorm:"type:varchar(10);not null;default:Unpaid" json:"payment_status"`

	ReviewedByID    *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`

	ApplicantsCount int        `gorm:"-" json:"applicants_count"`
	PostedDate      time.Time  `json:"posted_date"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`

	gorm.Model
}

// PackageInfo is the price/duration tier behind a packageType selection.
type PackageInfo struct {
	Amount         int64
	DurationMonths int
}

const (
	PackageOneMonth    = "1month"
	PackageThreeMonths = "3months"
)

var jobPackages = map[string]PackageInfo{
	PackageOneMonth:    {Amount: 150000, DurationMonths: 1},
	PackageThreeMonths: {Amount: 400000, DurationMonths: 3},
}

// LookupPackage resolves a package selection. Amount and duration on a Job
// are always derived from this table, never taken from client input. An
// unknown selection falls back to the 1month tier.
func LookupPackage(packageType string) (string, PackageInfo) {
	if info, ok := jobPackages[packageType]; ok {
		return packageType, info
	}
	return PackageOneMonth, jobPackages[PackageOneMonth]
}

func ValidPackageType(packageType string) bool {
	_, ok := jobPackages[packageType]
	return ok
}

func ValidJobType(jobType string) bool {
	switch jobType {
	case JobTypePartTime, JobTypeFlexible, JobTypeFullTime, JobTypeInternship:
		return true
	}
	return false
}
