package domain

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

const MaxCompanyImages = 6

// User carries the identity core plus role-specific profile sections.
// Student fields and recruiter fields coexist on the row; writes outside the
// owner's role are refused at the service layer.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:student" json:"role"`

	Location string  `json:"location"`
	Avatar   *string `json:"avatar,omitempty"`
	About    string  `json:"about"`

	// student profile
	Education  datatypes.JSON `json:"education,omitempty"`
	Experience datatypes.JSON `json:"experience,omitempty"`
	Skills     pq.StringArray `gorm:"type:text[]" json:"skills,omitempty"`
	Languages  datatypes.JSON `json:"languages,omitempty"`

	// recruiter profile
	CompanyName         string         `json:"company_name"`
	CompanyDescription  string         `json:"company_description"`
	CompanyWebsite      string         `json:"company_website"`
	CompanyAddress      string         `json:"company_address"`
	CompanySize         string         `json:"company_size"`
	CompanyFoundedYear  *int           `json:"company_founded_year,omitempty"`
	CompanyIndustry     string         `json:"company_industry"`
	CompanyFacebook     string         `json:"company_facebook"`
	CompanyLinkedIn     string         `json:"company_linkedin"`
	CompanyWorkingHours string         `json:"company_working_hours"`
	CompanyCulture      string         `json:"company_culture"`
	CompanyImages       pq.StringArray `gorm:"type:text[]" json:"company_images,omitempty"`

	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	gorm.Model
}

// ValidSignupRole reports whether role can be chosen at registration.
// Admins are seeded, never self-registered.
func ValidSignupRole(role string) bool {
	switch role {
	case RoleStudent, RoleRecruiter:
		return true
	}
	return false
}
