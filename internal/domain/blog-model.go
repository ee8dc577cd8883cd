package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	BlogStatusPending  = "Pending"
	BlogStatusApproved = "Approved"
	BlogStatusRejected = "Rejected"
)

const DefaultBlogRejectionReason = "Content is not appropriate"

var BlogCategories = []string{"Hướng dẫn", "Kinh nghiệm", "Tin tức", "Tips", "Khác"}

const DefaultBlogCategory = "Khác"

type Blog struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null;size:200" json:"title"`
	Excerpt  string `gorm:"not null;size:500" json:"excerpt"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Image    string `json:"image"`
	Category string `gorm:"not null;default:Khác" json:"category"`
	ReadTime string `json:"read_time"`

	AuthorID uint  `gorm:"not null;index" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:Pending" json:"status"`

	ReviewedByID    *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`

	Views int `gorm:"not null;default:0" json:"views"`
	Likes int `gorm:"not null;default:0" json:"likes"`

	PublishedAt *time.Time `json:"published_at,omitempty"`

	gorm.Model
}

func ValidBlogCategory(category string) bool {
	for _, c := range BlogCategories {
		if c == category {
			return true
		}
	}
	return false
}
