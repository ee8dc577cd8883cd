package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
	"github.com/nguyenchibao12/job-backend/internal/helper/utils"
	"github.com/nguyenchibao12/job-backend/internal/interfaces"
	"github.com/nguyenchibao12/job-backend/internal/repository"
)

const blogImageMaxWidth = 1600

type BlogService interface {
	CreateBlog(ctx context.Context, authorID uint, role string, input dto.CreateBlogRequest) (*domain.Blog, error)
	GetBlog(blogID uint, viewerID uint, viewerRole string) (*domain.Blog, error)
	ListApproved(filter dto.BlogListFilter) ([]domain.Blog, error)
	ListPending() ([]domain.Blog, error)
	ListMine(authorID uint) ([]domain.Blog, error)
	ReviewBlog(adminID uint, blogID uint, input dto.ReviewRequest) (*domain.Blog, error)
	DeleteBlog(userID uint, role string, blogID uint) error
}

type blogService struct {
	repo     repository.BlogRepository
	uploader interfaces.Uploader
}

func NewBlogService(repo repository.BlogRepository, uploader interfaces.Uploader) BlogService {
	return &blogService{
		repo:     repo,
		uploader: uploader,
	}
}

// CreateBlog submits a post for moderation. Admins and recruiters may write;
// posts stay Pending until an admin approves them.
func (s *blogService) CreateBlog(ctx context.Context, authorID uint, role string, input dto.CreateBlogRequest) (*domain.Blog, error) {
	if authorID == 0 {
		return nil, common.Validation("invalid author id")
	}
	if role != domain.RoleAdmin && role != domain.RoleRecruiter {
		return nil, common.Forbidden("only admins and recruiters can write posts")
	}

	title := strings.TrimSpace(input.Title)
	excerpt := strings.TrimSpace(input.Excerpt)
	if title == "" || excerpt == "" || strings.TrimSpace(input.Content) == "" {
		return nil, common.Validation("title, excerpt and content are required")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultBlogCategory
	}
	if !domain.ValidBlogCategory(category) {
		return nil, common.Validation("invalid category")
	}

	blog := &domain.Blog{
		Title:    title,
		Excerpt:  excerpt,
		Content:  input.Content,
		Category: category,
		ReadTime: strings.TrimSpace(input.ReadTime),
		AuthorID: authorID,
		Status:   domain.BlogStatusPending,
	}

	if strings.TrimSpace(input.Image) != "" {
		url, err := s.uploadCover(ctx, authorID, input.Image)
		if err != nil {
			return nil, err
		}
		blog.Image = url
	}

	return s.repo.CreateBlog(blog)
}

// GetBlog masks unapproved posts as not found for everyone but the author
// and admins. Every read that passes that check counts a view, including the
// author's or an admin's own read of an unpublished post.
func (s *blogService) GetBlog(blogID uint, viewerID uint, viewerRole string) (*domain.Blog, error) {
	blog, err := s.repo.FindBlogByID(blogID)
	if err != nil {
		return nil, err
	}

	privileged := viewerRole == domain.RoleAdmin || (viewerID != 0 && blog.AuthorID == viewerID)
	if blog.Status != domain.BlogStatusApproved && !privileged {
		return nil, common.NotFound("blog not found")
	}

	blog.Views++
	if err := s.repo.SaveBlog(blog); err != nil {
		log.Printf("blog %d view count save failed: %v", blogID, err)
	}
	return blog, nil
}

func (s *blogService) ListApproved(filter dto.BlogListFilter) ([]domain.Blog, error) {
	if filter.Category != "" && filter.Category != "all" && !domain.ValidBlogCategory(filter.Category) {
		return nil, common.Validation("invalid category")
	}
	return s.repo.ListApproved(filter)
}

func (s *blogService) ListPending() ([]domain.Blog, error) {
	return s.repo.ListPending()
}

func (s *blogService) ListMine(authorID uint) ([]domain.Blog, error) {
	if authorID == 0 {
		return nil, common.Validation("invalid author id")
	}
	return s.repo.ListByAuthor(authorID)
}

// ReviewBlog is the admin decision on a pending post. A post is reviewed
// exactly once; there is no re-submission flow.
func (s *blogService) ReviewBlog(adminID uint, blogID uint, input dto.ReviewRequest) (*domain.Blog, error) {
	blog, err := s.repo.FindBlogByID(blogID)
	if err != nil {
		return nil, err
	}
	if blog.Status != domain.BlogStatusPending {
		return nil, common.Conflict(fmt.Sprintf("blog is %s, only pending blogs can be reviewed", blog.Status))
	}

	status := strings.TrimSpace(input.Status)
	if status != domain.BlogStatusApproved && status != domain.BlogStatusRejected {
		return nil, common.Validation("status must be Approved or Rejected")
	}

	now := time.Now()
	blog.ReviewedByID = &adminID
	blog.ReviewedAt = &now

	switch status {
	case domain.BlogStatusApproved:
		blog.Status = domain.BlogStatusApproved
		blog.PublishedAt = &now
		blog.RejectionReason = nil
	case domain.BlogStatusRejected:
		reason := strings.TrimSpace(input.RejectionReason)
		if reason == "" {
			reason = domain.DefaultBlogRejectionReason
		}
		blog.Status = domain.BlogStatusRejected
		blog.RejectionReason = &reason
	}

	if err := s.repo.SaveBlog(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) DeleteBlog(userID uint, role string, blogID uint) error {
	blog, err := s.repo.FindBlogByID(blogID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && blog.AuthorID != userID {
		return common.Forbidden("you do not own this blog")
	}
	return s.repo.DeleteBlog(blogID)
}

func (s *blogService) uploadCover(ctx context.Context, authorID uint, payload string) (string, error) {
	if s.uploader == nil {
		return "", common.NewError(common.CodeInternal, "uploader is not configured", nil)
	}

	raw, err := utils.DecodeImagePayload(payload)
	if err != nil {
		return "", err
	}
	norm, err := normalizeImage(raw, blogImageMaxWidth, jpgQuality)
	if err != nil {
		return "", common.Validation("unsupported or corrupt image")
	}

	url, err := s.uploader.UploadBytes(ctx, "blogs", fmt.Sprintf("blog_%d_%d", authorID, time.Now().UnixNano()), norm)
	if err != nil {
		return "", common.Dependency("blog image upload failed", err)
	}
	return url, nil
}
