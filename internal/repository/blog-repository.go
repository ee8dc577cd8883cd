package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
)

type BlogRepository interface {
	CreateBlog(blog *domain.Blog) (*domain.Blog, error)
	FindBlogByID(blogID uint) (*domain.Blog, error)
	SaveBlog(blog *domain.Blog) error
	DeleteBlog(blogID uint) error
	ListApproved(filter dto.BlogListFilter) ([]domain.Blog, error)
	ListPending() ([]domain.Blog, error)
	ListByAuthor(authorID uint) ([]domain.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) CreateBlog(blog *domain.Blog) (*domain.Blog, error) {
	if blog == nil {
		return nil, common.Validation("nil blog")
	}

	if err := r.db.Create(blog).Error; err != nil {
		log.Printf("create blog error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to create blog", err)
	}

	return blog, nil
}

func (r *blogRepository) FindBlogByID(blogID uint) (*domain.Blog, error) {
	blog := &domain.Blog{}

	if err := r.db.Preload("Author").First(blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("blog not found")
		}
		log.Printf("find blog by id error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to find blog by ID", err)
	}

	return blog, nil
}

func (r *blogRepository) SaveBlog(blog *domain.Blog) error {
	if blog == nil {
		return common.Validation("nil blog")
	}

	if err := r.db.Save(blog).Error; err != nil {
		log.Printf("save blog error: %v", err)
		return common.NewError(common.CodeInternal, "failed to save blog", err)
	}
	return nil
}

func (r *blogRepository) DeleteBlog(blogID uint) error {
	if err := r.db.Delete(&domain.Blog{}, blogID).Error; err != nil {
		log.Printf("delete blog error: %v", err)
		return common.NewError(common.CodeInternal, "failed to delete blog", err)
	}
	return nil
}

func (r *blogRepository) ListApproved(filter dto.BlogListFilter) ([]domain.Blog, error) {
	q := r.db.Model(&domain.Blog{}).
		Where("status = ?", domain.BlogStatusApproved).
		Preload("Author")

	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR excerpt ILIKE ? OR content ILIKE ?", like, like, like)
	}

	var blogs []domain.Blog
	if err := q.Order("published_at DESC, created_at DESC").Find(&blogs).Error; err != nil {
		log.Printf("list approved blogs error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list blogs", err)
	}
	return blogs, nil
}

func (r *blogRepository) ListPending() ([]domain.Blog, error) {
	var blogs []domain.Blog
	if err := r.db.Where("status = ?", domain.BlogStatusPending).
		Preload("Author").
		Order("created_at ASC").
		Find(&blogs).Error; err != nil {
		log.Printf("list pending blogs error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list pending blogs", err)
	}
	return blogs, nil
}

func (r *blogRepository) ListByAuthor(authorID uint) ([]domain.Blog, error) {
	var blogs []domain.Blog
	if err := r.db.Where("author_id = ?", authorID).
		Preload("Author").
		Order("created_at DESC").
		Find(&blogs).Error; err != nil {
		log.Printf("list blogs by author error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list author blogs", err)
	}
	return blogs, nil
}
