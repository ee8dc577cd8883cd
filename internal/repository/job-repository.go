package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
)

type JobRepository interface {
	CreateJob(job *domain.Job) (*domain.Job, error)
	FindJobByID(jobID uint) (*domain.Job, error)
	SaveJob(job *domain.Job) error
	DeleteJob(jobID uint) error
	ListApproved(filter dto.JobListFilter) ([]domain.Job, error)
	ListByRecruiter(recruiterID uint) ([]domain.Job, error)
	ListPendingApproval() ([]domain.Job, error)
	ListVerifiedTransactions() ([]domain.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) CreateJob(job *domain.Job) (*domain.Job, error) {
	if job == nil {
		return nil, common.Validation("nil job")
	}

	if err := r.db.Create(job).Error; err != nil {
		log.Printf("create job error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}

	return job, nil
}

func (r *jobRepository) FindJobByID(jobID uint) (*domain.Job, error) {
	job := &domain.Job{}

	if err := r.db.Preload("Recruiter").First(job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("job not found")
		}
		log.Printf("find job by id error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to find job by ID", err)
	}

	return job, nil
}

func (r *jobRepository) SaveJob(job *domain.Job) error {
	if job == nil {
		return common.Validation("nil job")
	}

	if err := r.db.Save(job).Error; err != nil {
		log.Printf("save job error: %v", err)
		return common.NewError(common.CodeInternal, "failed to save job", err)
	}
	return nil
}

func (r *jobRepository) DeleteJob(jobID uint) error {
	if err := r.db.Delete(&domain.Job{}, jobID).Error; err != nil {
		log.Printf("delete job error: %v", err)
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	return nil
}

func (r *jobRepository) ListApproved(filter dto.JobListFilter) ([]domain.Job, error) {
	q := r.db.Model(&domain.Job{}).
		Where("status = ?", domain.JobStatusApproved).
		Preload("Recruiter")

	if filter.Type != "" && filter.Type != "all" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Location != "" && filter.Location != "all" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR company ILIKE ? OR description ILIKE ?", like, like, like)
	}

	var jobs []domain.Job
	if err := q.Order("posted_date DESC").Find(&jobs).Error; err != nil {
		log.Printf("list approved jobs error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return jobs, nil
}

func (r *jobRepository) ListByRecruiter(recruiterID uint) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.Where("recruiter_id = ?", recruiterID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		log.Printf("list jobs by recruiter error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list recruiter jobs", err)
	}
	return jobs, nil
}

func (r *jobRepository) ListPendingApproval() ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.Where("status = ?", domain.JobStatusPendingApproval).
		Preload("Recruiter").
		Order("payment_date ASC").
		Find(&jobs).Error; err != nil {
		log.Printf("list pending jobs error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list pending jobs", err)
	}
	return jobs, nil
}

func (r *jobRepository) ListVerifiedTransactions() ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.Where("status = ? AND payment_status = ? AND payment_amount > 0",
		domain.JobStatusApproved, domain.PaymentStatusVerified).
		Preload("Recruiter").
		Order("payment_date DESC").
		Find(&jobs).Error; err != nil {
		log.Printf("list transactions error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list transactions", err)
	}
	return jobs, nil
}
