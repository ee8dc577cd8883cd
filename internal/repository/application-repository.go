package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/helper"
)

// ErrDuplicateApplication covers both the pre-check and the store-level
// unique index race: callers see one and the same conflict error.
func errDuplicateApplication() error {
	return common.Conflict("you have already applied to this job")
}

type ApplicationRepository interface {
	CreateApplication(app *domain.Application) (*domain.Application, error)
	FindApplicationByID(appID uint) (*domain.Application, error)
	FindByJobAndStudent(jobID, studentID uint) (*domain.Application, error)
	SaveApplication(app *domain.Application) error
	ListByJob(jobID uint) ([]domain.Application, error)
	ListByStudent(studentID uint) ([]domain.Application, error)
	CountByJobIDs(jobIDs []uint) (map[uint]int, error)
	DeleteByJob(jobID uint) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) CreateApplication(app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, common.Validation("nil application")
	}

	if err := r.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			helper.IsDuplicateKey(err, "uidx_applications_job_student") {
			return nil, errDuplicateApplication()
		}
		log.Printf("create application error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}

	return app, nil
}

func (r *applicationRepository) FindApplicationByID(appID uint) (*domain.Application, error) {
	app := &domain.Application{}

	if err := r.db.Preload("Job").Preload("Student").Preload("Recruiter").
		First(app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("application not found")
		}
		log.Printf("find application by id error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to find application by ID", err)
	}

	return app, nil
}

func (r *applicationRepository) FindByJobAndStudent(jobID, studentID uint) (*domain.Application, error) {
	app := &domain.Application{}

	if err := r.db.Where("job_id = ? AND student_id = ?", jobID, studentID).
		First(app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("application not found")
		}
		log.Printf("find application by job and student error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to find application", err)
	}

	return app, nil
}

func (r *applicationRepository) SaveApplication(app *domain.Application) error {
	if app == nil {
		return common.Validation("nil application")
	}

	if err := r.db.Save(app).Error; err != nil {
		log.Printf("save application error: %v", err)
		return common.NewError(common.CodeInternal, "failed to save application", err)
	}
	return nil
}

func (r *applicationRepository) ListByJob(jobID uint) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.Where("job_id = ?", jobID).
		Preload("Student").
		Preload("Job").
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		log.Printf("list applications by job error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return apps, nil
}

func (r *applicationRepository) ListByStudent(studentID uint) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.Where("student_id = ?", studentID).
		Preload("Job").
		Preload("Job.Recruiter").
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		log.Printf("list applications by student error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return apps, nil
}

// CountByJobIDs returns applicant counts for the given jobs in one grouped
// query instead of one count per job.
func (r *applicationRepository) CountByJobIDs(jobIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		JobID uint
		Count int
	}
	if err := r.db.Model(&domain.Application{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error; err != nil {
		log.Printf("count applications error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to count applications", err)
	}

	for _, row := range rows {
		counts[row.JobID] = row.Count
	}
	return counts, nil
}

func (r *applicationRepository) DeleteByJob(jobID uint) (int64, error) {
	res := r.db.Where("job_id = ?", jobID).Delete(&domain.Application{})
	if res.Error != nil {
		log.Printf("delete applications by job error: %v", res.Error)
		return 0, common.NewError(common.CodeInternal, "failed to delete applications", res.Error)
	}
	return res.RowsAffected, nil
}
