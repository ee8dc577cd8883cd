package services

import (
	"strings"
	"time"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
	"github.com/nguyenchibao12/job-backend/internal/interfaces"
	"github.com/nguyenchibao12/job-backend/internal/repository"
)

type ApplicationService interface {
	Apply(studentID uint, input dto.CreateApplicationRequest) (*domain.Application, error)
	ListForJob(recruiterID uint, jobID uint) ([]domain.Application, error)
	ListMine(studentID uint) ([]domain.Application, error)
	UpdateStatus(recruiterID uint, appID uint, input dto.UpdateApplicationStatusRequest) (*domain.Application, error)
}

type applicationService struct {
	repo     repository.ApplicationRepository
	jobRepo  repository.JobRepository
	producer interfaces.ProducerHandler
}

func NewApplicationService(
	repo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	producer interfaces.ProducerHandler,
) ApplicationService {
	return &applicationService{
		repo:     repo,
		jobRepo:  jobRepo,
		producer: producer,
	}
}

// Apply records a student's application. A student can apply to a given job
// at most once; the database index backs this up under concurrent requests.
func (s *applicationService) Apply(studentID uint, input dto.CreateApplicationRequest) (*domain.Application, error) {
	if studentID == 0 {
		return nil, common.Validation("invalid student id")
	}
	if input.JobID == 0 {
		return nil, common.Validation("job_id is required")
	}

	job, err := s.jobRepo.FindJobByID(input.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusApproved {
		return nil, common.NotFound("job not found")
	}
	if job.ExpiryDate != nil && time.Now().After(*job.ExpiryDate) {
		return nil, common.Conflict("this job listing has expired")
	}

	if existing, err := s.repo.FindByJobAndStudent(input.JobID, studentID); err == nil && existing != nil {
		return nil, common.Conflict("you have already applied to this job")
	}

	app := &domain.Application{
		JobID:           input.JobID,
		StudentID:       studentID,
		RecruiterID:     job.RecruiterID,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationStatusSubmitted,
		CoverLetter:     input.CoverLetter,
		CVSnapshotLink:  strings.TrimSpace(input.CVSnapshotLink),
	}

	return s.repo.CreateApplication(app)
}

func (s *applicationService) ListForJob(recruiterID uint, jobID uint) ([]domain.Application, error) {
	job, err := s.jobRepo.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, common.Forbidden("you do not own this job")
	}
	return s.repo.ListByJob(jobID)
}

func (s *applicationService) ListMine(studentID uint) ([]domain.Application, error) {
	if studentID == 0 {
		return nil, common.Validation("invalid student id")
	}
	return s.repo.ListByStudent(studentID)
}

// UpdateStatus moves an application along the pipeline. Hiring or rejecting
// notifies the student; repeating the same status does not notify again.
func (s *applicationService) UpdateStatus(recruiterID uint, appID uint, input dto.UpdateApplicationStatusRequest) (*domain.Application, error) {
	status := strings.TrimSpace(input.Status)
	if !domain.ValidApplicationStatus(status) {
		return nil, common.Validation("invalid application status")
	}

	app, err := s.repo.FindApplicationByID(appID)
	if err != nil {
		return nil, err
	}
	if app.RecruiterID != recruiterID {
		return nil, common.Forbidden("you do not own this application")
	}

	decided := status != app.Status &&
		(status == domain.ApplicationStatusHired || status == domain.ApplicationStatusRejected)

	app.Status = status
	if err := s.repo.SaveApplication(app); err != nil {
		return nil, err
	}

	if decided {
		event := dto.ApplicationDecidedEvent{
			Type: dto.EventApplicationRejected,
		}
		if status == domain.ApplicationStatusHired {
			event.Type = dto.EventApplicationHired
		}
		if app.Student != nil {
			event.StudentName = app.Student.Name
			event.StudentEmail = app.Student.Email
		}
		if app.Job != nil {
			event.JobTitle = app.Job.Title
			event.Company = app.Job.Company
			event.Location = app.Job.Location
			event.Salary = app.Job.Salary
		}
		if app.Recruiter != nil {
			event.RecruiterName = app.Recruiter.Name
			event.RecruiterEmail = app.Recruiter.Email
			event.RecruiterPhone = app.Recruiter.Phone
		}
		publishEvent(s.producer, event.Type, event)
	}
	return app, nil
}
