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

const proofMaxWidth = 1600

type JobService interface {
	CreateJob(recruiterID uint, input dto.CreateJobRequest) (*domain.Job, error)
	UpdateJob(recruiterID uint, jobID uint, input dto.UpdateJobRequest) (*domain.Job, error)
	UploadPaymentProof(ctx context.Context, recruiterID uint, jobID uint, input dto.PaymentProofRequest) (*domain.Job, error)
	ReviewJob(adminID uint, jobID uint, input dto.ReviewRequest) (*domain.Job, error)
	DeleteJob(userID uint, role string, jobID uint) error

	GetJob(jobID uint, viewerID uint, viewerRole string) (*domain.Job, error)
	ListApproved(filter dto.JobListFilter) ([]domain.Job, error)
	ListByRecruiter(recruiterID uint) ([]domain.Job, error)
	ListPendingApproval() ([]domain.Job, error)
	Transactions() (*dto.TransactionReport, error)
}

type jobService struct {
	repo     repository.JobRepository
	appRepo  repository.ApplicationRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
}

func NewJobService(
	repo repository.JobRepository,
	appRepo repository.ApplicationRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) JobService {
	return &jobService{
		repo:     repo,
		appRepo:  appRepo,
		uploader: uploader,
		producer: producer,
	}
}

// CreateJob records a draft listing. It stays invisible to students until the
// recruiter uploads a payment proof and an admin approves it.
func (s *jobService) CreateJob(recruiterID uint, input dto.CreateJobRequest) (*domain.Job, error) {
	if recruiterID == 0 {
		return nil, common.Validation("invalid recruiter id")
	}

	title := strings.TrimSpace(input.Title)
	company := strings.TrimSpace(input.Company)
	location := strings.TrimSpace(input.Location)
	if title == "" || company == "" || location == "" || strings.TrimSpace(input.Description) == "" {
		return nil, common.Validation("title, company, location and description are required")
	}

	jobType := strings.TrimSpace(input.Type)
	if jobType == "" {
		jobType = domain.JobTypePartTime
	}
	if !domain.ValidJobType(jobType) {
		return nil, common.Validation("invalid job type")
	}

	// amount and duration always come from the package table
	packageType, pkg := domain.LookupPackage(strings.TrimSpace(input.PackageType))

	job := &domain.Job{
		Title:        title,
		Company:      company,
		Logo:         strings.TrimSpace(input.Logo),
		Location:     location,
		Salary:       strings.TrimSpace(input.Salary),
		Type:         jobType,
		Slots:        input.Slots,
		Description:  input.Description,
		Requirements: input.Requirements,
		Benefits:     input.Benefits,
		RecruiterID:  recruiterID,

		Status:        domain.JobStatusPendingPayment,
		PackageType:   packageType,
		Duration:      pkg.DurationMonths,
		PaymentAmount: pkg.Amount,
		PaymentStatus: domain.PaymentStatusUnpaid,
	}

	return s.repo.CreateJob(job)
}

// UpdateJob edits listing content. Editing a rejected listing restarts the
// payment flow; editing an approved one sends it back for re-approval.
func (s *jobService) UpdateJob(recruiterID uint, jobID uint, input dto.UpdateJobRequest) (*domain.Job, error) {
	job, err := s.repo.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, common.Forbidden("you do not own this job")
	}
	if job.Status == domain.JobStatusPendingApproval {
		return nil, common.Conflict("job is awaiting review and cannot be edited")
	}

	if input.Title != nil {
		t := strings.TrimSpace(*input.Title)
		if t == "" {
			return nil, common.Validation("title cannot be empty")
		}
		job.Title = t
	}
	if input.Company != nil {
		c := strings.TrimSpace(*input.Company)
		if c == "" {
			return nil, common.Validation("company cannot be empty")
		}
		job.Company = c
	}
	if input.Logo != nil {
		job.Logo = strings.TrimSpace(*input.Logo)
	}
	if input.Location != nil {
		l := strings.TrimSpace(*input.Location)
		if l == "" {
			return nil, common.Validation("location cannot be empty")
		}
		job.Location = l
	}
	if input.Salary != nil {
		job.Salary = strings.TrimSpace(*input.Salary)
	}
	if input.Type != nil {
		if !domain.ValidJobType(*input.Type) {
			return nil, common.Validation("invalid job type")
		}
		job.Type = *input.Type
	}
	if input.Slots != nil {
		job.Slots = *input.Slots
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, common.Validation("description cannot be empty")
		}
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = *input.Requirements
	}
	if input.Benefits != nil {
		job.Benefits = *input.Benefits
	}

	resubmitted := false
	switch job.Status {
	case domain.JobStatusRejected:
		job.Status = domain.JobStatusPendingPayment
		job.PaymentStatus = domain.PaymentStatusUnpaid
		job.PaymentProof = nil
		job.PaymentDate = nil
		job.RejectionReason = nil
		job.ReviewedByID = nil
		job.ReviewedAt = nil
	case domain.JobStatusApproved:
		job.Status = domain.JobStatusPendingApproval
		job.RejectionReason = nil
		job.ReviewedByID = nil
		job.ReviewedAt = nil
		resubmitted = true
	}

	if err := s.repo.SaveJob(job); err != nil {
		return nil, err
	}

	if resubmitted {
		proof := ""
		if job.PaymentProof != nil {
			proof = *job.PaymentProof
		}
		publishEvent(s.producer, dto.EventJobResubmitted, dto.JobSubmittedEvent{
			Type:          dto.EventJobResubmitted,
			JobID:         job.ID,
			JobTitle:      job.Title,
			Company:       job.Company,
			RecruiterID:   job.RecruiterID,
			PaymentAmount: job.PaymentAmount,
			ProofURL:      proof,
		})
	}
	return job, nil
}

// UploadPaymentProof attaches the bank transfer receipt and moves the
// listing into the admin review queue.
func (s *jobService) UploadPaymentProof(ctx context.Context, recruiterID uint, jobID uint, input dto.PaymentProofRequest) (*domain.Job, error) {
	job, err := s.repo.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, common.Forbidden("you do not own this job")
	}
	if job.Status != domain.JobStatusPendingPayment {
		return nil, common.Conflict("payment proof can only be uploaded while awaiting payment")
	}
	if strings.TrimSpace(input.PaymentProof) == "" {
		return nil, common.Validation("payment_proof is required")
	}

	packageType := strings.TrimSpace(input.PackageType)
	if packageType == "" {
		packageType = domain.PackageOneMonth
	}
	if !domain.ValidPackageType(packageType) {
		return nil, common.Validation("invalid package type")
	}
	packageType, pkg := domain.LookupPackage(packageType)

	proofURL, err := s.uploadProof(ctx, jobID, input.PaymentProof)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiry := now.AddDate(0, pkg.DurationMonths, 0)

	job.PackageType = packageType
	job.Duration = pkg.DurationMonths
	job.PaymentAmount = pkg.Amount
	job.PaymentProof = &proofURL
	job.PaymentDate = &now
	job.PaymentStatus = domain.PaymentStatusPending
	job.ExpiryDate = &expiry
	job.Status = domain.JobStatusPendingApproval

	if err := s.repo.SaveJob(job); err != nil {
		return nil, err
	}

	publishEvent(s.producer, dto.EventJobSubmitted, dto.JobSubmittedEvent{
		Type:          dto.EventJobSubmitted,
		JobID:         job.ID,
		JobTitle:      job.Title,
		Company:       job.Company,
		RecruiterID:   job.RecruiterID,
		PaymentAmount: job.PaymentAmount,
		ProofURL:      proofURL,
	})
	return job, nil
}

// ReviewJob is the admin decision on a submitted listing. Approval requires
// payment evidence on file.
func (s *jobService) ReviewJob(adminID uint, jobID uint, input dto.ReviewRequest) (*domain.Job, error) {
	job, err := s.repo.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPendingApproval {
		return nil, common.Conflict(fmt.Sprintf("job is %s, only pending jobs can be reviewed", job.Status))
	}

	status := strings.TrimSpace(input.Status)
	if status != domain.JobStatusApproved && status != domain.JobStatusRejected {
		return nil, common.Validation("status must be Approved or Rejected")
	}

	now := time.Now()
	job.ReviewedByID = &adminID
	job.ReviewedAt = &now

	switch status {
	case domain.JobStatusApproved:
		hasProof := job.PaymentProof != nil && *job.PaymentProof != ""
		if !hasProof && job.PaymentStatus != domain.PaymentStatusVerified {
			return nil, common.Validation("cannot approve without payment proof or verified payment")
		}
		job.Status = domain.JobStatusApproved
		job.PaymentStatus = domain.PaymentStatusVerified
		job.PostedDate = now
		job.RejectionReason = nil
	case domain.JobStatusRejected:
		reason := strings.TrimSpace(input.RejectionReason)
		if reason == "" {
			reason = domain.DefaultJobRejectionReason
		}
		job.Status = domain.JobStatusRejected
		job.PaymentStatus = domain.PaymentStatusRejected
		job.RejectionReason = &reason
	}

	if err := s.repo.SaveJob(job); err != nil {
		return nil, err
	}

	event := dto.JobReviewedEvent{
		Type:     dto.EventJobReviewed,
		JobID:    job.ID,
		JobTitle: job.Title,
		Status:   job.Status,
	}
	if job.RejectionReason != nil {
		event.RejectionReason = *job.RejectionReason
	}
	if job.Recruiter != nil {
		event.RecruiterName = job.Recruiter.Name
		event.RecruiterEmail = job.Recruiter.Email
	}
	publishEvent(s.producer, dto.EventJobReviewed, event)
	return job, nil
}

func (s *jobService) DeleteJob(userID uint, role string, jobID uint) error {
	job, err := s.repo.FindJobByID(jobID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && job.RecruiterID != userID {
		return common.Forbidden("you do not own this job")
	}

	removed, err := s.appRepo.DeleteByJob(jobID)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("deleted %d applications along with job %d", removed, jobID)
	}
	return s.repo.DeleteJob(jobID)
}

// GetJob hides non-approved listings from everyone but the owning recruiter
// and admins. Hidden means not found, never forbidden.
func (s *jobService) GetJob(jobID uint, viewerID uint, viewerRole string) (*domain.Job, error) {
	job, err := s.repo.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}

	privileged := viewerRole == domain.RoleAdmin || (viewerID != 0 && job.RecruiterID == viewerID)
	if job.Status != domain.JobStatusApproved && !privileged {
		return nil, common.NotFound("job not found")
	}

	applyExpiry(job)

	counts, err := s.appRepo.CountByJobIDs([]uint{job.ID})
	if err == nil {
		job.ApplicantsCount = counts[job.ID]
	}
	return job, nil
}

func (s *jobService) ListApproved(filter dto.JobListFilter) ([]domain.Job, error) {
	jobs, err := s.repo.ListApproved(filter)
	if err != nil {
		return nil, err
	}

	// expired listings show as such and drop out of the public board
	live := jobs[:0]
	for i := range jobs {
		applyExpiry(&jobs[i])
		if jobs[i].Status == domain.JobStatusApproved {
			live = append(live, jobs[i])
		}
	}
	return live, nil
}

func (s *jobService) ListByRecruiter(recruiterID uint) ([]domain.Job, error) {
	if recruiterID == 0 {
		return nil, common.Validation("invalid recruiter id")
	}
	jobs, err := s.repo.ListByRecruiter(recruiterID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(jobs))
	for i := range jobs {
		applyExpiry(&jobs[i])
		ids = append(ids, jobs[i].ID)
	}
	if len(ids) > 0 {
		counts, err := s.appRepo.CountByJobIDs(ids)
		if err != nil {
			log.Printf("applicant counts for recruiter %d failed: %v", recruiterID, err)
		} else {
			for i := range jobs {
				jobs[i].ApplicantsCount = counts[jobs[i].ID]
			}
		}
	}
	return jobs, nil
}

func (s *jobService) ListPendingApproval() ([]domain.Job, error) {
	return s.repo.ListPendingApproval()
}

// Transactions folds verified payments into the admin revenue report.
func (s *jobService) Transactions() (*dto.TransactionReport, error) {
	jobs, err := s.repo.ListVerifiedTransactions()
	if err != nil {
		return nil, err
	}

	report := &dto.TransactionReport{
		Transactions:     jobs,
		RevenueByPackage: map[string]dto.PackageReport{},
	}
	for _, job := range jobs {
		report.TotalTransactions++
		report.TotalRevenue += job.PaymentAmount

		pkg := report.RevenueByPackage[job.PackageType]
		pkg.Count++
		pkg.Revenue += job.PaymentAmount
		report.RevenueByPackage[job.PackageType] = pkg
	}
	return report, nil
}

// applyExpiry derives the Expired state at read time; the row keeps its
// stored status and no background sweep is needed.
func applyExpiry(job *domain.Job) {
	if job.Status != domain.JobStatusApproved {
		return
	}
	if job.ExpiryDate != nil && time.Now().After(*job.ExpiryDate) {
		job.Status = domain.JobStatusExpired
	}
}

func (s *jobService) uploadProof(ctx context.Context, jobID uint, payload string) (string, error) {
	if s.uploader == nil {
		return "", common.NewError(common.CodeInternal, "uploader is not configured", nil)
	}

	raw, err := utils.DecodeImagePayload(payload)
	if err != nil {
		return "", err
	}
	norm, err := normalizeImage(raw, proofMaxWidth, jpgQuality)
	if err != nil {
		return "", common.Validation("unsupported or corrupt image")
	}

	url, err := s.uploader.UploadBytes(ctx, "payment-proofs", fmt.Sprintf("job_%d", jobID), norm)
	if err != nil {
		return "", common.Dependency("payment proof upload failed", err)
	}
	return url, nil
}
