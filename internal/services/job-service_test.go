package services

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
)

func testProofPayload() string {
	return base64.StdEncoding.EncodeToString([]byte("fake-receipt-bytes"))
}

func newJobServiceForTest() (JobService, *fakeJobRepo, *fakeAppRepo, *fakeProducer) {
	jobRepo := newFakeJobRepo()
	appRepo := newFakeAppRepo()
	producer := &fakeProducer{}
	svc := NewJobService(jobRepo, appRepo, &fakeUploader{}, producer)
	return svc, jobRepo, appRepo, producer
}

func TestCreateJob(t *testing.T) {
	t.Run("starts in pending payment with package defaults", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest()

		job, err := svc.CreateJob(1, dto.CreateJobRequest{
			Title:       "Barista",
			Company:     "Cafe 24",
			Location:    "Da Nang",
			Description: "Morning shifts",
			PackageType: "3months",
		})
		if err != nil {
			t.Fatalf("create job: %v", err)
		}
		if job.Status != domain.JobStatusPendingPayment {
			t.Fatalf("status = %s, want PendingPayment", job.Status)
		}
		if job.PaymentStatus != domain.PaymentStatusUnpaid {
			t.Fatalf("payment status = %s, want Unpaid", job.PaymentStatus)
		}
		if job.PackageType != domain.PackageThreeMonths || job.PaymentAmount != 400000 || job.Duration != 3 {
			t.Fatalf("package = %s/%d/%d, want 3months/400000/3", job.PackageType, job.PaymentAmount, job.Duration)
		}
	})

	t.Run("unknown package falls back to 1month", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest()

		job, err := svc.CreateJob(1, dto.CreateJobRequest{
			Title:       "Barista",
			Company:     "Cafe 24",
			Location:    "Da Nang",
			Description: "Morning shifts",
			PackageType: "6months",
		})
		if err != nil {
			t.Fatalf("create job: %v", err)
		}
		if job.PackageType != domain.PackageOneMonth || job.PaymentAmount != 150000 || job.Duration != 1 {
			t.Fatalf("package = %s/%d/%d, want 1month/150000/1", job.PackageType, job.PaymentAmount, job.Duration)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest()
		_, err := svc.CreateJob(1, dto.CreateJobRequest{Title: "Barista"})
		wantCode(t, err, common.CodeValidation)
	})

	t.Run("invalid job type", func(t *testing.T) {
		svc, _, _, _ := newJobServiceForTest()
		_, err := svc.CreateJob(1, dto.CreateJobRequest{
			Title: "Barista", Company: "Cafe 24", Location: "Da Nang",
			Description: "Morning shifts", Type: "Gig",
		})
		wantCode(t, err, common.CodeValidation)
	})
}

func TestUploadPaymentProof(t *testing.T) {
	t.Run("moves job into review queue", func(t *testing.T) {
		svc, jobRepo, _, producer := newJobServiceForTest()
		job := jobRepo.add(domain.Job{
			Title: "Barista", Company: "Cafe 24", RecruiterID: 1,
			Status: domain.JobStatusPendingPayment, PaymentStatus: domain.PaymentStatusUnpaid,
		})

		updated, err := svc.UploadPaymentProof(context.Background(), 1, job.ID, dto.PaymentProofRequest{
			PaymentProof: testProofPayload(),
			PackageType:  "3months",
		})
		if err != nil {
			t.Fatalf("upload proof: %v", err)
		}
		if updated.Status != domain.JobStatusPendingApproval {
			t.Fatalf("status = %s, want PendingApproval", updated.Status)
		}
		if updated.PaymentStatus != domain.PaymentStatusPending {
			t.Fatalf("payment status = %s, want Pending", updated.PaymentStatus)
		}
		if updated.PaymentProof == nil || *updated.PaymentProof == "" {
			t.Fatal("payment proof URL not recorded")
		}
		if updated.PaymentDate == nil {
			t.Fatal("payment date not recorded")
		}
		if updated.PaymentAmount != 400000 || updated.Duration != 3 {
			t.Fatalf("amount/duration = %d/%d, want 400000/3", updated.PaymentAmount, updated.Duration)
		}
		if updated.ExpiryDate == nil {
			t.Fatal("expiry date not derived")
		}
		wantExpiry := time.Now().AddDate(0, 3, 0)
		if diff := updated.ExpiryDate.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
			t.Fatalf("expiry %v too far from %v", updated.ExpiryDate, wantExpiry)
		}

		if got := producer.eventTypes(); len(got) != 1 || got[0] != dto.EventJobSubmitted {
			t.Fatalf("events = %v, want [job.submitted]", got)
		}
		var event dto.JobSubmittedEvent
		producer.decode(t, 0, &event)
		if event.JobID != job.ID || event.PaymentAmount != 400000 {
			t.Fatalf("event = %+v", event)
		}
	})

	t.Run("absent package keeps 1month", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{
			RecruiterID: 1, Status: domain.JobStatusPendingPayment,
			PackageType: domain.PackageOneMonth, Duration: 1, PaymentAmount: 150000,
		})

		updated, err := svc.UploadPaymentProof(context.Background(), 1, job.ID, dto.PaymentProofRequest{
			PaymentProof: testProofPayload(),
		})
		if err != nil {
			t.Fatalf("upload proof: %v", err)
		}
		if updated.PackageType != domain.PackageOneMonth || updated.PaymentAmount != 150000 {
			t.Fatalf("package = %s/%d, want 1month/150000", updated.PackageType, updated.PaymentAmount)
		}
	})

	t.Run("unknown package is rejected at upload", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusPendingPayment})

		_, err := svc.UploadPaymentProof(context.Background(), 1, job.ID, dto.PaymentProofRequest{
			PaymentProof: testProofPayload(),
			PackageType:  "forever",
		})
		wantCode(t, err, common.CodeValidation)
	})

	t.Run("only from pending payment", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusPendingApproval})

		_, err := svc.UploadPaymentProof(context.Background(), 1, job.ID, dto.PaymentProofRequest{
			PaymentProof: testProofPayload(),
		})
		wantCode(t, err, common.CodeConflict)
	})

	t.Run("owner only", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusPendingPayment})

		_, err := svc.UploadPaymentProof(context.Background(), 2, job.ID, dto.PaymentProofRequest{
			PaymentProof: testProofPayload(),
		})
		wantCode(t, err, common.CodeForbidden)
	})
}

func TestReviewJob(t *testing.T) {
	proof := "https://cdn.test/payment-proofs/job_1.jpg"

	t.Run("approve verifies payment and sets posted date", func(t *testing.T) {
		svc, jobRepo, _, producer := newJobServiceForTest()
		recruiter := &domain.User{ID: 1, Name: "Lan", Email: "lan@corp.vn"}
		job := jobRepo.add(domain.Job{
			Title: "Barista", RecruiterID: 1, Recruiter: recruiter,
			Status: domain.JobStatusPendingApproval, PaymentStatus: domain.PaymentStatusPending,
			PaymentProof: &proof,
		})

		updated, err := svc.ReviewJob(9, job.ID, dto.ReviewRequest{Status: domain.JobStatusApproved})
		if err != nil {
			t.Fatalf("review: %v", err)
		}
		if updated.Status != domain.JobStatusApproved {
			t.Fatalf("status = %s, want Approved", updated.Status)
		}
		if updated.PaymentStatus != domain.PaymentStatusVerified {
			t.Fatalf("payment status = %s, want Verified", updated.PaymentStatus)
		}
		if updated.PostedDate.IsZero() {
			t.Fatal("posted date not set")
		}
		if updated.ReviewedByID == nil || *updated.ReviewedByID != 9 {
			t.Fatal("reviewer not recorded")
		}

		var event dto.JobReviewedEvent
		producer.decode(t, 0, &event)
		if event.Type != dto.EventJobReviewed || event.Status != domain.JobStatusApproved {
			t.Fatalf("event = %+v", event)
		}
		if event.RecruiterEmail != "lan@corp.vn" {
			t.Fatalf("recruiter email = %q", event.RecruiterEmail)
		}
	})

	t.Run("reject fills default reason and marks payment rejected", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{
			RecruiterID: 1, Status: domain.JobStatusPendingApproval,
			PaymentStatus: domain.PaymentStatusPending, PaymentProof: &proof,
		})

		updated, err := svc.ReviewJob(9, job.ID, dto.ReviewRequest{Status: domain.JobStatusRejected})
		if err != nil {
			t.Fatalf("review: %v", err)
		}
		if updated.Status != domain.JobStatusRejected {
			t.Fatalf("status = %s, want Rejected", updated.Status)
		}
		if updated.PaymentStatus != domain.PaymentStatusRejected {
			t.Fatalf("payment status = %s, want Rejected", updated.PaymentStatus)
		}
		if updated.RejectionReason == nil || *updated.RejectionReason != domain.DefaultJobRejectionReason {
			t.Fatalf("rejection reason = %v", updated.RejectionReason)
		}
	})

	t.Run("approval requires payment evidence", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{
			RecruiterID: 1, Status: domain.JobStatusPendingApproval,
			PaymentStatus: domain.PaymentStatusPending,
		})

		_, err := svc.ReviewJob(9, job.ID, dto.ReviewRequest{Status: domain.JobStatusApproved})
		wantCode(t, err, common.CodeValidation)
	})

	t.Run("verified payment substitutes for a proof", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{
			RecruiterID: 1, Status: domain.JobStatusPendingApproval,
			PaymentStatus: domain.PaymentStatusVerified,
		})

		if _, err := svc.ReviewJob(9, job.ID, dto.ReviewRequest{Status: domain.JobStatusApproved}); err != nil {
			t.Fatalf("review: %v", err)
		}
	})

	t.Run("only pending jobs can be reviewed", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusApproved})

		_, err := svc.ReviewJob(9, job.ID, dto.ReviewRequest{Status: domain.JobStatusRejected})
		wantCode(t, err, common.CodeConflict)
	})

	t.Run("target status must be a decision", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusPendingApproval, PaymentProof: &proof})

		_, err := svc.ReviewJob(9, job.ID, dto.ReviewRequest{Status: domain.JobStatusExpired})
		wantCode(t, err, common.CodeValidation)
	})
}

func TestUpdateJob(t *testing.T) {
	title := "Night Barista"

	t.Run("pending approval refuses edits", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusPendingApproval})

		_, err := svc.UpdateJob(1, job.ID, dto.UpdateJobRequest{Title: &title})
		wantCode(t, err, common.CodeConflict)
	})

	t.Run("editing a rejected job restarts payment", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		reason := "bad proof"
		proof := "https://cdn.test/payment-proofs/job_1.jpg"
		reviewer := uint(9)
		job := jobRepo.add(domain.Job{
			RecruiterID: 1, Status: domain.JobStatusRejected,
			PaymentStatus: domain.PaymentStatusRejected,
			PaymentProof:  &proof, RejectionReason: &reason, ReviewedByID: &reviewer,
		})

		updated, err := svc.UpdateJob(1, job.ID, dto.UpdateJobRequest{Title: &title})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != domain.JobStatusPendingPayment {
			t.Fatalf("status = %s, want PendingPayment", updated.Status)
		}
		if updated.PaymentStatus != domain.PaymentStatusUnpaid {
			t.Fatalf("payment status = %s, want Unpaid", updated.PaymentStatus)
		}
		if updated.PaymentProof != nil || updated.RejectionReason != nil || updated.ReviewedByID != nil {
			t.Fatal("stale review state not cleared")
		}
	})

	t.Run("editing an approved job sends it back for review", func(t *testing.T) {
		svc, jobRepo, _, producer := newJobServiceForTest()
		job := jobRepo.add(domain.Job{
			Title: "Barista", Company: "Cafe 24", RecruiterID: 1,
			Status: domain.JobStatusApproved, PaymentStatus: domain.PaymentStatusVerified,
		})

		updated, err := svc.UpdateJob(1, job.ID, dto.UpdateJobRequest{Title: &title})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != domain.JobStatusPendingApproval {
			t.Fatalf("status = %s, want PendingApproval", updated.Status)
		}
		// payment stays verified, only the content review reopens
		if updated.PaymentStatus != domain.PaymentStatusVerified {
			t.Fatalf("payment status = %s, want Verified", updated.PaymentStatus)
		}
		if got := producer.eventTypes(); len(got) != 1 || got[0] != dto.EventJobResubmitted {
			t.Fatalf("events = %v, want [job.resubmitted]", got)
		}
	})

	t.Run("owner only", func(t *testing.T) {
		svc, jobRepo, _, _ := newJobServiceForTest()
		job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusPendingPayment})

		_, err := svc.UpdateJob(2, job.ID, dto.UpdateJobRequest{Title: &title})
		wantCode(t, err, common.CodeForbidden)
	})
}

func TestGetJobVisibility(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	hidden := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusPendingApproval})
	public := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusApproved})

	t.Run("anonymous sees approved only", func(t *testing.T) {
		if _, err := svc.GetJob(public.ID, 0, ""); err != nil {
			t.Fatalf("approved job: %v", err)
		}
		_, err := svc.GetJob(hidden.ID, 0, "")
		wantCode(t, err, common.CodeNotFound)
	})

	t.Run("hidden from other students as not found", func(t *testing.T) {
		_, err := svc.GetJob(hidden.ID, 5, domain.RoleStudent)
		wantCode(t, err, common.CodeNotFound)
	})

	t.Run("owner and admin bypass", func(t *testing.T) {
		if _, err := svc.GetJob(hidden.ID, 1, domain.RoleRecruiter); err != nil {
			t.Fatalf("owner: %v", err)
		}
		if _, err := svc.GetJob(hidden.ID, 9, domain.RoleAdmin); err != nil {
			t.Fatalf("admin: %v", err)
		}
	})
}

func TestJobExpiry(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	expired := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusApproved, ExpiryDate: &past})
	live := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusApproved, ExpiryDate: &future})

	t.Run("expired listings drop off the public board", func(t *testing.T) {
		jobs, err := svc.ListApproved(dto.JobListFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(jobs) != 1 || jobs[0].ID != live.ID {
			t.Fatalf("jobs = %+v, want only the live one", jobs)
		}
	})

	t.Run("owner listing shows derived expired status", func(t *testing.T) {
		jobs, err := svc.ListByRecruiter(1)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		statuses := map[uint]string{}
		for _, j := range jobs {
			statuses[j.ID] = j.Status
		}
		if statuses[expired.ID] != domain.JobStatusExpired {
			t.Fatalf("expired job status = %s", statuses[expired.ID])
		}
		if statuses[live.ID] != domain.JobStatusApproved {
			t.Fatalf("live job status = %s", statuses[live.ID])
		}
	})
}

func TestListByRecruiterCounts(t *testing.T) {
	svc, jobRepo, appRepo, _ := newJobServiceForTest()
	jobA := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusApproved})
	jobB := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusApproved})
	appRepo.add(domain.Application{JobID: jobA.ID, StudentID: 10, RecruiterID: 1})
	appRepo.add(domain.Application{JobID: jobA.ID, StudentID: 11, RecruiterID: 1})

	jobs, err := svc.ListByRecruiter(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	counts := map[uint]int{}
	for _, j := range jobs {
		counts[j.ID] = j.ApplicantsCount
	}
	if counts[jobA.ID] != 2 || counts[jobB.ID] != 0 {
		t.Fatalf("counts = %v, want {A:2 B:0}", counts)
	}
}

func TestDeleteJobCascades(t *testing.T) {
	svc, jobRepo, appRepo, _ := newJobServiceForTest()
	job := jobRepo.add(domain.Job{RecruiterID: 1, Status: domain.JobStatusApproved})
	appRepo.add(domain.Application{JobID: job.ID, StudentID: 10, RecruiterID: 1})
	appRepo.add(domain.Application{JobID: job.ID, StudentID: 11, RecruiterID: 1})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := svc.DeleteJob(2, domain.RoleRecruiter, job.ID)
		wantCode(t, err, common.CodeForbidden)
	})

	t.Run("owner delete removes applications", func(t *testing.T) {
		if err := svc.DeleteJob(1, domain.RoleRecruiter, job.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := svc.GetJob(job.ID, 1, domain.RoleRecruiter); err == nil {
			t.Fatal("job still present")
		}
		if len(appRepo.apps) != 0 {
			t.Fatalf("%d applications left behind", len(appRepo.apps))
		}
	})
}

func TestTransactions(t *testing.T) {
	svc, jobRepo, _, _ := newJobServiceForTest()
	jobRepo.add(domain.Job{
		RecruiterID: 1, Status: domain.JobStatusApproved,
		PaymentStatus: domain.PaymentStatusVerified,
		PackageType:   domain.PackageOneMonth, PaymentAmount: 150000,
	})
	jobRepo.add(domain.Job{
		RecruiterID: 1, Status: domain.JobStatusApproved,
		PaymentStatus: domain.PaymentStatusVerified,
		PackageType:   domain.PackageThreeMonths, PaymentAmount: 400000,
	})
	jobRepo.add(domain.Job{
		RecruiterID: 1, Status: domain.JobStatusApproved,
		PaymentStatus: domain.PaymentStatusVerified,
		PackageType:   domain.PackageOneMonth, PaymentAmount: 150000,
	})
	// unverified payment stays out of the report
	jobRepo.add(domain.Job{
		RecruiterID: 1, Status: domain.JobStatusPendingApproval,
		PaymentStatus: domain.PaymentStatusPending, PaymentAmount: 150000,
	})

	report, err := svc.Transactions()
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if report.TotalTransactions != 3 {
		t.Fatalf("total transactions = %d, want 3", report.TotalTransactions)
	}
	if report.TotalRevenue != 700000 {
		t.Fatalf("total revenue = %d, want 700000", report.TotalRevenue)
	}
	oneMonth := report.RevenueByPackage[domain.PackageOneMonth]
	if oneMonth.Count != 2 || oneMonth.Revenue != 300000 {
		t.Fatalf("1month bucket = %+v", oneMonth)
	}
	threeMonths := report.RevenueByPackage[domain.PackageThreeMonths]
	if threeMonths.Count != 1 || threeMonths.Revenue != 400000 {
		t.Fatalf("3months bucket = %+v", threeMonths)
	}
}

func TestJobLifecycleWalkthrough(t *testing.T) {
	svc, jobRepo, _, producer := newJobServiceForTest()

	job, err := svc.CreateJob(1, dto.CreateJobRequest{
		Title: "Weekend Cashier", Company: "Mini Mart", Location: "Hanoi",
		Description: "Weekend shifts only",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UploadPaymentProof(context.Background(), 1, job.ID, dto.PaymentProofRequest{
		PaymentProof: testProofPayload(),
	}); err != nil {
		t.Fatalf("proof: %v", err)
	}

	pending, err := svc.ListPendingApproval()
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending = %v (%v)", pending, err)
	}

	if _, err := svc.ReviewJob(9, job.ID, dto.ReviewRequest{Status: domain.JobStatusApproved}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	board, err := svc.ListApproved(dto.JobListFilter{})
	if err != nil || len(board) != 1 {
		t.Fatalf("board = %v (%v)", board, err)
	}

	stored := jobRepo.jobs[job.ID]
	if stored.PaymentStatus != domain.PaymentStatusVerified {
		t.Fatalf("payment status = %s", stored.PaymentStatus)
	}

	want := []string{dto.EventJobSubmitted, dto.EventJobReviewed}
	got := producer.eventTypes()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events = %v, want %v", got, want)
	}
}
