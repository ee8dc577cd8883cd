package dto

import "github.com/nguyenchibao12/job-backend/internal/domain"

type CreateJobRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Logo         string   `json:"logo"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary"`
	Type         string   `json:"type"`
	Slots        []string `json:"slots"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	PackageType  string   `json:"package_type"`
}

// UpdateJobRequest edits listing content only; status, payment and review
// fields move through their own operations.
type UpdateJobRequest struct {
	Title        *string   `json:"title"`
	Company      *string   `json:"company"`
	Logo         *string   `json:"logo"`
	Location     *string   `json:"location"`
	Salary       *string   `json:"salary"`
	Type         *string   `json:"type"`
	Slots        *[]string `json:"slots"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Benefits     *[]string `json:"benefits"`
}

// PaymentProofRequest carries the transfer receipt as an inline base64 image.
type PaymentProofRequest struct {
	PaymentProof string `json:"payment_proof"`
	PackageType  string `json:"package_type"`
}

type ReviewRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

type JobListFilter struct {
	Type     string
	Location string
	Search   string
}

type PackageReport struct {
	Count   int   `json:"count"`
	Revenue int64 `json:"revenue"`
}

type TransactionReport struct {
	Transactions      []domain.Job             `json:"transactions"`
	TotalRevenue      int64                    `json:"total_revenue"`
	TotalTransactions int                      `json:"total_transactions"`
	RevenueByPackage  map[string]PackageReport `json:"revenue_by_package"`
}
