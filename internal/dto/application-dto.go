package dto

type CreateApplicationRequest struct {
	JobID          uint   `json:"job_id"`
	CoverLetter    string `json:"cover_letter"`
	CVSnapshotLink string `json:"cv_snapshot_link"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}
