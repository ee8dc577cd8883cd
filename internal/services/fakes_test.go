package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
)

func TestMain(m *testing.M) {
	// image decoding is covered by pkg/imageutil; service tests feed
	// arbitrary bytes through
	normalizeImage = func(input []byte, maxWidth, quality int) ([]byte, error) {
		return input, nil
	}
	os.Exit(m.Run())
}

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) add(u domain.User) *domain.User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	cp := u
	r.users[cp.ID] = &cp
	return &cp
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.Conflict("email already exists")
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.NotFound("user not found")
}

func (r *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return nil, common.NotFound("user not found")
}

func (r *fakeUserRepo) FindUserByResetTokenHash(hash string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash != "" && u.ResetTokenHash == hash {
			return u, nil
		}
	}
	return nil, common.NotFound("user not found")
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeJobRepo struct {
	jobs   map[uint]*domain.Job
	nextID uint
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uint]*domain.Job{}, nextID: 1}
}

func (r *fakeJobRepo) add(j domain.Job) *domain.Job {
	if j.ID == 0 {
		j.ID = r.nextID
	}
	if j.ID >= r.nextID {
		r.nextID = j.ID + 1
	}
	cp := j
	r.jobs[cp.ID] = &cp
	return &cp
}

func (r *fakeJobRepo) CreateJob(job *domain.Job) (*domain.Job, error) {
	job.ID = r.nextID
	r.nextID++
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) FindJobByID(jobID uint) (*domain.Job, error) {
	if j, ok := r.jobs[jobID]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, common.NotFound("job not found")
}

func (r *fakeJobRepo) SaveJob(job *domain.Job) error {
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) DeleteJob(jobID uint) error {
	delete(r.jobs, jobID)
	return nil
}

func (r *fakeJobRepo) ListApproved(filter dto.JobListFilter) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range r.jobs {
		if j.Status == domain.JobStatusApproved {
			out = append(out, *j)
		}
	}
	sortJobs(out)
	return out, nil
}

func (r *fakeJobRepo) ListByRecruiter(recruiterID uint) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range r.jobs {
		if j.RecruiterID == recruiterID {
			out = append(out, *j)
		}
	}
	sortJobs(out)
	return out, nil
}

func (r *fakeJobRepo) ListPendingApproval() ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range r.jobs {
		if j.Status == domain.JobStatusPendingApproval {
			out = append(out, *j)
		}
	}
	sortJobs(out)
	return out, nil
}

func (r *fakeJobRepo) ListVerifiedTransactions() ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range r.jobs {
		if j.Status == domain.JobStatusApproved && j.PaymentStatus == domain.PaymentStatusVerified && j.PaymentAmount > 0 {
			out = append(out, *j)
		}
	}
	sortJobs(out)
	return out, nil
}

func sortJobs(jobs []domain.Job) {
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
}

type fakeAppRepo struct {
	apps   map[uint]*domain.Application
	nextID uint
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: map[uint]*domain.Application{}, nextID: 1}
}

func (r *fakeAppRepo) add(a domain.Application) *domain.Application {
	if a.ID == 0 {
		a.ID = r.nextID
	}
	if a.ID >= r.nextID {
		r.nextID = a.ID + 1
	}
	cp := a
	r.apps[cp.ID] = &cp
	return &cp
}

func (r *fakeAppRepo) CreateApplication(app *domain.Application) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.StudentID == app.StudentID {
			return nil, common.Conflict("you have already applied to this job")
		}
	}
	app.ID = r.nextID
	r.nextID++
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeAppRepo) FindApplicationByID(appID uint) (*domain.Application, error) {
	if a, ok := r.apps[appID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, common.NotFound("application not found")
}

func (r *fakeAppRepo) FindByJobAndStudent(jobID, studentID uint) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.JobID == jobID && a.StudentID == studentID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.NotFound("application not found")
}

func (r *fakeAppRepo) SaveApplication(app *domain.Application) error {
	r.apps[app.ID] = app
	return nil
}

func (r *fakeAppRepo) ListByJob(jobID uint) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) ListByStudent(studentID uint) ([]domain.Application, error) {
	var out []domain.Application
	for _, a := range r.apps {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) CountByJobIDs(jobIDs []uint) (map[uint]int, error) {
	counts := map[uint]int{}
	for _, a := range r.apps {
		for _, id := range jobIDs {
			if a.JobID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r *fakeAppRepo) DeleteByJob(jobID uint) (int64, error) {
	var removed int64
	for id, a := range r.apps {
		if a.JobID == jobID {
			delete(r.apps, id)
			removed++
		}
	}
	return removed, nil
}

type fakeBlogRepo struct {
	blogs  map[uint]*domain.Blog
	nextID uint
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: map[uint]*domain.Blog{}, nextID: 1}
}

func (r *fakeBlogRepo) add(b domain.Blog) *domain.Blog {
	if b.ID == 0 {
		b.ID = r.nextID
	}
	if b.ID >= r.nextID {
		r.nextID = b.ID + 1
	}
	cp := b
	r.blogs[cp.ID] = &cp
	return &cp
}

func (r *fakeBlogRepo) CreateBlog(blog *domain.Blog) (*domain.Blog, error) {
	blog.ID = r.nextID
	r.nextID++
	r.blogs[blog.ID] = blog
	return blog, nil
}

func (r *fakeBlogRepo) FindBlogByID(blogID uint) (*domain.Blog, error) {
	if b, ok := r.blogs[blogID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, common.NotFound("blog not found")
}

func (r *fakeBlogRepo) SaveBlog(blog *domain.Blog) error {
	r.blogs[blog.ID] = blog
	return nil
}

func (r *fakeBlogRepo) DeleteBlog(blogID uint) error {
	delete(r.blogs, blogID)
	return nil
}

func (r *fakeBlogRepo) ListApproved(filter dto.BlogListFilter) ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range r.blogs {
		if b.Status != domain.BlogStatusApproved {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && b.Category != filter.Category {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBlogRepo) ListPending() ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range r.blogs {
		if b.Status == domain.BlogStatusPending {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) ListByAuthor(authorID uint) ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range r.blogs {
		if b.AuthorID == authorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type publishedEvent struct {
	Key   string
	Value []byte
}

type fakeProducer struct {
	events []publishedEvent
	err    error
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Key: string(key), Value: value})
	return nil
}

func (p *fakeProducer) eventTypes() []string {
	var out []string
	for _, e := range p.events {
		out = append(out, e.Key)
	}
	return out
}

func (p *fakeProducer) decode(t *testing.T, i int, v interface{}) {
	t.Helper()
	if i >= len(p.events) {
		t.Fatalf("expected event #%d, have %d", i, len(p.events))
	}
	if err := json.Unmarshal(p.events[i].Value, v); err != nil {
		t.Fatalf("decode event #%d: %v", i, err)
	}
}

type fakeUploader struct {
	mu        sync.Mutex
	uploads   []string
	destroyed []string
	err       error
}

// UploadBytes must be safe for concurrent use; the gallery upload fans out.
func (u *fakeUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	url := fmt.Sprintf("https://cdn.test/%s/%s", folder, filename)
	u.mu.Lock()
	u.uploads = append(u.uploads, url)
	u.mu.Unlock()
	return url, nil
}

func (u *fakeUploader) Destroy(ctx context.Context, publicID string) error {
	u.destroyed = append(u.destroyed, publicID)
	return nil
}

func wantCode(t *testing.T, err error, code common.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := common.ErrCode(err); got != code {
		t.Fatalf("expected %s error, got %s (%v)", code, got, err)
	}
}
