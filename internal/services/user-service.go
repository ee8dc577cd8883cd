package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/dto"
	"github.com/nguyenchibao12/job-backend/internal/helper"
	"github.com/nguyenchibao12/job-backend/internal/helper/utils"
	"github.com/nguyenchibao12/job-backend/internal/interfaces"
	"github.com/nguyenchibao12/job-backend/internal/repository"
	"github.com/nguyenchibao12/job-backend/pkg/cloudinary"
)

const (
	avatarMaxWidth  = 800
	companyMaxWidth = 1600
	jpgQuality      = 85
)

type UserService interface {
	Register(input dto.RegisterRequest) (*domain.User, string, error)
	Login(input dto.UserLogin) (*domain.User, string, error)
	ForgotPassword(email string) error
	ResetPassword(input dto.ResetPasswordRequest) error

	GetProfile(userID uint) (*domain.User, error)
	UpdateStudentProfile(ctx context.Context, userID uint, input dto.UpdateStudentProfile) (*domain.User, error)
	UpdateRecruiterProfile(ctx context.Context, userID uint, input dto.UpdateRecruiterProfile) (*domain.User, error)
	GetRecruiterProfile(recruiterID uint) (*domain.User, error)

	UploadCompanyImages(ctx context.Context, userID uint, input dto.UploadCompanyImagesRequest) (*domain.User, error)
	DeleteCompanyImage(ctx context.Context, userID uint, input dto.DeleteCompanyImageRequest) (*domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	auth     helper.Auth
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	auth helper.Auth,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) UserService {
	return &userService{
		repo:     repo,
		auth:     auth,
		uploader: uploader,
		producer: producer,
	}
}

func (u *userService) Register(input dto.RegisterRequest) (*domain.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	role := strings.TrimSpace(strings.ToLower(input.Role))

	if email == "" || name == "" || strings.TrimSpace(input.Password) == "" {
		return nil, "", common.Validation("name, email and password are required")
	}
	if len(input.Password) < 6 {
		return nil, "", common.Validation("password must be at least 6 characters")
	}
	if role == "" {
		role = domain.RoleStudent
	}
	if !domain.ValidSignupRole(role) {
		return nil, "", common.Validation("invalid role")
	}

	if existing, err := u.repo.FindUserByEmail(email); err == nil && existing != nil && existing.ID != 0 {
		return nil, "", common.Conflict("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to hash password", err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		return nil, "", err
	}

	token, err := u.auth.GenerateToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

func (u *userService) Login(input dto.UserLogin) (*domain.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, "", common.Unauthenticated("invalid email or password")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, "", common.Unauthenticated("invalid email or password")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, "", common.Unauthenticated("invalid email or password")
	}

	token, err := u.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword always reports success so a caller cannot probe which
// emails are registered.
func (u *userService) ForgotPassword(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return common.Validation("email is required")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil {
		return nil
	}

	plain, err := utils.RandomToken(20)
	if err != nil {
		log.Printf("forgot password: token generation failed: %v", err)
		return nil
	}

	exp := time.Now().Add(10 * time.Minute)
	user.ResetTokenHash = utils.Sha256Hex(plain)
	user.ResetTokenExpiresAt = &exp

	if err := u.repo.SaveUser(user); err != nil {
		log.Printf("forgot password: save failed: %v", err)
		return nil
	}

	publishEvent(u.producer, dto.EventResetPassword, dto.ResetPasswordEvent{
		Type:      dto.EventResetPassword,
		UserID:    user.ID,
		Email:     user.Email,
		Token:     plain,
		ExpiresAt: exp.Format(time.RFC3339),
	})
	return nil
}

func (u *userService) ResetPassword(input dto.ResetPasswordRequest) error {
	token := strings.TrimSpace(input.Token)
	newPassword := strings.TrimSpace(input.NewPassword)

	if token == "" || newPassword == "" {
		return common.Validation("token and password are required")
	}
	if len(newPassword) < 6 {
		return common.Validation("password must be at least 6 characters")
	}

	user, err := u.repo.FindUserByResetTokenHash(utils.Sha256Hex(token))
	if err != nil || user == nil {
		return common.Unauthenticated("invalid or expired token")
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return common.Unauthenticated("invalid or expired token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return u.repo.SaveUser(user)
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, common.Validation("invalid user id")
	}
	return u.repo.FindUserById(userID)
}

func (u *userService) UpdateStudentProfile(ctx context.Context, userID uint, input dto.UpdateStudentProfile) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleStudent {
		return nil, common.Forbidden("student profile updates are for students only")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, common.Validation("name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
	if input.About != nil {
		user.About = *input.About
	}
	if input.Education != nil {
		user.Education = []byte(input.Education)
	}
	if input.Experience != nil {
		user.Experience = []byte(input.Experience)
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.Languages != nil {
		user.Languages = []byte(input.Languages)
	}

	if input.Avatar != nil && strings.TrimSpace(*input.Avatar) != "" {
		url, err := u.uploadImage(ctx, "avatars", fmt.Sprintf("user_%d", userID), *input.Avatar, avatarMaxWidth)
		if err != nil {
			return nil, err
		}
		user.Avatar = &url
	}

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userService) UpdateRecruiterProfile(ctx context.Context, userID uint, input dto.UpdateRecruiterProfile) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, common.Forbidden("recruiter profile updates are for recruiters only")
	}

	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
	if input.CompanyName != nil {
		name := strings.TrimSpace(*input.CompanyName)
		if name == "" {
			return nil, common.Validation("company_name cannot be empty")
		}
		user.CompanyName = name
	}
	if input.CompanyDescription != nil {
		user.CompanyDescription = *input.CompanyDescription
	}
	if input.CompanyWebsite != nil {
		user.CompanyWebsite = strings.TrimSpace(*input.CompanyWebsite)
	}
	if input.CompanyAddress != nil {
		user.CompanyAddress = strings.TrimSpace(*input.CompanyAddress)
	}
	if input.CompanySize != nil {
		user.CompanySize = strings.TrimSpace(*input.CompanySize)
	}
	if input.CompanyFoundedYear != nil {
		user.CompanyFoundedYear = input.CompanyFoundedYear
	}
	if input.CompanyIndustry != nil {
		user.CompanyIndustry = strings.TrimSpace(*input.CompanyIndustry)
	}
	if input.CompanyFacebook != nil {
		user.CompanyFacebook = strings.TrimSpace(*input.CompanyFacebook)
	}
	if input.CompanyLinkedIn != nil {
		user.CompanyLinkedIn = strings.TrimSpace(*input.CompanyLinkedIn)
	}
	if input.CompanyWorkingHours != nil {
		user.CompanyWorkingHours = strings.TrimSpace(*input.CompanyWorkingHours)
	}
	if input.CompanyCulture != nil {
		user.CompanyCulture = *input.CompanyCulture
	}

	if input.Avatar != nil && strings.TrimSpace(*input.Avatar) != "" {
		url, err := u.uploadImage(ctx, "avatars", fmt.Sprintf("user_%d", userID), *input.Avatar, avatarMaxWidth)
		if err != nil {
			return nil, err
		}
		user.Avatar = &url
	}

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetRecruiterProfile is the admin view of a recruiter's company record.
func (u *userService) GetRecruiterProfile(recruiterID uint) (*domain.User, error) {
	if recruiterID == 0 {
		return nil, common.Validation("invalid recruiter id")
	}
	user, err := u.repo.FindUserById(recruiterID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, common.Validation("user is not a recruiter")
	}
	return user, nil
}

// UploadCompanyImages replaces the recruiter's company gallery with the
// uploaded set. Uploads run concurrently; any failure aborts the whole
// replace so the gallery never ends up half-updated.
func (u *userService) UploadCompanyImages(ctx context.Context, userID uint, input dto.UploadCompanyImagesRequest) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, common.Forbidden("company images are for recruiters only")
	}
	if len(input.Images) == 0 {
		return nil, common.Validation("images are required")
	}
	if len(input.Images) > domain.MaxCompanyImages {
		return nil, common.Validation(fmt.Sprintf("at most %d company images are allowed", domain.MaxCompanyImages))
	}

	urls := make([]string, len(input.Images))
	g, gctx := errgroup.WithContext(ctx)
	for i, payload := range input.Images {
		i, payload := i, payload
		g.Go(func() error {
			url, err := u.uploadImage(gctx, "company", fmt.Sprintf("company_%d_%d", userID, i), payload, companyMaxWidth)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	user.CompanyImages = urls
	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userService) DeleteCompanyImage(ctx context.Context, userID uint, input dto.DeleteCompanyImageRequest) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleRecruiter {
		return nil, common.Forbidden("company images are for recruiters only")
	}

	target := strings.TrimSpace(input.ImageURL)
	if target == "" {
		return nil, common.Validation("image_url is required")
	}

	found := false
	remaining := make([]string, 0, len(user.CompanyImages))
	for _, img := range user.CompanyImages {
		if img == target {
			found = true
			continue
		}
		remaining = append(remaining, img)
	}
	if !found {
		return nil, common.NotFound("image not found")
	}

	user.CompanyImages = remaining
	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}

	// remote cleanup is best effort; the row is already consistent
	if u.uploader != nil {
		if publicID := cloudinary.PublicIDFromURL(target); publicID != "" {
			if err := u.uploader.Destroy(ctx, publicID); err != nil {
				log.Printf("delete company image: destroy %q failed: %v", publicID, err)
			}
		}
	}
	return user, nil
}

// uploadImage decodes a base64 payload, normalizes it to JPEG and pushes it
// to the image store.
func (u *userService) uploadImage(ctx context.Context, folder, name, payload string, maxWidth int) (string, error) {
	if u.uploader == nil {
		return "", common.NewError(common.CodeInternal, "uploader is not configured", nil)
	}

	raw, err := utils.DecodeImagePayload(payload)
	if err != nil {
		return "", err
	}
	norm, err := normalizeImage(raw, maxWidth, jpgQuality)
	if err != nil {
		return "", common.Validation("unsupported or corrupt image")
	}

	url, err := u.uploader.UploadBytes(ctx, folder, name, norm)
	if err != nil {
		return "", common.Dependency("image upload failed", err)
	}
	return url, nil
}
