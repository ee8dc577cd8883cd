package dto

import "encoding/json"

// UpdateStudentProfile is a PATCH-style payload: nil means "leave alone".
// Avatar accepts an inline base64 image (with or without data:image prefix).
type UpdateStudentProfile struct {
	Name       *string         `json:"name"`
	Phone      *string         `json:"phone"`
	Location   *string         `json:"location"`
	About      *string         `json:"about"`
	Avatar     *string         `json:"avatar"`
	Education  json.RawMessage `json:"education"`
	Experience json.RawMessage `json:"experience"`
	Skills     []string        `json:"skills"`
	Languages  json.RawMessage `json:"languages"`
}

type UpdateRecruiterProfile struct {
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Avatar   *string `json:"avatar"`

	CompanyName         *string `json:"company_name"`
	CompanyDescription  *string `json:"company_description"`
	CompanyWebsite      *string `json:"company_website"`
	CompanyAddress      *string `json:"company_address"`
	CompanySize         *string `json:"company_size"`
	CompanyFoundedYear  *int    `json:"company_founded_year"`
	CompanyIndustry     *string `json:"company_industry"`
	CompanyFacebook     *string `json:"company_facebook"`
	CompanyLinkedIn     *string `json:"company_linkedin"`
	CompanyWorkingHours *string `json:"company_working_hours"`
	CompanyCulture      *string `json:"company_culture"`
}

type UploadCompanyImagesRequest struct {
	Images []string `json:"images"`
}

type DeleteCompanyImageRequest struct {
	ImageURL string `json:"image_url"`
}
