package dto

type CreateBlogRequest struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ReadTime string `json:"read_time"`
	Image    string `json:"image"`
}

type BlogListFilter struct {
	Category string
	Search   string
}
