package dto

type ContentResponse struct {
	Page     string `json:"page"`
	Section  string `json:"section"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

type PageContentResponse struct {
	Page     string            `json:"page"`
	Language string            `json:"language"`
	Sections map[string]string `json:"sections"`
}

type UpdateContentRequest struct {
	Content  string `json:"content" validate:"required"`
	Language string `json:"language,omitempty" validate:"omitempty,min=2,max=10"`
}

type UpdateContentResponse struct {
	ContentResponse
	Warning string `json:"warning,omitempty"`
}
