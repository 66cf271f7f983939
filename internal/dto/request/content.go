package request

type PostRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=300"`
	Slug      string `json:"slug" validate:"required,min=2,max=300"`
	Excerpt   string `json:"excerpt" validate:"omitempty,max=1000"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

type SubscribeRequest struct {
	Name   string `json:"name" validate:"omitempty,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source" validate:"omitempty,max=50"`
}

type SettingRequest struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=5000"`
}
