package response

import (
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"
)

type ServiceResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration"`
	Active   bool    `json:"active"`
	Featured bool    `json:"featured"`
}

func ServiceToResponse(s *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:       s.ID.String(),
		Name:     s.Name,
		Price:    s.Price,
		Duration: s.Duration,
		Active:   s.Active,
		Featured: s.Featured,
	}
}

type BlockedDateResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

func BlockedDateToResponse(b *entity.BlockedDate) BlockedDateResponse {
	return BlockedDateResponse{
		ID:     b.ID.String(),
		Date:   b.Date.Format(utils.DateLayout),
		Reason: b.Reason,
	}
}

type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

func PostToResponse(p *entity.Post, includeContent bool) PostResponse {
	resp := PostResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
	}
	if includeContent {
		resp.Content = p.Content
	}
	return resp
}

type LeadResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func LeadToResponse(l *entity.Lead) LeadResponse {
	return LeadResponse{
		ID:        l.ID.String(),
		Name:      l.Name,
		Email:     l.Email,
		Source:    l.Source,
		CreatedAt: l.CreatedAt,
	}
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func SettingToResponse(s *entity.Setting) SettingResponse {
	return SettingResponse{Key: s.Key, Value: s.Value}
}
