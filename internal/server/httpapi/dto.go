package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/contacthub/internal/server/models"
)

type signupRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type requestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role.String(),
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
}

// dateOnly accepts "YYYY-MM-DD" in request bodies and renders the same
// way in responses.
type dateOnly time.Time

func (d *dateOnly) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = dateOnly(t)
	return nil
}

func (d dateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format("2006-01-02") + `"`), nil
}

type contactRequest struct {
	Name        string   `json:"name" binding:"required,max=50"`
	LastName    string   `json:"last_name" binding:"required,max=50"`
	Email       string   `json:"email" binding:"required,email"`
	PhoneNumber string   `json:"phone_number" binding:"required,max=20"`
	BornDate    dateOnly `json:"born_date" binding:"required"`
	Description string   `json:"description" binding:"max=250"`
}

func (r *contactRequest) toModel() *models.Contact {
	return &models.Contact{
		Name:        r.Name,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		BornDate:    time.Time(r.BornDate),
		Description: r.Description,
	}
}

type contactResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	BornDate    dateOnly  `json:"born_date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func toContactResponse(c *models.Contact) contactResponse {
	return contactResponse{
		ID:          c.ID,
		Name:        c.Name,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		BornDate:    dateOnly(c.BornDate),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func toContactResponses(list []*models.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContactResponse(c))
	}
	return out
}

type noteRequest struct {
	Title       string  `json:"title" binding:"required,max=50"`
	Description string  `json:"description" binding:"required,max=150"`
	Done        bool    `json:"done"`
	Tags        []int64 `json:"tags"`
}

type noteStatusRequest struct {
	Done *bool `json:"done" binding:"required"`
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type noteResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Done        bool          `json:"done"`
	Tags        []tagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	tags := make([]tagResponse, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, tagResponse{ID: t.ID, Name: t.Name})
	}
	return noteResponse{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Done:        n.Done,
		Tags:        tags,
		CreatedAt:   n.CreatedAt,
	}
}

func toNoteResponses(list []*models.Note) []noteResponse {
	out := make([]noteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteResponse(n))
	}
	return out
}

type tagRequest struct {
	Name string `json:"name" binding:"required,max=25"`
}

func toTagResponse(t *models.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name}
}

func toTagResponses(list []*models.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTagResponse(t))
	}
	return out
}
