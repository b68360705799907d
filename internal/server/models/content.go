package models

import "time"

type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	ImageURL     *string   `json:"imageUrl"`
	GithubURL    *string   `json:"githubUrl"`
	LiveURL      *string   `json:"liveUrl"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProjectPatch carries a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Title        *string   `json:"title" validate:"omitnil,min=1"`
	Description  *string   `json:"description" validate:"omitnil,min=1"`
	ImageURL     *string   `json:"imageUrl"`
	GithubURL    *string   `json:"githubUrl"`
	LiveURL      *string   `json:"liveUrl"`
	Technologies *[]string `json:"technologies"`
	Featured     *bool     `json:"featured"`
	Order        *int      `json:"order"`
}

func (p ProjectPatch) Apply(dst *Project) {
	setIf(&dst.Title, p.Title)
	setIf(&dst.Description, p.Description)
	setOptional(&dst.ImageURL, p.ImageURL)
	setOptional(&dst.GithubURL, p.GithubURL)
	setOptional(&dst.LiveURL, p.LiveURL)
	setIf(&dst.Technologies, p.Technologies)
	setIf(&dst.Featured, p.Featured)
	setIf(&dst.Order, p.Order)
}

type Skill struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Category  string    `json:"category" validate:"required"`
	Level     int       `json:"level" validate:"min=1,max=5"`
	Icon      *string   `json:"icon"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SkillPatch struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Category *string `json:"category" validate:"omitnil,min=1"`
	Level    *int    `json:"level" validate:"omitnil,min=1,max=5"`
	Icon     *string `json:"icon"`
	Order    *int    `json:"order"`
}

func (p SkillPatch) Apply(dst *Skill) {
	setIf(&dst.Name, p.Name)
	setIf(&dst.Category, p.Category)
	setIf(&dst.Level, p.Level)
	setOptional(&dst.Icon, p.Icon)
	setIf(&dst.Order, p.Order)
}

type Experience struct {
	ID           string     `json:"id"`
	Title        string     `json:"title" validate:"required"`
	Company      string     `json:"company" validate:"required"`
	Location     *string    `json:"location"`
	StartDate    time.Time  `json:"startDate" validate:"required"`
	EndDate      *time.Time `json:"endDate"`
	Current      bool       `json:"current"`
	Description  string     `json:"description" validate:"required"`
	Technologies []string   `json:"technologies"`
	Order        int        `json:"order"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type ExperiencePatch struct {
	Title        *string    `json:"title" validate:"omitnil,min=1"`
	Company      *string    `json:"company" validate:"omitnil,min=1"`
	Location     *string    `json:"location"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Current      *bool      `json:"current"`
	Description  *string    `json:"description" validate:"omitnil,min=1"`
	Technologies *[]string  `json:"technologies"`
	Order        *int       `json:"order"`
}

func (p ExperiencePatch) Apply(dst *Experience) {
	setIf(&dst.Title, p.Title)
	setIf(&dst.Company, p.Company)
	setOptional(&dst.Location, p.Location)
	setIf(&dst.StartDate, p.StartDate)
	setOptional(&dst.EndDate, p.EndDate)
	setIf(&dst.Current, p.Current)
	setIf(&dst.Description, p.Description)
	setIf(&dst.Technologies, p.Technologies)
	setIf(&dst.Order, p.Order)
	if p.ClearsEndDate() {
		dst.EndDate = nil
	}
}

// ClearsEndDate reports whether the patch marks the position as current,
// which drops any stored end date.
func (p ExperiencePatch) ClearsEndDate() bool {
	return p.Current != nil && *p.Current
}

type About struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	ImageURL  *string   `json:"imageUrl"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AboutPatch struct {
	Title    *string `json:"title" validate:"omitnil,min=1"`
	Content  *string `json:"content" validate:"omitnil,min=1"`
	ImageURL *string `json:"imageUrl"`
	Order    *int    `json:"order"`
}

func (p AboutPatch) Apply(dst *About) {
	setIf(&dst.Title, p.Title)
	setIf(&dst.Content, p.Content)
	setOptional(&dst.ImageURL, p.ImageURL)
	setIf(&dst.Order, p.Order)
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Subject   string    `json:"subject" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setOptional[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}
