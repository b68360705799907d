package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/server/models"
)

// dateLayouts are tried in order; HTML date inputs send the last one.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// flexDate accepts full timestamps as well as bare dates.
type flexDate struct {
	time.Time
}

func (d *flexDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *flexDate) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

type experienceRequest struct {
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     *string   `json:"location"`
	StartDate    flexDate  `json:"startDate"`
	EndDate      *flexDate `json:"endDate"`
	Current      bool      `json:"current"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Order        int       `json:"order"`
}

func (r experienceRequest) model() *models.Experience {
	return &models.Experience{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		StartDate:    r.StartDate.Time,
		EndDate:      r.EndDate.ptr(),
		Current:      r.Current,
		Description:  r.Description,
		Technologies: r.Technologies,
		Order:        r.Order,
	}
}

type experiencePatchRequest struct {
	Title        *string   `json:"title"`
	Company      *string   `json:"company"`
	Location     *string   `json:"location"`
	StartDate    *flexDate `json:"startDate"`
	EndDate      *flexDate `json:"endDate"`
	Current      *bool     `json:"current"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
	Order        *int      `json:"order"`
}

func (r experiencePatchRequest) patch() models.ExperiencePatch {
	return models.ExperiencePatch{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		StartDate:    r.StartDate.ptr(),
		EndDate:      r.EndDate.ptr(),
		Current:      r.Current,
		Description:  r.Description,
		Technologies: r.Technologies,
		Order:        r.Order,
	}
}
