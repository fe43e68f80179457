// Package types provides type definitions for the résumé document served by cv-site.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CVDocument is the résumé payload loaded from cv.json.
type CVDocument struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	SocialLinks  SocialLinks  `json:"socialLinks"`
	Experience   []Experience `json:"experience" validate:"dive"`
	Education    []Education  `json:"education" validate:"dive"`
	Skills       []SkillGroup `json:"skills" validate:"dive"`
}

// PersonalInfo holds the identity and contact block of the document.
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
	PhotoURL string `json:"photo,omitempty"`
}

// SocialLinks holds optional profile links. An empty link means no icon.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Twitter  string `json:"twitter,omitempty" validate:"omitempty,url"`
}

// Experience is one job entry.
type Experience struct {
	ID           ID       `json:"id"`
	Role         string   `json:"role" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Period       string   `json:"period"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Education is one education entry.
type Education struct {
	ID          ID     `json:"id"`
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// SkillGroup is one skills category with its items.
type SkillGroup struct {
	Category string   `json:"category" validate:"required"`
	Items    []string `json:"items"`
}

// ID is an entry identifier that may be written as a JSON string or number.
type ID string

// UnmarshalJSON accepts both `"a1"` and `1`.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// DecodeCVDocument parses a cv.json payload. Only malformed JSON is an error;
// missing optional fields are left empty.
func DecodeCVDocument(data []byte) (*CVDocument, error) {
	var doc CVDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse CV JSON: %w", err)
	}
	return &doc, nil
}

// Validate lints the document with struct tags. The render path never calls it;
// it backs the validate command.
func (d *CVDocument) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

// Lint returns one human readable line per failed struct rule.
func (d *CVDocument) Lint() []string {
	err := d.Validate()
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "CVDocument.")
		out = append(out, fmt.Sprintf("%s: failed %q rule", field, fe.Tag()))
	}
	return out
}

// SocialLink is a present social profile link.
type SocialLink struct {
	Network string
	URL     string
}

// Present returns the non-empty links in github, linkedin, twitter order.
func (s SocialLinks) Present() []SocialLink {
	var out []SocialLink
	if s.GitHub != "" {
		out = append(out, SocialLink{Network: "github", URL: s.GitHub})
	}
	if s.LinkedIn != "" {
		out = append(out, SocialLink{Network: "linkedin", URL: s.LinkedIn})
	}
	if s.Twitter != "" {
		out = append(out, SocialLink{Network: "twitter", URL: s.Twitter})
	}
	return out
}
