package domain

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Section types for company page content blocks.
const (
	SectionHero    = "hero"
	SectionText    = "text"
	SectionVideo   = "video"
	SectionGallery = "gallery"
)

// SectionTypes lists every valid content section type.
var SectionTypes = []string{SectionHero, SectionText, SectionVideo, SectionGallery}

// Theme holds the visual customization for a company's public page.
// Zero values are filled in by ApplyDefaults.
type Theme struct {
	PrimaryColor    string `json:"primaryColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Font            string `json:"font,omitempty"`
	TitleColor      string `json:"titleColor,omitempty"`
	BodyColor       string `json:"bodyColor,omitempty"`
	ButtonTextColor string `json:"buttonTextColor,omitempty"`
}

// DefaultTheme returns the theme applied to companies that have not
// customized their page.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:    "#2563eb",
		BackgroundColor: "#ffffff",
		Font:            "Inter",
		TitleColor:      "#111827",
		BodyColor:       "#4b5563",
		ButtonTextColor: "#ffffff",
	}
}

// ApplyDefaults fills any unset theme field with its default value.
func (t *Theme) ApplyDefaults() {
	def := DefaultTheme()
	if t.PrimaryColor == "" {
		t.PrimaryColor = def.PrimaryColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = def.BackgroundColor
	}
	if t.Font == "" {
		t.Font = def.Font
	}
	if t.TitleColor == "" {
		t.TitleColor = def.TitleColor
	}
	if t.BodyColor == "" {
		t.BodyColor = def.BodyColor
	}
	if t.ButtonTextColor == "" {
		t.ButtonTextColor = def.ButtonTextColor
	}
}

// ContentSection is one ordered block on a company's public careers page.
type ContentSection struct {
	Type        string   `json:"type" enum:"hero,text,video,gallery"`
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	GalleryURLs []string `json:"gallery_urls,omitempty"`
	Order       int      `json:"order"`
}

// Company is a tenant: one customer with a branded public jobs page.
type Company struct {
	ID           uuid.UUID        `json:"id"`
	Slug         string           `json:"slug"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	LogoURL      string           `json:"logo_url"`
	Theme        Theme            `json:"theme"`
	Departments  []string         `json:"departments"`
	Sections     []ContentSection `json:"content_sections"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// DefaultDepartments seeds new companies at signup.
func DefaultDepartments() []string {
	return []string{"Engineering", "Sales", "Marketing"}
}

// SortSections orders sections by their Order field. Ties keep their
// original slice position.
func (c *Company) SortSections() {
	sort.SliceStable(c.Sections, func(i, j int) bool {
		return c.Sections[i].Order < c.Sections[j].Order
	})
}

// CompanyUpdate is the allow-list of fields a company may change about
// itself. Email, slug, password and id are deliberately not representable
// here; nil pointers mean "leave unchanged".
type CompanyUpdate struct {
	Name        *string
	LogoURL     *string
	Theme       *Theme
	Departments *[]string
	Sections    *[]ContentSection
}

type CompanyRepository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*Company, error)
	// GetByEmail includes the password hash and is only used for login.
	GetByEmail(ctx context.Context, email string) (*Company, error)
	Update(ctx context.Context, id uuid.UUID, patch CompanyUpdate) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
}
