// Package portfolio defines the portfolio document model shared by the
// editor-facing tooling and the export pipeline: the root Portfolio value,
// the tagged Section variants, localized strings and media references.
package portfolio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionType tags the concrete payload carried by a Section.
type SectionType string

const (
	SectionHero     SectionType = "hero"
	SectionAbout    SectionType = "about"
	SectionSkills   SectionType = "skills"
	SectionProjects SectionType = "projects"
	SectionContact  SectionType = "contact"
)

// Effects is the per-section visual effects record.
type Effects struct {
	Parallax float64 `json:"parallax"`
	Blur     bool    `json:"blur"`
	Has3D    bool    `json:"has3d"`
}

// MediaMetadata carries optional information about an uploaded image.
type MediaMetadata struct {
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
	MIME     string `json:"mime,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// MediaRef references an image by public URL with required alt text.
type MediaRef struct {
	ID       string         `json:"id,omitempty"`
	URL      string         `json:"url"`
	Alt      string         `json:"alt"`
	Metadata *MediaMetadata `json:"metadata,omitempty"`
}

// SectionData is the closed set of section payloads. Exactly one concrete
// type exists per SectionType so validators and renderers can switch
// exhaustively instead of probing loosely-typed fields.
type SectionData interface {
	Kind() SectionType
}

// HeroData is the payload of a hero section.
type HeroData struct {
	Headline    LocalizedString `json:"headline"`
	Subheadline LocalizedString `json:"subheadline"`
	CTAButton   LocalizedString `json:"ctaButton"`
	CTALink     string          `json:"ctaLink,omitempty"`
	CTAColor    string          `json:"ctaColor,omitempty"`
}

func (*HeroData) Kind() SectionType { return SectionHero }

// AboutData is the payload of an about section. ImageURL is the legacy
// plain-URL field retained for documents that predate MediaRef.
type AboutData struct {
	Title     LocalizedString `json:"title"`
	Paragraph LocalizedString `json:"paragraph"`
	Avatar    *MediaRef       `json:"avatar,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Layout    string          `json:"layout,omitempty"`
}

func (*AboutData) Kind() SectionType { return SectionAbout }

// Skill is a single named skill with a 0-100 proficiency level.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// SkillsData is the payload of a skills section.
type SkillsData struct {
	Title  LocalizedString `json:"title"`
	Skills []Skill         `json:"skills"`
}

func (*SkillsData) Kind() SectionType { return SectionSkills }

// Project is one portfolio project entry. ImageURL is the legacy plain-URL
// field, superseded by Image.
type Project struct {
	ID          string          `json:"id"`
	Title       LocalizedString `json:"title"`
	Description LocalizedString `json:"description"`
	Image       *MediaRef       `json:"image,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Link        string          `json:"link,omitempty"`
}

// ProjectsData is the payload of a projects section.
type ProjectsData struct {
	Title    LocalizedString `json:"title"`
	Projects []Project       `json:"projects"`
}

func (*ProjectsData) Kind() SectionType { return SectionProjects }

// SocialPlatform identifies a social network for contact links.
type SocialPlatform string

const (
	PlatformGitHub    SocialPlatform = "github"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformTelegram  SocialPlatform = "telegram"
	PlatformInstagram SocialPlatform = "instagram"
)

// SocialLink is one external profile link in a contact section.
type SocialLink struct {
	ID       string         `json:"id"`
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

// ContactData is the payload of a contact section. Email is deliberately not
// localized; the title is.
type ContactData struct {
	Title       LocalizedString `json:"title"`
	Email       string          `json:"email"`
	SocialLinks []SocialLink    `json:"socialLinks,omitempty"`
}

func (*ContactData) Kind() SectionType { return SectionContact }

// Section is one content block of the portfolio. Order within
// Portfolio.Sections is presentation order.
type Section struct {
	ID      string      `json:"id"`
	Type    SectionType `json:"type"`
	Data    SectionData `json:"data"`
	Effects Effects     `json:"effects"`
}

// sectionJSON mirrors Section with a raw data payload for two-phase decoding.
type sectionJSON struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Data    json.RawMessage `json:"data"`
	Effects Effects         `json:"effects"`
}

// UnmarshalJSON decodes the type tag first and then the payload into the
// matching concrete SectionData type.
func (s *Section) UnmarshalJSON(b []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.Type = raw.Type
	s.Effects = raw.Effects

	var data SectionData
	switch raw.Type {
	case SectionHero:
		data = &HeroData{}
	case SectionAbout:
		data = &AboutData{}
	case SectionSkills:
		data = &SkillsData{}
	case SectionProjects:
		data = &ProjectsData{}
	case SectionContact:
		data = &ContactData{}
	default:
		return fmt.Errorf("unknown section type %q", raw.Type)
	}
	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return fmt.Errorf("decode %s section data: %w", raw.Type, err)
		}
	}
	s.Data = data
	return nil
}

// Theme holds the document-wide theme settings.
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
	Mode         string `json:"mode"`
}

// Portfolio is the root document consumed by the export pipeline.
type Portfolio struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug,omitempty"`
	Sections       []Section `json:"sections"`
	Theme          Theme    `json:"theme"`
	EnabledLocales []Locale `json:"enabledLocales"`
	DefaultLocale  Locale   `json:"defaultLocale"`
}

// CheckInvariants verifies the structural invariants of the document: a
// non-empty enabled-locale set drawn from the supported enumeration that
// includes the default locale, and section identifiers unique within the
// document. Content-level rules (required fields, alt text) belong to the
// validator.
func (p *Portfolio) CheckInvariants() error {
	if len(p.EnabledLocales) == 0 {
		return fmt.Errorf("portfolio %q has no enabled locales", p.ID)
	}
	hasDefault := false
	for _, l := range p.EnabledLocales {
		if !l.Valid() {
			return fmt.Errorf("portfolio %q enables unsupported locale %q", p.ID, l)
		}
		if l == p.DefaultLocale {
			hasDefault = true
		}
	}
	if !hasDefault {
		return fmt.Errorf("portfolio %q default locale %q is not enabled", p.ID, p.DefaultLocale)
	}
	seen := make(map[string]bool, len(p.Sections))
	for _, s := range p.Sections {
		if seen[s.ID] {
			return fmt.Errorf("portfolio %q has duplicate section id %q", p.ID, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// ArchiveName derives the export archive filename from the display name:
// lowercased, whitespace collapsed to hyphens, suffixed "-portfolio.zip".
func (p *Portfolio) ArchiveName() string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	name = strings.Join(strings.Fields(name), "-")
	if name == "" {
		name = "untitled"
	}
	return name + "-portfolio.zip"
}
