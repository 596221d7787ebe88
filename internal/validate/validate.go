// Package validate implements the pre-flight validation pass that must fully
// succeed before any export output is generated: required localized fields,
// image alt text, duplicate section identifiers and remote media
// reachability.
package validate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

// ErrorKind enumerates the validation error kinds surfaced to the caller.
type ErrorKind string

const (
	KindRequiredField    ErrorKind = "required_field"
	KindMissingAlt       ErrorKind = "missing_alt"
	KindUnreachableMedia ErrorKind = "unreachable_media"
	KindUnsavedChanges   ErrorKind = "unsaved_changes"
	KindDuplicateSlug    ErrorKind = "duplicate_slug"
)

// ValidationError is one finding of the pre-flight pass. Produced only,
// never persisted, and never raised as a Go error.
type ValidationError struct {
	Kind        ErrorKind             `json:"kind"`
	SectionID   string                `json:"sectionId"`
	SectionType portfolio.SectionType `json:"sectionType"`
	Field       string                `json:"field"`
	Message     string                `json:"message"`
}

// Validator runs the pre-flight checks. The zero value is not usable; use
// New.
type Validator struct {
	client        *http.Client
	maxConcurrent int
	emitter       EventEmitter
}

// Option configures a Validator.
type Option func(*Validator)

// WithHTTPClient overrides the HTTP client used for reachability checks.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Validator) { v.client = c }
}

// WithMaxConcurrent bounds the reachability fan-out.
func WithMaxConcurrent(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxConcurrent = n
		}
	}
}

// WithEventEmitter attaches an emitter notified about unreachable media.
func WithEventEmitter(e EventEmitter) Option {
	return func(v *Validator) { v.emitter = e }
}

// New creates a Validator with a 10 second request timeout and a fan-out
// limit of 10 concurrent checks.
func New(opts ...Option) *Validator {
	v := &Validator{
		client:        &http.Client{Timeout: 10 * time.Second},
		maxConcurrent: 10,
		emitter:       NoopEmitter{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs all pre-flight checks and returns the concatenated error
// list; an empty list means the document may be exported.
//
// When hasUnsavedChanges is set the document in memory may be stale, so
// exactly one unsaved_changes error is returned and nothing else runs.
func (v *Validator) Validate(ctx context.Context, p *portfolio.Portfolio, hasUnsavedChanges bool) []ValidationError {
	if hasUnsavedChanges {
		return []ValidationError{{
			Kind:    KindUnsavedChanges,
			Message: "project has unsaved changes; wait for autosave to complete before exporting",
		}}
	}

	var errs []ValidationError
	errs = append(errs, checkDuplicateIDs(p)...)
	errs = append(errs, checkRequiredFields(p)...)
	errs = append(errs, checkAltText(p)...)
	errs = append(errs, v.checkReachability(ctx, p)...)
	return errs
}

// checkDuplicateIDs flags section identifiers reused within the document.
func checkDuplicateIDs(p *portfolio.Portfolio) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(p.Sections))
	for _, s := range p.Sections {
		if seen[s.ID] {
			errs = append(errs, ValidationError{
				Kind:        KindDuplicateSlug,
				SectionID:   s.ID,
				SectionType: s.Type,
				Field:       "id",
				Message:     fmt.Sprintf("section id %q is used more than once", s.ID),
			})
			continue
		}
		seen[s.ID] = true
	}
	return errs
}

// empty reports whether the localized string is blank for the locale after
// trimming whitespace.
func empty(s portfolio.LocalizedString, l portfolio.Locale) bool {
	return strings.TrimSpace(s.Get(l)) == ""
}

// checkRequiredFields enforces the per-section required fields for every
// enabled locale. Contact email is the single locale-independent required
// field; that asymmetry mirrors the editor's rules and is intentional.
func checkRequiredFields(p *portfolio.Portfolio) []ValidationError {
	var errs []ValidationError
	push := func(s *portfolio.Section, field, msg string) {
		errs = append(errs, ValidationError{
			Kind:        KindRequiredField,
			SectionID:   s.ID,
			SectionType: s.Type,
			Field:       field,
			Message:     msg,
		})
	}

	for i := range p.Sections {
		s := &p.Sections[i]
		switch data := s.Data.(type) {
		case *portfolio.HeroData:
			for _, l := range p.EnabledLocales {
				if empty(data.Headline, l) {
					push(s, fmt.Sprintf("headline.%s", l), fmt.Sprintf("hero section missing headline for locale %q", l))
				}
				if empty(data.Subheadline, l) {
					push(s, fmt.Sprintf("subheadline.%s", l), fmt.Sprintf("hero section missing subheadline for locale %q", l))
				}
				if empty(data.CTAButton, l) {
					push(s, fmt.Sprintf("ctaButton.%s", l), fmt.Sprintf("hero section missing CTA button text for locale %q", l))
				}
			}
		case *portfolio.AboutData:
			for _, l := range p.EnabledLocales {
				if empty(data.Title, l) {
					push(s, fmt.Sprintf("title.%s", l), fmt.Sprintf("about section missing title for locale %q", l))
				}
				if empty(data.Paragraph, l) {
					push(s, fmt.Sprintf("paragraph.%s", l), fmt.Sprintf("about section missing paragraph for locale %q", l))
				}
			}
		case *portfolio.SkillsData:
			for _, l := range p.EnabledLocales {
				if empty(data.Title, l) {
					push(s, fmt.Sprintf("title.%s", l), fmt.Sprintf("skills section missing title for locale %q", l))
				}
			}
		case *portfolio.ProjectsData:
			for _, l := range p.EnabledLocales {
				if empty(data.Title, l) {
					push(s, fmt.Sprintf("title.%s", l), fmt.Sprintf("projects section missing title for locale %q", l))
				}
			}
			for idx := range data.Projects {
				for _, l := range p.EnabledLocales {
					if empty(data.Projects[idx].Title, l) {
						push(s,
							fmt.Sprintf("projects[%d].title.%s", idx, l),
							fmt.Sprintf("project #%d missing title for locale %q", idx+1, l))
					}
				}
			}
		case *portfolio.ContactData:
			for _, l := range p.EnabledLocales {
				if empty(data.Title, l) {
					push(s, fmt.Sprintf("title.%s", l), fmt.Sprintf("contact section missing title for locale %q", l))
				}
			}
			if strings.TrimSpace(data.Email) == "" {
				push(s, "email", "contact section missing email address")
			}
		}
	}
	return errs
}

// checkAltText enforces alt text on every effective image. Legacy plain-URL
// images have no alt source and always fail here.
func checkAltText(p *portfolio.Portfolio) []ValidationError {
	var errs []ValidationError
	for i := range p.Sections {
		s := &p.Sections[i]
		switch data := s.Data.(type) {
		case *portfolio.AboutData:
			if url, alt := data.EffectiveAvatar(); url != "" && strings.TrimSpace(alt) == "" {
				errs = append(errs, ValidationError{
					Kind:        KindMissingAlt,
					SectionID:   s.ID,
					SectionType: s.Type,
					Field:       "avatar",
					Message:     "about section avatar image missing alt text",
				})
			}
		case *portfolio.ProjectsData:
			for idx := range data.Projects {
				if url, alt := data.Projects[idx].EffectiveImage(); url != "" && strings.TrimSpace(alt) == "" {
					errs = append(errs, ValidationError{
						Kind:        KindMissingAlt,
						SectionID:   s.ID,
						SectionType: s.Type,
						Field:       fmt.Sprintf("projects[%d].image", idx),
						Message:     fmt.Sprintf("project #%d image missing alt text", idx+1),
					})
				}
			}
		}
	}
	return errs
}
