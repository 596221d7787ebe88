// Package render turns a portfolio document plus its asset map into static
// site artifacts: per-locale HTML pages, one shared stylesheet, one shared
// script bundle and a README. All generators are pure functions of their
// inputs; they never touch the network or the filesystem, and missing
// optional data degrades to omitted markup rather than an error.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/MykhailoOS/PortfolioLab/internal/assets"
	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

const (
	defaultCTAColor = "#8b5cf6"
	defaultCTALink  = "#"
)

// esc escapes text for safe embedding in HTML content and attributes.
func esc(s string) string { return html.EscapeString(s) }

// HTMLPage renders the complete document for one locale, concatenating
// section fragments in document order. A locale string missing from the
// document renders as empty; the renderer never substitutes another
// locale's text.
func HTMLPage(p *portfolio.Portfolio, locale portfolio.Locale, am assets.Map) string {
	var sections strings.Builder
	for i := range p.Sections {
		sections.WriteString(sectionHTML(&p.Sections[i], locale, am))
	}

	var switcher strings.Builder
	for i, loc := range p.EnabledLocales {
		if i > 0 {
			switcher.WriteString(" | ")
		}
		if loc == locale {
			fmt.Fprintf(&switcher, "<strong>%s</strong>", esc(loc.NativeName()))
		} else {
			fmt.Fprintf(&switcher, `<a href="../%s/index.html">%s</a>`, loc, esc(loc.NativeName()))
		}
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s - Portfolio</title>
  <meta name="description" content="%s - Professional portfolio created with PortfolioLab">
  <meta name="author" content="%s">

  <meta property="og:type" content="website">
  <meta property="og:title" content="%s - Portfolio">
  <meta property="og:description" content="Professional portfolio created with PortfolioLab">

  <meta name="twitter:card" content="summary_large_image">
  <meta name="twitter:title" content="%s - Portfolio">
  <meta name="twitter:description" content="Professional portfolio created with PortfolioLab">

  <link rel="stylesheet" href="../assets/css/style.css">
</head>
<body>
%s
  <!-- Language switcher (disabled by default)
  <div class="locale-switcher">%s</div>
  -->
  <script src="../assets/js/main.js"></script>
</body>
</html>
`, locale, esc(p.Name), esc(p.Name), esc(p.Name), esc(p.Name), esc(p.Name),
		sections.String(), switcher.String())
}

// sectionHTML dispatches on the section's payload type.
func sectionHTML(s *portfolio.Section, locale portfolio.Locale, am assets.Map) string {
	switch data := s.Data.(type) {
	case *portfolio.HeroData:
		return heroHTML(data, s.Effects, locale)
	case *portfolio.AboutData:
		return aboutHTML(data, locale, am)
	case *portfolio.SkillsData:
		return skillsHTML(data, locale)
	case *portfolio.ProjectsData:
		return projectsHTML(data, locale, am)
	case *portfolio.ContactData:
		return contactHTML(data, s.Effects, locale)
	}
	return ""
}

func heroHTML(d *portfolio.HeroData, effects portfolio.Effects, locale portfolio.Locale) string {
	color := d.CTAColor
	if color == "" {
		color = defaultCTAColor
	}
	link := d.CTALink
	if link == "" {
		link = defaultCTALink
	}
	cta := d.CTAButton.Get(locale)
	if cta == "" {
		cta = "Get Started"
	}

	parallaxAttr := ""
	if effects.Parallax != 0 {
		parallaxAttr = fmt.Sprintf(` data-parallax="%s"`, strconv.FormatFloat(effects.Parallax, 'g', -1, 64))
	}
	blurClass := ""
	if effects.Blur {
		blurClass = " blur-effect"
	}

	return fmt.Sprintf(`
    <section class="hero-section"%s>
      <div class="hero-content%s">
        <h1 class="hero-title">%s</h1>
        <p class="hero-subtitle">%s</p>
        <a href="%s" class="hero-cta" style="background-color: %s">%s</a>
      </div>
    </section>`,
		parallaxAttr, blurClass,
		esc(d.Headline.Get(locale)), esc(d.Subheadline.Get(locale)),
		esc(link), esc(color), esc(cta))
}

func aboutHTML(d *portfolio.AboutData, locale portfolio.Locale, am assets.Map) string {
	var b strings.Builder
	b.WriteString(`
    <section class="about-section">
      <div class="about-content">`)

	if url, alt := d.EffectiveAvatar(); url != "" {
		if alt == "" {
			alt = "About me"
		}
		fmt.Fprintf(&b, `
        <img src="%s" alt="%s" class="about-avatar" loading="lazy">`, esc(am.Resolve(url)), esc(alt))
	}

	fmt.Fprintf(&b, `
        <h2 class="about-title">%s</h2>
        <p class="about-paragraph">%s</p>`,
		esc(d.Title.Get(locale)), esc(d.Paragraph.Get(locale)))

	if len(d.Tags) > 0 {
		b.WriteString(`
        <div class="about-tags">`)
		for _, tag := range d.Tags {
			fmt.Fprintf(&b, `<span class="about-tag">%s</span>`, esc(tag))
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`
      </div>
    </section>`)
	return b.String()
}

func skillsHTML(d *portfolio.SkillsData, locale portfolio.Locale) string {
	var b strings.Builder
	fmt.Fprintf(&b, `
    <section class="skills-section">
      <h2 class="skills-title">%s</h2>`, esc(d.Title.Get(locale)))

	if len(d.Skills) == 0 {
		b.WriteString(`
      <p class="empty-placeholder">No skills added yet.</p>`)
	} else {
		b.WriteString(`
      <div class="skills-grid">`)
		for _, skill := range d.Skills {
			// Width stays 0 at render time; the script animates it from data-level.
			fmt.Fprintf(&b, `
        <div class="skill-item">
          <p class="skill-name">%s</p>
          <div class="skill-bar-bg">
            <div class="skill-bar-fill" data-level="%d" style="width: 0%%;"></div>
          </div>
        </div>`, esc(skill.Name), skill.Level)
		}
		b.WriteString(`
      </div>`)
	}

	b.WriteString(`
    </section>`)
	return b.String()
}

func projectsHTML(d *portfolio.ProjectsData, locale portfolio.Locale, am assets.Map) string {
	var b strings.Builder
	fmt.Fprintf(&b, `
    <section class="projects-section">
      <h2 class="projects-title">%s</h2>`, esc(d.Title.Get(locale)))

	if len(d.Projects) == 0 {
		b.WriteString(`
      <p class="empty-placeholder">No projects added yet.</p>`)
	} else {
		b.WriteString(`
      <div class="projects-grid">`)
		for i := range d.Projects {
			b.WriteString(projectCardHTML(&d.Projects[i], locale, am))
		}
		b.WriteString(`
      </div>`)
	}

	b.WriteString(`
    </section>`)
	return b.String()
}

func projectCardHTML(p *portfolio.Project, locale portfolio.Locale, am assets.Map) string {
	var b strings.Builder
	b.WriteString(`
        <div class="project-card">`)

	if url, alt := p.EffectiveImage(); url != "" {
		if alt == "" {
			alt = p.Title.Get(locale)
		}
		if alt == "" {
			alt = "Project image"
		}
		fmt.Fprintf(&b, `
          <img src="%s" alt="%s" class="project-image" loading="lazy">`, esc(am.Resolve(url)), esc(alt))
	}

	fmt.Fprintf(&b, `
          <div class="project-content">
            <h3 class="project-title">%s</h3>`, esc(p.Title.Get(locale)))

	if desc := p.Description.Get(locale); desc != "" {
		fmt.Fprintf(&b, `
            <p class="project-description">%s</p>`, esc(desc))
	}
	if len(p.Tags) > 0 {
		b.WriteString(`
            <div class="project-tags">`)
		for _, tag := range p.Tags {
			fmt.Fprintf(&b, `<span class="project-tag">%s</span>`, esc(tag))
		}
		b.WriteString(`</div>`)
	}
	if p.Link != "" {
		fmt.Fprintf(&b, `
            <a href="%s" class="project-link" target="_blank" rel="noopener noreferrer">View Project</a>`, esc(p.Link))
	}

	b.WriteString(`
          </div>
        </div>`)
	return b.String()
}

func contactHTML(d *portfolio.ContactData, effects portfolio.Effects, locale portfolio.Locale) string {
	blurClass := ""
	if effects.Blur {
		blurClass = " blur-effect"
	}
	email := d.Email
	if email == "" {
		email = "contact@example.com"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `
    <section class="contact-section%s">
      <h2 class="contact-title">%s</h2>
      <a href="mailto:%s" class="contact-email">%s %s</a>`,
		blurClass, esc(d.Title.Get(locale)), esc(email), emailIconSVG, esc(email))

	if len(d.SocialLinks) > 0 {
		b.WriteString(`
      <div class="contact-socials">`)
		for _, link := range d.SocialLinks {
			fmt.Fprintf(&b, `
        <a href="%s" class="contact-social-link" target="_blank" rel="noopener noreferrer" aria-label="%s">%s</a>`,
				esc(link.URL), esc(string(link.Platform)), socialIconSVG[link.Platform])
		}
		b.WriteString(`
      </div>`)
	}

	b.WriteString(`
    </section>`)
	return b.String()
}
