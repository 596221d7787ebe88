package render

import "fmt"

// CSS emits the shared stylesheet. The only document-dependent value is the
// theme's primary color, injected as a custom property; every other rule is
// fixed, so the output is locale- and content-independent.
func CSS(theme Theme) string {
	return fmt.Sprintf(cssTemplate, theme.PrimaryColor)
}

// Theme carries the document theme values the renderer needs.
type Theme struct {
	PrimaryColor string
	Mode         string
}

const cssTemplate = `/* PortfolioLab Export - Generated CSS */
/* Reset and Base Styles */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  scroll-behavior: smooth;
  -webkit-font-smoothing: antialiased;
  -moz-osx-font-smoothing: grayscale;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', 'Oxygen', 'Ubuntu', 'Cantarell', 'Fira Sans', 'Droid Sans', 'Helvetica Neue', sans-serif;
  line-height: 1.6;
  color: #e2e8f0;
  background-color: #0f172a;
  overflow-x: hidden;
}

/* Theme Variables */
:root {
  --color-primary: %s;
  --color-dark: #0f172a;
  --color-night: #1e293b;
  --color-light: #f1f5f9;
  --color-mist: #94a3b8;
  --color-accent: #8b5cf6;
  --transition-base: all 0.3s ease;
}

/* Utility Classes */
.container {
  max-width: 1200px;
  margin: 0 auto;
  padding: 0 1.5rem;
}

.empty-placeholder {
  text-align: center;
  color: var(--color-mist);
}

/* Section Styles */
section {
  position: relative;
  width: 100%%;
}

/* Hero Section */
.hero-section {
  min-height: 100vh;
  display: flex;
  align-items: center;
  justify-content: center;
  text-align: center;
  position: relative;
  overflow: hidden;
  background: linear-gradient(135deg, #0f172a 0%%, #4c1d95 100%%);
  padding: 2rem 1rem;
}

.hero-content {
  position: relative;
  z-index: 10;
  max-width: 800px;
}

.hero-content.blur-effect {
  background: rgba(0, 0, 0, 0.3);
  backdrop-filter: blur(12px);
  padding: 3rem;
  border-radius: 1rem;
}

.hero-title {
  font-size: clamp(2.5rem, 8vw, 5rem);
  font-weight: 800;
  margin-bottom: 1rem;
  line-height: 1.1;
  color: #ffffff;
}

.hero-subtitle {
  font-size: clamp(1.125rem, 3vw, 1.5rem);
  color: var(--color-mist);
  margin-bottom: 2rem;
  max-width: 700px;
  margin-left: auto;
  margin-right: auto;
}

.hero-cta {
  display: inline-block;
  padding: 1rem 2rem;
  font-size: 1.125rem;
  font-weight: 700;
  color: #ffffff;
  background-color: var(--color-accent);
  border-radius: 0.5rem;
  text-decoration: none;
  transition: var(--transition-base);
}

.hero-cta:hover {
  opacity: 0.9;
  transform: scale(1.05);
}

/* About Section */
.about-section {
  padding: 6rem 1.5rem;
  background-color: var(--color-dark);
}

.about-content {
  max-width: 800px;
  margin: 0 auto;
  text-align: center;
}

.about-avatar {
  width: 200px;
  height: 200px;
  border-radius: 50%%;
  object-fit: cover;
  margin: 0 auto 2rem;
  border: 4px solid var(--color-accent);
}

.about-title {
  font-size: 2.5rem;
  font-weight: 700;
  margin-bottom: 1.5rem;
  color: #ffffff;
}

.about-paragraph {
  font-size: 1.125rem;
  line-height: 1.8;
  color: var(--color-mist);
  margin-bottom: 1.5rem;
}

.about-tags {
  display: flex;
  flex-wrap: wrap;
  gap: 0.5rem;
  justify-content: center;
  margin-top: 2rem;
}

.about-tag {
  padding: 0.5rem 1rem;
  background-color: var(--color-night);
  border-radius: 9999px;
  font-size: 0.875rem;
  color: var(--color-light);
}

/* Skills Section */
.skills-section {
  padding: 6rem 1.5rem;
  background-color: var(--color-night);
}

.skills-title {
  font-size: 2.5rem;
  font-weight: 700;
  text-align: center;
  margin-bottom: 3rem;
  color: #ffffff;
}

.skills-grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
  gap: 2rem;
  max-width: 1000px;
  margin: 0 auto;
}

.skill-item {
  text-align: center;
}

.skill-name {
  font-size: 1.125rem;
  font-weight: 600;
  margin-bottom: 0.5rem;
  color: #ffffff;
}

.skill-bar-bg {
  width: 100%%;
  height: 0.625rem;
  background-color: #334155;
  border-radius: 9999px;
  overflow: hidden;
}

.skill-bar-fill {
  height: 100%%;
  background-color: var(--color-accent);
  border-radius: 9999px;
  transition: width 1s ease-out;
}

/* Projects Section */
.projects-section {
  padding: 6rem 1.5rem;
  background-color: var(--color-dark);
}

.projects-title {
  font-size: 2.5rem;
  font-weight: 700;
  text-align: center;
  margin-bottom: 3rem;
  color: #ffffff;
}

.projects-grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(300px, 1fr));
  gap: 2rem;
  max-width: 1200px;
  margin: 0 auto;
}

.project-card {
  background-color: var(--color-night);
  border-radius: 0.75rem;
  overflow: hidden;
  transition: var(--transition-base);
}

.project-card:hover {
  transform: translateY(-5px);
  box-shadow: 0 20px 40px rgba(139, 92, 246, 0.2);
}

.project-image {
  width: 100%%;
  height: 14rem;
  object-fit: cover;
  transition: transform 0.3s ease;
}

.project-card:hover .project-image {
  transform: scale(1.05);
}

.project-content {
  padding: 1.5rem;
}

.project-title {
  font-size: 1.5rem;
  font-weight: 700;
  margin-bottom: 0.5rem;
  color: #ffffff;
}

.project-description {
  color: var(--color-mist);
  margin-bottom: 1rem;
  line-height: 1.6;
}

.project-tags {
  display: flex;
  flex-wrap: wrap;
  gap: 0.5rem;
  margin-bottom: 1rem;
}

.project-tag {
  padding: 0.25rem 0.75rem;
  background-color: var(--color-dark);
  border-radius: 0.25rem;
  font-size: 0.75rem;
  color: var(--color-accent);
}

.project-link {
  display: inline-block;
  color: var(--color-accent);
  text-decoration: none;
  font-weight: 600;
  transition: var(--transition-base);
}

.project-link:hover {
  text-decoration: underline;
}

/* Contact Section */
.contact-section {
  padding: 6rem 1.5rem;
  background-color: var(--color-night);
  text-align: center;
}

.contact-section.blur-effect {
  background-color: rgba(30, 41, 59, 0.5);
  backdrop-filter: blur(8px);
}

.contact-title {
  font-size: 2.5rem;
  font-weight: 700;
  margin-bottom: 1rem;
  color: #ffffff;
}

.contact-email {
  display: inline-flex;
  align-items: center;
  gap: 0.5rem;
  font-size: 1.5rem;
  color: var(--color-accent);
  text-decoration: none;
  transition: var(--transition-base);
}

.contact-email:hover {
  text-decoration: underline;
}

.contact-socials {
  display: flex;
  justify-content: center;
  gap: 1.5rem;
  margin-top: 2rem;
}

.contact-social-link {
  color: var(--color-mist);
  transition: var(--transition-base);
}

.contact-social-link:hover {
  color: #ffffff;
}

.contact-social-icon {
  width: 28px;
  height: 28px;
}

/* Animations */
@keyframes fadeInUp {
  from {
    opacity: 0;
    transform: translateY(30px);
  }
  to {
    opacity: 1;
    transform: translateY(0);
  }
}

.animate-on-scroll {
  opacity: 0;
  animation: fadeInUp 0.8s ease forwards;
}

/* Parallax */
.parallax-element {
  will-change: transform;
}

/* Reduced Motion */
@media (prefers-reduced-motion: reduce) {
  *,
  *::before,
  *::after {
    animation-duration: 0.01ms !important;
    animation-iteration-count: 1 !important;
    transition-duration: 0.01ms !important;
    scroll-behavior: auto !important;
  }

  .parallax-element {
    transform: none !important;
  }
}

/* Responsive */
@media (max-width: 768px) {
  .skills-grid {
    grid-template-columns: 1fr;
  }

  .projects-grid {
    grid-template-columns: 1fr;
  }

  .hero-content.blur-effect {
    padding: 2rem;
  }
}

/* Accessibility */
:focus-visible {
  outline: 2px solid var(--color-accent);
  outline-offset: 2px;
}

a:focus,
button:focus {
  outline: 2px solid var(--color-accent);
  outline-offset: 2px;
}

/* Print Styles */
@media print {
  body {
    background: white;
    color: black;
  }

  .hero-section {
    min-height: auto;
    page-break-after: always;
  }
}
`
