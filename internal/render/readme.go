package render

import (
	"fmt"
	"strings"

	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

// Readme emits the fixed-structure README.txt included in every archive:
// directory layout, hosting instructions, enabled locales and attribution.
// The output is deterministic for a given document; no timestamps are
// embedded so repeated exports stay byte-identical.
func Readme(p *portfolio.Portfolio) string {
	var locales strings.Builder
	for _, loc := range p.EnabledLocales {
		fmt.Fprintf(&locales, "  - %s (%s): /%s/index.html\n", strings.ToUpper(string(loc)), loc.DisplayName(), loc)
	}

	var editPaths []string
	for _, loc := range p.EnabledLocales {
		editPaths = append(editPaths, fmt.Sprintf("%s/index.html", loc))
	}

	return fmt.Sprintf(`PortfolioLab Static Export
============================

Project: %s

CONTENTS
--------
This archive contains a complete static website ready for hosting:

  /assets/
    /css/style.css         - Compiled styles with theme tokens
    /js/main.js            - JavaScript for animations and effects
    /img/                  - All images used in the portfolio
  /<locale>/index.html     - One HTML page per enabled locale
  README.txt               - This file

HOSTING INSTRUCTIONS
--------------------

1. STATIC HOSTING (Recommended)
   - Netlify: drag and drop this folder to https://app.netlify.com/drop
   - Vercel: run "vercel --prod" in this directory
   - GitHub Pages: push to a repo, enable Pages in Settings
   - Cloudflare Pages: connect repo or upload folder

2. TRADITIONAL HOSTING (cPanel, FTP)
   - Upload all files to public_html or www folder
   - Keep the folder structure intact
   - Default page: /%s/index.html

3. LOCAL TESTING
   - Python: python3 -m http.server 8000
   - Node.js: npx serve .
   - Open http://localhost:8000/%s/index.html

LANGUAGES
---------
This portfolio is available in %d language(s):
%s
Default language: %s

CUSTOMIZATION
-------------
You can edit the exported files:
  - Styles: assets/css/style.css
  - Scripts: assets/js/main.js
  - Content: %s

MADE WITH
---------
PortfolioLab - Professional Portfolio Builder
https://portfoliolab.dev
`,
		p.Name,
		p.DefaultLocale, p.DefaultLocale,
		len(p.EnabledLocales), locales.String(),
		strings.ToUpper(string(p.DefaultLocale)),
		strings.Join(editPaths, ", "))
}
