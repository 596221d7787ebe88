package portfolio

// EffectiveImage resolves the "mediaRef or legacy URL" pattern in one place
// so the validator, the asset collector and the renderer can never disagree
// about which URL is the image. Alt text only ever comes from the MediaRef;
// legacy plain-URL fields carry none.
func EffectiveImage(ref *MediaRef, legacyURL string) (url, alt string) {
	if ref != nil && ref.URL != "" {
		return ref.URL, ref.Alt
	}
	return legacyURL, ""
}

// EffectiveAvatar returns the about section's effective avatar URL and alt.
func (d *AboutData) EffectiveAvatar() (url, alt string) {
	return EffectiveImage(d.Avatar, d.ImageURL)
}

// EffectiveImage returns the project's effective image URL and alt.
func (p *Project) EffectiveImage() (url, alt string) {
	return EffectiveImage(p.Image, p.ImageURL)
}

// ImageURLs walks the sections in document order and returns every distinct
// effective image URL, preserving first-seen order.
func (p *Portfolio) ImageURLs() []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, s := range p.Sections {
		switch data := s.Data.(type) {
		case *AboutData:
			u, _ := data.EffectiveAvatar()
			add(u)
		case *ProjectsData:
			for i := range data.Projects {
				u, _ := data.Projects[i].EffectiveImage()
				add(u)
			}
		}
	}
	return urls
}
