package validate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

// checkReachability issues one HEAD request per distinct effective image URL
// and reports every field that references an unreachable URL. Checks fan out
// concurrently bounded by a semaphore; the error list is assembled from the
// document walk afterwards so its order follows the document, not response
// arrival.
func (v *Validator) checkReachability(ctx context.Context, p *portfolio.Portfolio) []ValidationError {
	urls := p.ImageURLs()
	if len(urls) == 0 {
		return nil
	}

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		unreachable = make(map[string]bool, len(urls))
		sem         = make(chan struct{}, v.maxConcurrent)
	)
	for _, u := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if !v.reachable(ctx, u) {
				mu.Lock()
				unreachable[u] = true
				mu.Unlock()
			}
		}(u)
	}
	wg.Wait()

	if len(unreachable) == 0 {
		return nil
	}

	var errs []ValidationError
	push := func(s *portfolio.Section, field, url string) {
		errs = append(errs, ValidationError{
			Kind:        KindUnreachableMedia,
			SectionID:   s.ID,
			SectionType: s.Type,
			Field:       field,
			Message:     fmt.Sprintf("%s image unreachable: %s", s.Type, url),
		})
		v.emitUnreachable(ctx, s.ID, field, url)
	}
	for i := range p.Sections {
		s := &p.Sections[i]
		switch data := s.Data.(type) {
		case *portfolio.AboutData:
			if url, _ := data.EffectiveAvatar(); url != "" && unreachable[url] {
				push(s, "avatar", url)
			}
		case *portfolio.ProjectsData:
			for idx := range data.Projects {
				if url, _ := data.Projects[idx].EffectiveImage(); url != "" && unreachable[url] {
					push(s, fmt.Sprintf("projects[%d].image", idx), url)
				}
			}
		}
	}
	return errs
}

// reachable performs a single HEAD probe. Any transport failure or
// non-success status marks the URL unreachable.
func (v *Validator) reachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		slog.Debug("invalid media URL", "url", url, "error", err)
		return false
	}
	resp, err := v.client.Do(req)
	if err != nil {
		slog.Debug("media HEAD request failed", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
