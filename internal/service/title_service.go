package service

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/logger"
	"alcyxob/hoops-trainer/internal/platform"
)

// TitleFetcher looks up the title of a YouTube video by id.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, videoID string) (string, error)
}

// EnrichmentReport summarizes one enrichment pass.
type EnrichmentReport struct {
	Candidates int `json:"candidates"` // Visible YouTube videos without a title
	Updated    int `json:"updated"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"` // No extractable id, or changed while fetching
}

// TitleService backfills missing video titles. Enrichment is best effort: a
// failure on one video is logged and the pass moves on.
type TitleService interface {
	UpdateAllMissingTitles(ctx context.Context, principal string) (EnrichmentReport, error)
	UpdateVideoTitle(ctx context.Context, principal, videoID string) (domain.VideoItem, error)
}

type titleService struct {
	library LibraryService
	fetcher TitleFetcher
	limiter *rate.Limiter
}

// NewTitleService creates a title service. A nil limiter means no pacing.
func NewTitleService(library LibraryService, fetcher TitleFetcher, limiter *rate.Limiter) TitleService {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &titleService{library: library, fetcher: fetcher, limiter: limiter}
}

// NewLimiter paces oEmbed calls at perSecond with the given burst.
// perSecond <= 0 disables pacing.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// UpdateAllMissingTitles enriches every visible YouTube video lacking a title.
// It only returns an error when ctx ends; per-video failures are counted.
func (s *titleService) UpdateAllMissingTitles(ctx context.Context, principal string) (EnrichmentReport, error) {
	var report EnrichmentReport
	started := time.Now()

	for _, v := range s.library.LoadVisible(ctx, principal).Videos {
		if !v.NeedsTitle() {
			continue
		}
		report.Candidates++

		updated, err := s.enrich(ctx, principal, v)
		switch {
		case ctx.Err() != nil:
			return report, ctx.Err()
		case err != nil:
			report.Failed++
			logger.Warn().Err(err).Str("video_id", v.ID).Msg("Title enrichment failed")
		case updated:
			report.Updated++
		default:
			report.Skipped++
		}
	}

	logger.Info().
		Int("candidates", report.Candidates).
		Int("updated", report.Updated).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Dur("took", time.Since(started)).
		Msg("Title enrichment finished")
	return report, nil
}

// UpdateVideoTitle enriches a single visible YouTube video. It returns
// ErrVideoNotFound when there is no such video or it is not on YouTube.
func (s *titleService) UpdateVideoTitle(ctx context.Context, principal, videoID string) (domain.VideoItem, error) {
	v, ok := s.library.LoadVisible(ctx, principal).FindVideo(videoID)
	if !ok || v.Platform != domain.PlatformYouTube {
		return domain.VideoItem{}, ErrVideoNotFound
	}
	if v.Title != "" {
		return v, nil
	}
	if _, err := s.enrich(ctx, principal, v); err != nil {
		return domain.VideoItem{}, err
	}
	current, ok := s.library.LoadVisible(ctx, principal).FindVideo(videoID)
	if !ok {
		return domain.VideoItem{}, ErrVideoNotFound
	}
	return current, nil
}

// enrich fetches the title for v and upserts the enriched record. It reports
// false without error when there is nothing to do.
func (s *titleService) enrich(ctx context.Context, principal string, v domain.VideoItem) (bool, error) {
	ytID, ok := platform.ExtractYouTubeID(v.URL)
	if !ok {
		return false, nil
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return false, err
	}
	title, err := s.fetcher.FetchTitle(ctx, ytID)
	if err != nil {
		return false, err
	}

	// Merge into the record as stored now; it may have changed or gone during the fetch.
	_, updated, err := s.library.SetMissingTitle(ctx, principal, v.ID, title)
	return updated, err
}
