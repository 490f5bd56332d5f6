// Package pipeline connects the service to the event bus: it ingests raw
// provider scores published by upstream analysis pipelines and periodically
// publishes aggregate stats for dashboards.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/evalhq/rubric/internal/config"
	"github.com/evalhq/rubric/internal/events"
	"github.com/evalhq/rubric/internal/ranking"
	"github.com/evalhq/rubric/internal/store"
)

type Pipeline struct {
	store  store.Store
	events events.Client
	cfg    *config.Config
	logger *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:  s,
		events: ev,
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

func (p *Pipeline) Start(ctx context.Context) {
	if p.events != nil && p.cfg.StatsInterval() > 0 {
		p.wg.Add(1)
		go p.statsLoop(ctx)
	}
}

func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

// SetupSubscriptions wires the inbound raw-score feed. Each accepted score
// is upserted and acknowledged with a score-updated and a
// ranking-recomputed event so listeners know the standings may have moved.
func (p *Pipeline) SetupSubscriptions() {
	if p.events == nil {
		return
	}

	_ = p.events.Subscribe(events.SubjectScoreIngest, func(_ string, data []byte) {
		var evt events.ScoreIngestEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			p.logger.Warn("invalid score ingest event", "error", err)
			return
		}
		p.handleScoreIngest(context.Background(), evt)
	})
}

func (p *Pipeline) handleScoreIngest(ctx context.Context, evt events.ScoreIngestEvent) {
	if evt.ProjectID == "" || evt.Provider == "" || evt.Criterion == "" {
		p.logger.Warn("score ingest event missing identifiers",
			"project_id", evt.ProjectID, "provider", evt.Provider, "criterion", evt.Criterion)
		return
	}
	if evt.Source == "" {
		evt.Source = "pipeline"
	}

	score := &store.ProviderScore{
		ProjectID: evt.ProjectID,
		Provider:  evt.Provider,
		Criterion: evt.Criterion,
		Score:     clampScore(evt.Score),
		Source:    evt.Source,
	}
	if err := p.store.UpsertRawScore(ctx, score); err != nil {
		p.logger.Error("failed to upsert ingested score",
			"project_id", evt.ProjectID, "provider", evt.Provider, "error", err)
		return
	}
	p.logger.Info("score ingested",
		"project_id", evt.ProjectID, "provider", evt.Provider, "criterion", evt.Criterion, "score", score.Score)

	_ = p.events.Publish(events.SubjectScoreUpdated(evt.ProjectID), events.ScoreUpdatedEvent{
		ProjectID: evt.ProjectID,
		Provider:  evt.Provider,
		Criterion: evt.Criterion,
		Score:     score.Score,
	})
	p.publishRecomputed(ctx, evt.ProjectID)
}

func (p *Pipeline) publishRecomputed(ctx context.Context, projectID string) {
	categories, err := p.store.LoadConfiguration(ctx, projectID)
	if err != nil {
		p.logger.Warn("failed to load configuration for recompute", "project_id", projectID, "error", err)
		return
	}
	rawScores, err := p.store.ListRawScores(ctx, projectID)
	if err != nil {
		p.logger.Warn("failed to list scores for recompute", "project_id", projectID, "error", err)
		return
	}

	entries := ranking.Rank(categories, toRawScores(rawScores), nil)
	evt := events.RankingRecomputedEvent{ProjectID: projectID, Providers: len(entries)}
	if len(entries) > 0 {
		evt.TopPerformer = entries[0].Provider
		evt.TopScore = entries[0].OverallScore
	}
	_ = p.events.Publish(events.SubjectRankingRecomputed(projectID), evt)
}

func (p *Pipeline) statsLoop(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.cfg.StatsInterval())
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishStats(ctx)
		}
	}
}

func (p *Pipeline) publishStats(ctx context.Context) {
	projects, err := p.store.ListProjects(ctx)
	if err != nil {
		p.logger.Error("failed to list projects for stats", "error", err)
		return
	}
	_ = p.events.Publish(events.SubjectDashboardStats, events.StatsEvent{
		Projects:  len(projects),
		Timestamp: time.Now().UTC(),
	})
}

func toRawScores(scores []*store.ProviderScore) []ranking.RawScore {
	out := make([]ranking.RawScore, len(scores))
	for i, s := range scores {
		out[i] = ranking.RawScore{Provider: s.Provider, Criterion: s.Criterion, Score: s.Score}
	}
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > ranking.MaxScore {
		return ranking.MaxScore
	}
	return v
}
