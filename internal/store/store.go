package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/evalhq/rubric/internal/weights"
)

// ProviderScore is one persisted raw score. Criterion holds the criterion's
// machine name rather than its UUID: configurations are replaced wholesale
// on save and regenerate IDs, while machine names survive, so historical
// scores stay attached across configuration edits.
type ProviderScore struct {
	ID        uuid.UUID `json:"id"`
	ProjectID string    `json:"project_id"`
	Provider  string    `json:"provider"`
	Criterion string    `json:"criterion"`
	Score     float64   `json:"score"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Report is a versioned ranking snapshot. Versions count up per project,
// starting at 1.
type Report struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID string          `json:"project_id"`
	Version   int             `json:"version"`
	Title     string          `json:"title"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
}

type Store interface {
	// LoadConfiguration returns the project's rubric, empty when none has
	// been saved yet.
	LoadConfiguration(ctx context.Context, projectID string) ([]weights.Category, error)
	// ReplaceConfiguration swaps the project's rubric in one transaction and
	// returns the persisted tree with store-assigned IDs.
	ReplaceConfiguration(ctx context.Context, projectID string, categories []weights.Category) ([]weights.Category, error)
	DeleteConfiguration(ctx context.Context, projectID string) error

	ListRawScores(ctx context.Context, projectID string) ([]*ProviderScore, error)
	UpsertRawScore(ctx context.Context, score *ProviderScore) error
	ListProjects(ctx context.Context) ([]string, error)

	// SaveReport assigns the next version for the project and fills in the
	// generated fields.
	SaveReport(ctx context.Context, report *Report) error
	ListReports(ctx context.Context, projectID string) ([]*Report, error)

	Close() error
}
