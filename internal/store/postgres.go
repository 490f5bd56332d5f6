package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evalhq/rubric/internal/weights"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) LoadConfiguration(ctx context.Context, projectID string) ([]weights.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, display_name, display_name_localized, weight, color, sort_order
		FROM scoring_categories
		WHERE project_id = $1
		ORDER BY sort_order, name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var categories []weights.Category
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var c weights.Category
		var id uuid.UUID
		if err := rows.Scan(&id, &c.Name, &c.DisplayName, &c.DisplayNameLocalized, &c.Weight, &c.Color, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ID = &id
		index[id] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, nil
	}

	critRows, err := s.pool.Query(ctx, `
		SELECT cr.id, cr.category_id, cr.name, cr.display_name, cr.display_name_localized,
			cr.description, cr.weight, cr.keywords, cr.sort_order
		FROM scoring_criteria cr
		JOIN scoring_categories c ON c.id = cr.category_id
		WHERE c.project_id = $1
		ORDER BY cr.sort_order, cr.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("load criteria: %w", err)
	}
	defer critRows.Close()

	for critRows.Next() {
		var cr weights.Criterion
		var id, categoryID uuid.UUID
		if err := critRows.Scan(&id, &categoryID, &cr.Name, &cr.DisplayName, &cr.DisplayNameLocalized,
			&cr.Description, &cr.Weight, &cr.Keywords, &cr.SortOrder); err != nil {
			return nil, fmt.Errorf("scan criterion: %w", err)
		}
		cr.ID = &id
		cr.CategoryID = &categoryID
		i, ok := index[categoryID]
		if !ok {
			continue
		}
		categories[i].Criteria = append(categories[i].Criteria, cr)
	}
	if err := critRows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *PostgresStore) ReplaceConfiguration(ctx context.Context, projectID string, categories []weights.Category) ([]weights.Category, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Criteria cascade with their categories.
	if _, err := tx.Exec(ctx, `DELETE FROM scoring_categories WHERE project_id = $1`, projectID); err != nil {
		return nil, fmt.Errorf("clear configuration: %w", err)
	}

	persisted := weights.Clone(categories)
	for i := range persisted {
		var catID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO scoring_categories
				(project_id, name, display_name, display_name_localized, weight, color, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			projectID, persisted[i].Name, persisted[i].DisplayName, persisted[i].DisplayNameLocalized,
			persisted[i].Weight, persisted[i].Color, persisted[i].SortOrder,
		).Scan(&catID)
		if err != nil {
			return nil, fmt.Errorf("insert category %q: %w", persisted[i].Name, err)
		}
		persisted[i].ID = &catID

		for j := range persisted[i].Criteria {
			cr := &persisted[i].Criteria[j]
			var critID uuid.UUID
			err := tx.QueryRow(ctx, `
				INSERT INTO scoring_criteria
					(category_id, name, display_name, display_name_localized, description, weight, keywords, sort_order)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id`,
				catID, cr.Name, cr.DisplayName, cr.DisplayNameLocalized,
				cr.Description, float64(cr.Weight), cr.Keywords, cr.SortOrder,
			).Scan(&critID)
			if err != nil {
				return nil, fmt.Errorf("insert criterion %q: %w", cr.Name, err)
			}
			cr.ID = &critID
			cr.CategoryID = &catID
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return persisted, nil
}

func (s *PostgresStore) DeleteConfiguration(ctx context.Context, projectID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM scoring_categories WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRawScores(ctx context.Context, projectID string) ([]*ProviderScore, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, project_id, provider, criterion, score, source, created_at, updated_at
		FROM provider_scores
		WHERE project_id = $1
		ORDER BY provider, criterion`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list raw scores: %w", err)
	}
	defer rows.Close()

	var scores []*ProviderScore
	for rows.Next() {
		ps := &ProviderScore{}
		if err := rows.Scan(&ps.ID, &ps.ProjectID, &ps.Provider, &ps.Criterion,
			&ps.Score, &ps.Source, &ps.CreatedAt, &ps.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw score: %w", err)
		}
		scores = append(scores, ps)
	}
	return scores, rows.Err()
}

func (s *PostgresStore) UpsertRawScore(ctx context.Context, score *ProviderScore) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO provider_scores (project_id, provider, criterion, score, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id, provider, criterion)
		DO UPDATE SET score = EXCLUDED.score, source = EXCLUDED.source, updated_at = now()
		RETURNING id, created_at, updated_at`,
		score.ProjectID, score.Provider, score.Criterion, score.Score, score.Source,
	).Scan(&score.ID, &score.CreatedAt, &score.UpdatedAt)
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT project_id FROM scoring_categories
		UNION
		SELECT project_id FROM provider_scores
		ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		projects = append(projects, id)
	}
	return projects, rows.Err()
}

func (s *PostgresStore) SaveReport(ctx context.Context, report *Report) error {
	// The aggregate subquery makes version assignment a single statement, so
	// two concurrent saves cannot read the same max.
	return s.pool.QueryRow(ctx, `
		INSERT INTO ranking_reports (project_id, title, version, snapshot)
		SELECT $1, $2, COALESCE(MAX(version), 0) + 1, $3
		FROM ranking_reports WHERE project_id = $1
		RETURNING id, version, created_at`,
		report.ProjectID, report.Title, report.Snapshot,
	).Scan(&report.ID, &report.Version, &report.CreatedAt)
}

func (s *PostgresStore) ListReports(ctx context.Context, projectID string) ([]*Report, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, project_id, version, title, snapshot, created_at
		FROM ranking_reports
		WHERE project_id = $1
		ORDER BY version DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		r := &Report{}
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.Version, &r.Title, &r.Snapshot, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
