package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"copyhub/internal/domain"
	"copyhub/internal/infra"
	"copyhub/internal/sqlinline"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// GenerationRepositoryPG implements domain.GenerationRepository using PostgreSQL.
type GenerationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewGenerationRepository constructs the repository.
func NewGenerationRepository(sql infra.SQLExecutor) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{sql: sql}
}

// Create inserts gen, assigning an ID when empty and filling CreatedAt from the database.
func (r *GenerationRepositoryPG) Create(ctx context.Context, gen *domain.Generation) error {
	if gen == nil {
		return fmt.Errorf("%w: generation is nil", domain.ErrInvalidInput)
	}
	if !gen.Module.Valid() {
		return fmt.Errorf("%w: unknown module %q", domain.ErrInvalidInput, gen.Module)
	}
	if gen.ID == "" {
		gen.ID = uuid.NewString()
	}
	input := gen.InputJSON
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	var createdAt time.Time
	err := r.sql.QueryRow(ctx, sqlinline.QInsertGeneration,
		gen.ID,
		string(gen.Module),
		[]byte(input),
		gen.OutputText,
		gen.Country,
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	gen.CreatedAt = createdAt
	gen.IsFavorite = false
	return nil
}

// List returns history entries newest first.
func (r *GenerationRepositoryPG) List(ctx context.Context, filter domain.GenerationFilter) ([]domain.Generation, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListGenerations,
		string(filter.Module),
		escapeLike(strings.TrimSpace(filter.Search)),
		filter.FavoritesOnly,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Generation, 0)
	for rows.Next() {
		gen, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		items = append(items, gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return items, nil
}

// ToggleFavorite flips the favourite flag and returns the updated entry.
func (r *GenerationRepositoryPG) ToggleFavorite(ctx context.Context, id string) (*domain.Generation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	gen, err := scanGeneration(r.sql.QueryRow(ctx, sqlinline.QToggleGenerationFavorite, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	return &gen, nil
}

// Delete removes one entry.
func (r *GenerationRepositoryPG) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteGeneration, id)
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGeneration(row pgx.Row) (domain.Generation, error) {
	var (
		gen    domain.Generation
		module string
		input  []byte
	)
	if err := row.Scan(&gen.ID, &module, &input, &gen.OutputText, &gen.IsFavorite, &gen.Country, &gen.CreatedAt); err != nil {
		return domain.Generation{}, err
	}
	gen.Module = domain.Module(module)
	gen.InputJSON = json.RawMessage(input)
	return gen, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ domain.GenerationRepository = (*GenerationRepositoryPG)(nil)
