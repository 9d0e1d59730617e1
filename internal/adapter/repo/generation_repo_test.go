package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"copyhub/internal/domain"
	"copyhub/internal/sqlinline"
)

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestGenerationCreateAssignsID(t *testing.T) {
	exec := &stubExecutor{row: []any{fixedTime}}
	r := NewGenerationRepository(exec)
	gen := &domain.Generation{Module: domain.ModuleYaDirect, OutputText: "Курсы\nТекст", Country: "RU"}
	if err := r.Create(context.Background(), gen); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := uuid.Parse(gen.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", gen.ID)
	}
	if !gen.CreatedAt.Equal(fixedTime) {
		t.Fatalf("CreatedAt = %v", gen.CreatedAt)
	}
	if len(exec.calls) != 1 || exec.calls[0].query != sqlinline.QInsertGeneration {
		t.Fatalf("unexpected calls %+v", exec.calls)
	}
	args := exec.calls[0].args
	if args[1] != "yadirect" || string(args[2].([]byte)) != "{}" || args[4] != "RU" {
		t.Fatalf("unexpected args %#v", args)
	}
}

func TestGenerationCreateRejectsUnknownModule(t *testing.T) {
	r := NewGenerationRepository(&stubExecutor{})
	err := r.Create(context.Background(), &domain.Generation{Module: "video"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerationListAppliesFilterAndLimit(t *testing.T) {
	id := uuid.NewString()
	exec := &stubExecutor{rows: [][]any{
		{id, "loyalty", []byte(`{"scenario":"birthday"}`), "С днём рождения!", true, "", fixedTime},
	}}
	r := NewGenerationRepository(exec)
	got, err := r.List(context.Background(), domain.GenerationFilter{
		Module:        domain.ModuleLoyalty,
		Search:        " 50%_off ",
		FavoritesOnly: true,
		Limit:         1000,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []domain.Generation{{
		ID:         id,
		Module:     domain.ModuleLoyalty,
		InputJSON:  []byte(`{"scenario":"birthday"}`),
		OutputText: "С днём рождения!",
		IsFavorite: true,
		CreatedAt:  fixedTime,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
	wantArgs := []any{"loyalty", `50\%\_off`, true, MaxHistoryLimit}
	if diff := cmp.Diff(wantArgs, exec.calls[0].args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerationListDefaults(t *testing.T) {
	exec := &stubExecutor{}
	got, err := NewGenerationRepository(exec).List(context.Background(), domain.GenerationFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if exec.calls[0].args[3] != DefaultHistoryLimit {
		t.Fatalf("expected default limit, got %v", exec.calls[0].args[3])
	}
}

func TestGenerationToggleFavorite(t *testing.T) {
	id := uuid.NewString()
	exec := &stubExecutor{row: []any{id, "yadirect", []byte(`{}`), "t", true, "KZ", fixedTime}}
	gen, err := NewGenerationRepository(exec).ToggleFavorite(context.Background(), id)
	if err != nil {
		t.Fatalf("ToggleFavorite error: %v", err)
	}
	if !gen.IsFavorite || gen.Country != "KZ" {
		t.Fatalf("unexpected generation %+v", gen)
	}
}

func TestGenerationToggleFavoriteNotFound(t *testing.T) {
	r := NewGenerationRepository(&stubExecutor{})
	if _, err := r.ToggleFavorite(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := r.ToggleFavorite(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestGenerationDelete(t *testing.T) {
	exec := &stubExecutor{tag: pgconn.NewCommandTag("DELETE 1")}
	if err := NewGenerationRepository(exec).Delete(context.Background(), uuid.NewString()); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	exec = &stubExecutor{tag: pgconn.NewCommandTag("DELETE 0")}
	if err := NewGenerationRepository(exec).Delete(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`a\b%c_d`); got != `a\\b\%c\_d` {
		t.Fatalf("escapeLike = %q", got)
	}
}
