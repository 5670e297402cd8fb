// AngelaMos | 2026
// classtype.go

package classtype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelierlabs/workshop-tracker/internal/core"
)

// ClassType is a lookup row naming a kind of workshop.
type ClassType struct {
	ID   string `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
}

type Repository interface {
	List(ctx context.Context) ([]ClassType, error)
	GetByID(ctx context.Context, id string) (*ClassType, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]ClassType, error) {
	var types []ClassType
	err := r.db.SelectContext(
		ctx,
		&types,
		`SELECT id, name FROM class_types ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list class types: %w", err)
	}

	return types, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*ClassType, error) {
	var ct ClassType
	err := r.db.GetContext(
		ctx,
		&ct,
		`SELECT id, name FROM class_types WHERE id = $1`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get class type: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get class type: %w", err)
	}

	return &ct, nil
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/class-types", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.List)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, types)
}
