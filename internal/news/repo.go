package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/semearlages/semearapi/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=news_test

type Repository interface {
	List(ctx context.Context, skip, limit int) ([]News, error)
	Get(ctx context.Context, id int) (*News, error)
	Add(ctx context.Context, n News) (*News, error)
	Update(ctx context.Context, n News) (*News, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

var _ Repository = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns news ordered by date, newest first.
func (r *Repo) List(ctx context.Context, skip, limit int) (_ []News, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.list")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int("skip", skip), attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, excerpt, content, date FROM news ORDER BY date DESC, id DESC OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}
	defer rows.Close()

	items := []News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news: %w", err)
	}

	return items, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*News, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.get")
	defer span.End()
	span.SetAttributes(attribute.Int("id", id))

	n, err := scanNews(r.db.QueryRow(
		ctx,
		`SELECT id, title, excerpt, content, date FROM news WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNewsNotFound
	}
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	return &n, nil
}

func (r *Repo) Add(ctx context.Context, n News) (_ *News, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.add")
	defer func() { tracing.EndSpan(span, err) }()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO news (title, excerpt, content, date) VALUES ($1, $2, $3, $4) RETURNING id`,
		n.Title, n.Excerpt, n.Content, n.Date.Time,
	).Scan(&n.ID)
	if err != nil {
		return nil, fmt.Errorf("insert news: %w", err)
	}

	span.SetAttributes(attribute.Int("id", n.ID))
	return &n, nil
}

func (r *Repo) Update(ctx context.Context, n News) (*News, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.update")
	defer span.End()
	span.SetAttributes(attribute.Int("id", n.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE news SET title = $1, excerpt = $2, content = $3, date = $4, updated_at = NOW() WHERE id = $5`,
		n.Title, n.Excerpt, n.Content, n.Date.Time, n.ID,
	)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("update news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Tracef("news %d not updated", n.ID)
		return nil, ErrNewsNotFound
	}

	return &n, nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "newsRepo.delete")
	defer span.End()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNewsNotFound
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM news`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return count, nil
}

func scanNews(row pgx.Row) (News, error) {
	var (
		n    News
		date time.Time
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Excerpt, &n.Content, &date); err != nil {
		return News{}, err
	}
	n.Date = DateOf(date)
	return n, nil
}
