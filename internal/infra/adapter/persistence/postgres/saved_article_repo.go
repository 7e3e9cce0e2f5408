package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"devflow/internal/domain/entity"
	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

type SavedArticleRepo struct {
	db db.Handle
}

func NewSavedArticleRepo(handle db.Handle) repository.SavedArticleRepository {
	return &SavedArticleRepo{db: handle}
}

func (repo *SavedArticleRepo) Save(ctx context.Context, saved *entity.SavedArticle) (bool, error) {
	const insert = `
INSERT INTO saved_articles (user_id, article_id, article_title, tags, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, article_id) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, insert,
		saved.UserID, saved.ArticleID, saved.ArticleTitle, pq.Array(saved.Tags), saved.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("Save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Save: %w", err)
	}
	return n > 0, nil
}

func (repo *SavedArticleRepo) Unsave(ctx context.Context, userID, articleID int64) (bool, error) {
	const remove = `DELETE FROM saved_articles WHERE user_id = $1 AND article_id = $2`
	res, err := repo.db.ExecContext(ctx, remove, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("Unsave: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Unsave: %w", err)
	}
	return n > 0, nil
}

func (repo *SavedArticleRepo) ListPage(ctx context.Context, userID int64, search, tag string, afterID *int64, fetch int) ([]*entity.SavedArticle, error) {
	query := `
SELECT id, user_id, article_id, article_title, tags, created_at
FROM saved_articles
WHERE user_id = $1`
	args := []any{userID}
	if search != "" {
		args = append(args, "%"+escapeLikePattern(search)+"%")
		query += fmt.Sprintf(" AND article_title ILIKE $%d", len(args))
	}
	if tag != "" {
		args = append(args, tag)
		query += fmt.Sprintf(" AND $%d = ANY(tags)", len(args))
	}
	if afterID != nil {
		args = append(args, *afterID)
		query += fmt.Sprintf(" AND id < $%d", len(args))
	}
	args = append(args, fetch)
	query += fmt.Sprintf("\nORDER BY id DESC\nLIMIT $%d", len(args))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*entity.SavedArticle, 0, fetch)
	for rows.Next() {
		var saved entity.SavedArticle
		var tags pq.StringArray
		err := rows.Scan(&saved.ID, &saved.UserID, &saved.ArticleID,
			&saved.ArticleTitle, &tags, &saved.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ListPage: Scan: %w", err)
		}
		saved.Tags = tags
		result = append(result, &saved)
	}
	return result, rows.Err()
}

// escapeLikePattern neutralizes LIKE metacharacters so a search for a
// literal % or _ matches only itself.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (repo *SavedArticleRepo) SavedSet(ctx context.Context, userID int64, articleIDs []int64) (map[int64]bool, error) {
	if len(articleIDs) == 0 {
		return map[int64]bool{}, nil
	}
	const query = `SELECT article_id FROM saved_articles WHERE user_id = $1 AND article_id = ANY($2)`
	rows, err := repo.db.QueryContext(ctx, query, userID, pq.Array(articleIDs))
	if err != nil {
		return nil, fmt.Errorf("SavedSet: %w", err)
	}
	defer func() { _ = rows.Close() }()

	saved := make(map[int64]bool, len(articleIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("SavedSet: Scan: %w", err)
		}
		saved[id] = true
	}
	return saved, rows.Err()
}
