// Package postgres implements the repository interfaces on PostgreSQL via the
// pgx stdlib driver. Multi-step mutations (counter maintenance, cascade
// deletes) run inside a single transaction so derived aggregates can never
// drift from their source relations on a partial failure.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"devflow/internal/common/pagination"
	"devflow/internal/domain/entity"
	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

// articleColumns is the projection shared by every article query, including
// the tag and image arrays and the author join.
const articleColumns = `
a.id, a.author_id, a.title, a.slug, a.summary, a.body,
a.like_count, a.comment_count, a.created_at, a.updated_at,
COALESCE((SELECT array_agg(at.tag_name ORDER BY at.tag_name) FROM article_tags at WHERE at.article_id = a.id), '{}') AS tags,
COALESCE((SELECT array_agg(ai.image_path ORDER BY ai.position) FROM article_images ai WHERE ai.article_id = a.id), '{}') AS images,
u.username, u.profile_pic_path`

type ArticleRepo struct {
	db           db.Handle
	queryBuilder *FeedQueryBuilder
}

func NewArticleRepo(handle db.Handle) repository.ArticleRepository {
	return &ArticleRepo{
		db:           handle,
		queryBuilder: NewFeedQueryBuilder(),
	}
}

func scanArticleWithAuthor(rows interface{ Scan(...any) error }) (repository.ArticleWithAuthor, error) {
	var article entity.Article
	var tags, images pq.StringArray
	var username, profilePic string
	err := rows.Scan(
		&article.ID, &article.AuthorID, &article.Title, &article.Slug,
		&article.Summary, &article.Body, &article.LikeCount, &article.CommentCount,
		&article.CreatedAt, &article.UpdatedAt, &tags, &images,
		&username, &profilePic,
	)
	if err != nil {
		return repository.ArticleWithAuthor{}, err
	}
	article.Tags = tags
	article.Images = images
	return repository.ArticleWithAuthor{
		Article:          &article,
		AuthorUsername:   username,
		AuthorProfilePic: profilePic,
	}, nil
}

func (repo *ArticleRepo) ListFeed(ctx context.Context, filter repository.FeedFilter, after *pagination.Keyset, fetch int) ([]repository.ArticleWithAuthor, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filter, after)
	query := fmt.Sprintf(`
SELECT %s
FROM articles a
INNER JOIN users u ON a.author_id = u.id
%s
ORDER BY a.id DESC
LIMIT $%d`, articleColumns, whereClause, len(args)+1)
	args = append(args, fetch)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListFeed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithAuthor, 0, fetch)
	for rows.Next() {
		item, err := scanArticleWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListFeed: Scan: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (repo *ArticleRepo) ListTop(ctx context.Context, windowStart time.Time, after *pagination.Keyset, fetch int) ([]repository.ArticleWithAuthor, error) {
	whereClause, args := repo.queryBuilder.BuildTopWhereClause(windowStart, after)
	query := fmt.Sprintf(`
SELECT %s
FROM articles a
INNER JOIN users u ON a.author_id = u.id
%s
ORDER BY a.like_count DESC, a.id DESC
LIMIT $%d`, articleColumns, whereClause, len(args)+1)
	args = append(args, fetch)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListTop: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithAuthor, 0, fetch)
	for rows.Next() {
		item, err := scanArticleWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListTop: Scan: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT a.id, a.author_id, a.title, a.slug, a.summary, a.body,
       a.like_count, a.comment_count, a.created_at, a.updated_at,
       COALESCE((SELECT array_agg(at.tag_name ORDER BY at.tag_name) FROM article_tags at WHERE at.article_id = a.id), '{}') AS tags,
       COALESCE((SELECT array_agg(ai.image_path ORDER BY ai.position) FROM article_images ai WHERE ai.article_id = a.id), '{}') AS images
FROM articles a
WHERE a.id = $1
LIMIT 1`
	var article entity.Article
	var tags, images pq.StringArray
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.AuthorID, &article.Title, &article.Slug,
		&article.Summary, &article.Body, &article.LikeCount, &article.CommentCount,
		&article.CreatedAt, &article.UpdatedAt, &tags, &images,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	article.Tags = tags
	article.Images = images
	return &article, nil
}

func (repo *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*repository.ArticleWithAuthor, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM articles a
INNER JOIN users u ON a.author_id = u.id
WHERE a.slug = $1
LIMIT 1`, articleColumns)

	item, err := scanArticleWithAuthor(repo.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return &item, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertArticle = `
INSERT INTO articles (author_id, title, slug, summary, body, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING id`
	err = tx.QueryRowContext(ctx, insertArticle,
		article.AuthorID, article.Title, article.Slug,
		article.Summary, article.Body, article.CreatedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: insert article: %w", err)
	}

	if err := addTagReferences(ctx, tx, article.ID, article.Tags); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	if err := insertArticleImages(ctx, tx, article.ID, article.Images); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	const bumpAuthor = `UPDATE users SET total_articles = total_articles + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, bumpAuthor, article.AuthorID); err != nil {
		return fmt.Errorf("Create: author counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create: commit: %w", err)
	}
	return nil
}

// addTagReferences upserts the tag rows (creating them on first use) and
// links them to the article, incrementing each tag's article_count.
func addTagReferences(ctx context.Context, tx *sql.Tx, articleID int64, tags []string) error {
	const upsertTag = `
INSERT INTO tags (tag_name, article_count)
VALUES ($1, 1)
ON CONFLICT (tag_name) DO UPDATE SET article_count = tags.article_count + 1`
	const linkTag = `INSERT INTO article_tags (article_id, tag_name) VALUES ($1, $2)`
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, upsertTag, tag); err != nil {
			return fmt.Errorf("upsert tag %q: %w", tag, err)
		}
		if _, err := tx.ExecContext(ctx, linkTag, articleID, tag); err != nil {
			return fmt.Errorf("link tag %q: %w", tag, err)
		}
	}
	return nil
}

// removeTagReferences unlinks the tags from the article, decrements each
// tag's article_count, and reclaims tag rows once both counters hit zero.
func removeTagReferences(ctx context.Context, tx *sql.Tx, articleID int64, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	const unlink = `DELETE FROM article_tags WHERE article_id = $1 AND tag_name = ANY($2)`
	if _, err := tx.ExecContext(ctx, unlink, articleID, pq.Array(tags)); err != nil {
		return fmt.Errorf("unlink tags: %w", err)
	}
	const decrement = `UPDATE tags SET article_count = article_count - 1 WHERE tag_name = ANY($1)`
	if _, err := tx.ExecContext(ctx, decrement, pq.Array(tags)); err != nil {
		return fmt.Errorf("decrement tags: %w", err)
	}
	const reclaim = `DELETE FROM tags WHERE tag_name = ANY($1) AND article_count <= 0 AND follower_count <= 0`
	if _, err := tx.ExecContext(ctx, reclaim, pq.Array(tags)); err != nil {
		return fmt.Errorf("reclaim tags: %w", err)
	}
	return nil
}

func insertArticleImages(ctx context.Context, tx *sql.Tx, articleID int64, images []string) error {
	const insertImage = `INSERT INTO article_images (article_id, image_path, position) VALUES ($1, $2, $3)`
	for i, path := range images {
		if _, err := tx.ExecContext(ctx, insertImage, articleID, path, i); err != nil {
			return fmt.Errorf("insert image: %w", err)
		}
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article, addedTags, removedTags []string) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const updateArticle = `
UPDATE articles SET
       title      = $1,
       summary    = $2,
       body       = $3,
       updated_at = $4
WHERE id = $5`
	res, err := tx.ExecContext(ctx, updateArticle,
		article.Title, article.Summary, article.Body, article.UpdatedAt, article.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}

	if err := removeTagReferences(ctx, tx, article.ID, removedTags); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if err := addTagReferences(ctx, tx, article.ID, addedTags); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	// Image rows are replaced wholesale; position encodes display order.
	if _, err := tx.ExecContext(ctx, `DELETE FROM article_images WHERE article_id = $1`, article.ID); err != nil {
		return fmt.Errorf("Update: clear images: %w", err)
	}
	if err := insertArticleImages(ctx, tx, article.ID, article.Images); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Update: commit: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) CollectImagePaths(ctx context.Context, id int64) ([]string, error) {
	const query = `
SELECT image_path FROM article_images WHERE article_id = $1
UNION ALL
SELECT ci.image_path
FROM comment_images ci
INNER JOIN comments c ON ci.comment_id = c.id
WHERE c.article_id = $1`
	rows, err := repo.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("CollectImagePaths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("CollectImagePaths: Scan: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (repo *ArticleRepo) DeleteCascade(ctx context.Context, id int64) (*repository.ArticleCascade, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var authorID int64
	err = tx.QueryRowContext(ctx, `SELECT author_id FROM articles WHERE id = $1 FOR UPDATE`, id).Scan(&authorID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("DeleteCascade: article %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: %w", err)
	}

	cascade := &repository.ArticleCascade{}

	// Likes on the article's comments go first, then the comments themselves.
	res, err := tx.ExecContext(ctx, `
DELETE FROM likes
WHERE target_type = 'comment'
  AND target_id IN (SELECT id FROM comments WHERE article_id = $1)`, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: comment likes: %w", err)
	}
	n, _ := res.RowsAffected()
	cascade.LikesDeleted += n

	if _, err := tx.ExecContext(ctx, `
DELETE FROM comment_images
WHERE comment_id IN (SELECT id FROM comments WHERE article_id = $1)`, id); err != nil {
		return nil, fmt.Errorf("DeleteCascade: comment images: %w", err)
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE article_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: comments: %w", err)
	}
	cascade.CommentsDeleted, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM likes WHERE target_type = 'article' AND target_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: article likes: %w", err)
	}
	n, _ = res.RowsAffected()
	cascade.LikesDeleted += n

	res, err = tx.ExecContext(ctx, `DELETE FROM saved_articles WHERE article_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: saved articles: %w", err)
	}
	cascade.SavesDeleted, _ = res.RowsAffected()

	tags, err := articleTagNames(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: %w", err)
	}
	if err := removeTagReferences(ctx, tx, id, tags); err != nil {
		return nil, fmt.Errorf("DeleteCascade: %w", err)
	}
	cascade.TagsReclaimed, err = reclaimedTagNames(ctx, tx, tags)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM article_images WHERE article_id = $1`, id); err != nil {
		return nil, fmt.Errorf("DeleteCascade: article images: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET total_articles = total_articles - 1 WHERE id = $1`, authorID); err != nil {
		return nil, fmt.Errorf("DeleteCascade: author counter: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("DeleteCascade: article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("DeleteCascade: commit: %w", err)
	}
	return cascade, nil
}

func articleTagNames(ctx context.Context, tx *sql.Tx, articleID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT tag_name FROM article_tags WHERE article_id = $1`, articleID)
	if err != nil {
		return nil, fmt.Errorf("tag names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("tag names: Scan: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// reclaimedTagNames reports which of the given tags no longer exist, i.e.
// were garbage-collected by removeTagReferences.
func reclaimedTagNames(ctx context.Context, tx *sql.Tx, tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	rows, err := tx.QueryContext(ctx, `SELECT tag_name FROM tags WHERE tag_name = ANY($1)`, pq.Array(tags))
	if err != nil {
		return nil, fmt.Errorf("reclaimed tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	surviving := make(map[string]bool, len(tags))
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("reclaimed tags: Scan: %w", err)
		}
		surviving[t] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var reclaimed []string
	for _, t := range tags {
		if !surviving[t] {
			reclaimed = append(reclaimed, t)
		}
	}
	return reclaimed, nil
}
