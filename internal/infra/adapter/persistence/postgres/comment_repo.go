package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"devflow/internal/domain/entity"
	"devflow/internal/infra/db"
	"devflow/internal/repository"
)

const commentColumns = `
c.id, c.article_id, c.author_id, c.parent_comment_id, c.body,
c.like_count, c.reply_count, c.created_at, c.updated_at,
COALESCE((SELECT array_agg(ci.image_path ORDER BY ci.position) FROM comment_images ci WHERE ci.comment_id = c.id), '{}') AS images,
u.username, u.profile_pic_path`

type CommentRepo struct {
	db db.Handle
}

func NewCommentRepo(handle db.Handle) repository.CommentRepository {
	return &CommentRepo{db: handle}
}

func scanCommentWithAuthor(rows interface{ Scan(...any) error }) (repository.CommentWithAuthor, error) {
	var comment entity.Comment
	var images pq.StringArray
	var username, profilePic string
	err := rows.Scan(
		&comment.ID, &comment.ArticleID, &comment.AuthorID, &comment.ParentCommentID,
		&comment.Body, &comment.LikeCount, &comment.ReplyCount,
		&comment.CreatedAt, &comment.UpdatedAt, &images,
		&username, &profilePic,
	)
	if err != nil {
		return repository.CommentWithAuthor{}, err
	}
	comment.Images = images
	return repository.CommentWithAuthor{
		Comment:          &comment,
		AuthorUsername:   username,
		AuthorProfilePic: profilePic,
	}, nil
}

func (repo *CommentRepo) ListPage(ctx context.Context, articleID int64, parentCommentID, afterID *int64, fetch int) ([]repository.CommentWithAuthor, error) {
	args := []any{articleID}
	where := "WHERE c.article_id = $1"
	order := "ORDER BY c.id DESC"

	if parentCommentID == nil {
		where += " AND c.parent_comment_id IS NULL"
		if afterID != nil {
			args = append(args, *afterID)
			where += fmt.Sprintf(" AND c.id < $%d", len(args))
		}
	} else {
		// Replies read oldest-first so a thread grows at the bottom.
		args = append(args, *parentCommentID)
		where += fmt.Sprintf(" AND c.parent_comment_id = $%d", len(args))
		order = "ORDER BY c.id ASC"
		if afterID != nil {
			args = append(args, *afterID)
			where += fmt.Sprintf(" AND c.id > $%d", len(args))
		}
	}

	args = append(args, fetch)
	query := fmt.Sprintf(`
SELECT %s
FROM comments c
INNER JOIN users u ON c.author_id = u.id
%s
%s
LIMIT $%d`, commentColumns, where, order, len(args))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.CommentWithAuthor, 0, fetch)
	for rows.Next() {
		item, err := scanCommentWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPage: Scan: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (repo *CommentRepo) Get(ctx context.Context, id int64) (*entity.Comment, error) {
	const query = `
SELECT c.id, c.article_id, c.author_id, c.parent_comment_id, c.body,
       c.like_count, c.reply_count, c.created_at, c.updated_at,
       COALESCE((SELECT array_agg(ci.image_path ORDER BY ci.position) FROM comment_images ci WHERE ci.comment_id = c.id), '{}') AS images
FROM comments c
WHERE c.id = $1
LIMIT 1`
	var comment entity.Comment
	var images pq.StringArray
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.ArticleID, &comment.AuthorID, &comment.ParentCommentID,
		&comment.Body, &comment.LikeCount, &comment.ReplyCount,
		&comment.CreatedAt, &comment.UpdatedAt, &images,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	comment.Images = images
	return &comment, nil
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertComment = `
INSERT INTO comments (article_id, author_id, parent_comment_id, body, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING id`
	err = tx.QueryRowContext(ctx, insertComment,
		comment.ArticleID, comment.AuthorID, comment.ParentCommentID,
		comment.Body, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("Create: insert comment: %w", err)
	}

	const insertImage = `INSERT INTO comment_images (comment_id, image_path, position) VALUES ($1, $2, $3)`
	for i, path := range comment.Images {
		if _, err := tx.ExecContext(ctx, insertImage, comment.ID, path, i); err != nil {
			return fmt.Errorf("Create: insert image: %w", err)
		}
	}

	const bumpArticle = `UPDATE articles SET comment_count = comment_count + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, bumpArticle, comment.ArticleID); err != nil {
		return fmt.Errorf("Create: article counter: %w", err)
	}

	if comment.IsReply() {
		const bumpParent = `UPDATE comments SET reply_count = reply_count + 1 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, bumpParent, *comment.ParentCommentID); err != nil {
			return fmt.Errorf("Create: parent counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Create: commit: %w", err)
	}
	return nil
}

func (repo *CommentRepo) CollectImagePaths(ctx context.Context, id int64) ([]string, error) {
	const query = `
SELECT image_path FROM comment_images WHERE comment_id = $1
UNION ALL
SELECT ci.image_path
FROM comment_images ci
INNER JOIN comments c ON ci.comment_id = c.id
WHERE c.parent_comment_id = $1`
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

func (repo *CommentRepo) DeleteCascade(ctx context.Context, id int64) (*repository.CommentCascade, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var articleID int64
	var parentCommentID *int64
	err = tx.QueryRowContext(ctx,
		`SELECT article_id, parent_comment_id FROM comments WHERE id = $1 FOR UPDATE`, id,
	).Scan(&articleID, &parentCommentID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("DeleteCascade: comment %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: %w", err)
	}

	cascade := &repository.CommentCascade{}

	res, err := tx.ExecContext(ctx, `
DELETE FROM likes
WHERE target_type = 'comment'
  AND (target_id = $1 OR target_id IN (SELECT id FROM comments WHERE parent_comment_id = $1))`, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: likes: %w", err)
	}
	cascade.LikesDeleted, _ = res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `
DELETE FROM comment_images
WHERE comment_id = $1
   OR comment_id IN (SELECT id FROM comments WHERE parent_comment_id = $1)`, id); err != nil {
		return nil, fmt.Errorf("DeleteCascade: images: %w", err)
	}

	res, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE parent_comment_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteCascade: replies: %w", err)
	}
	cascade.RepliesDeleted, _ = res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("DeleteCascade: comment: %w", err)
	}

	const dropCount = `UPDATE articles SET comment_count = comment_count - $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, dropCount, cascade.RepliesDeleted+1, articleID); err != nil {
		return nil, fmt.Errorf("DeleteCascade: article counter: %w", err)
	}

	if parentCommentID != nil {
		const dropReply = `UPDATE comments SET reply_count = reply_count - 1 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, dropReply, *parentCommentID); err != nil {
			return nil, fmt.Errorf("DeleteCascade: parent counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("DeleteCascade: commit: %w", err)
	}
	return cascade, nil
}
