package db

import "database/sql"

// MigrateUp creates the schema. Every "at most one" relation invariant is a
// unique constraint here rather than an application-level existence check, so
// concurrent duplicate inserts surface as constraint conflicts instead of
// double rows.
func MigrateUp(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
    id               BIGSERIAL PRIMARY KEY,
    username         TEXT NOT NULL UNIQUE,
    email            TEXT NOT NULL UNIQUE,
    password_hash    TEXT NOT NULL,
    bio              TEXT NOT NULL DEFAULT '',
    profile_pic_path TEXT NOT NULL DEFAULT '',
    total_followers  BIGINT NOT NULL DEFAULT 0,
    total_following  BIGINT NOT NULL DEFAULT 0,
    total_articles   BIGINT NOT NULL DEFAULT 0,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id            BIGSERIAL PRIMARY KEY,
    author_id     BIGINT NOT NULL REFERENCES users(id),
    title         TEXT NOT NULL,
    slug          TEXT NOT NULL UNIQUE,
    summary       TEXT NOT NULL DEFAULT '',
    body          TEXT NOT NULL,
    like_count    BIGINT NOT NULL DEFAULT 0,
    comment_count BIGINT NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS article_tags (
    article_id BIGINT NOT NULL REFERENCES articles(id),
    tag_name   TEXT NOT NULL,
    UNIQUE (article_id, tag_name)
)`,
		`CREATE TABLE IF NOT EXISTS article_images (
    article_id BIGINT NOT NULL REFERENCES articles(id),
    image_path TEXT NOT NULL,
    position   INT NOT NULL DEFAULT 0
)`,
		`CREATE TABLE IF NOT EXISTS comments (
    id                BIGSERIAL PRIMARY KEY,
    article_id        BIGINT NOT NULL REFERENCES articles(id),
    author_id         BIGINT NOT NULL REFERENCES users(id),
    parent_comment_id BIGINT REFERENCES comments(id),
    body              TEXT NOT NULL,
    like_count        BIGINT NOT NULL DEFAULT 0,
    reply_count       BIGINT NOT NULL DEFAULT 0,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS comment_images (
    comment_id BIGINT NOT NULL REFERENCES comments(id),
    image_path TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS likes (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT NOT NULL REFERENCES users(id),
    target_id   BIGINT NOT NULL,
    target_type VARCHAR(20) NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, target_id, target_type)
)`,
		`CREATE TABLE IF NOT EXISTS followers (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT NOT NULL REFERENCES users(id),
    follower_id BIGINT NOT NULL REFERENCES users(id),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, follower_id)
)`,
		`CREATE TABLE IF NOT EXISTS tags (
    tag_name       TEXT PRIMARY KEY,
    follower_count BIGINT NOT NULL DEFAULT 0,
    article_count  BIGINT NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS tag_followers (
    tag_name   TEXT NOT NULL REFERENCES tags(tag_name) ON DELETE CASCADE,
    user_id    BIGINT NOT NULL REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (tag_name, user_id)
)`,
		`CREATE TABLE IF NOT EXISTS saved_articles (
    id            BIGSERIAL PRIMARY KEY,
    user_id       BIGINT NOT NULL REFERENCES users(id),
    article_id    BIGINT NOT NULL,
    article_title TEXT NOT NULL,
    tags          TEXT[] NOT NULL DEFAULT '{}',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, article_id)
)`,
		`CREATE TABLE IF NOT EXISTS temp_images (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL REFERENCES users(id),
    image_path TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	}
	for _, ddl := range tables {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}

	indexes := []string{
		// chronological feed keyset (id DESC) per author and per tag
		`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_article_tags_tag ON article_tags(tag_name, article_id DESC)`,
		// ranked feed keyset: (like_count DESC, id DESC) with created_at window filter
		`CREATE INDEX IF NOT EXISTS idx_articles_top ON articles(like_count DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at)`,
		// comment pages: top-level DESC, reply threads ASC on the same index
		`CREATE INDEX IF NOT EXISTS idx_comments_article ON comments(article_id, parent_comment_id, id)`,
		// relation oracle batch probes
		`CREATE INDEX IF NOT EXISTS idx_likes_user ON likes(user_id, target_type, target_id)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_target ON likes(target_type, target_id)`,
		`CREATE INDEX IF NOT EXISTS idx_followers_follower ON followers(follower_id, user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_articles_user ON saved_articles(user_id, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_temp_images_created ON temp_images(created_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
