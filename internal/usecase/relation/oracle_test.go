package relation_test

import (
	"context"
	"errors"
	"testing"

	"devflow/internal/domain/entity"
	"devflow/internal/repository"
	"devflow/internal/usecase/relation"
)

type stubLikes struct {
	liked map[int64]bool
	err   error
}

func (s *stubLikes) Create(context.Context, *entity.Like) (bool, error) { return false, nil }
func (s *stubLikes) Delete(context.Context, int64, int64, entity.LikeTarget) (bool, error) {
	return false, nil
}
func (s *stubLikes) LikedSet(_ context.Context, _ int64, ids []int64, _ entity.LikeTarget) (map[int64]bool, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[int64]bool{}
	for _, id := range ids {
		if s.liked[id] {
			out[id] = true
		}
	}
	return out, nil
}

type stubFollows struct {
	following map[int64]bool
	gotIDs    []int64
}

func (s *stubFollows) Follow(context.Context, int64, int64) (bool, error)   { return false, nil }
func (s *stubFollows) Unfollow(context.Context, int64, int64) (bool, error) { return false, nil }
func (s *stubFollows) FollowingSet(_ context.Context, _ int64, ids []int64) (map[int64]bool, error) {
	s.gotIDs = ids
	out := map[int64]bool{}
	for _, id := range ids {
		if s.following[id] {
			out[id] = true
		}
	}
	return out, nil
}

type stubSaves struct {
	saved map[int64]bool
}

func (s *stubSaves) Save(context.Context, *entity.SavedArticle) (bool, error) { return false, nil }
func (s *stubSaves) Unsave(context.Context, int64, int64) (bool, error)       { return false, nil }
func (s *stubSaves) ListPage(context.Context, int64, string, string, *int64, int) ([]*entity.SavedArticle, error) {
	return nil, nil
}
func (s *stubSaves) SavedSet(_ context.Context, _ int64, ids []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range ids {
		if s.saved[id] {
			out[id] = true
		}
	}
	return out, nil
}

func page(ids ...[2]int64) []repository.ArticleWithAuthor {
	var out []repository.ArticleWithAuthor
	for _, pair := range ids {
		out = append(out, repository.ArticleWithAuthor{
			Article: &entity.Article{ID: pair[0], AuthorID: pair[1]},
		})
	}
	return out
}

func TestOracle_ForArticles(t *testing.T) {
	follows := &stubFollows{following: map[int64]bool{2: true}}
	oracle := &relation.Oracle{
		Likes:   &stubLikes{liked: map[int64]bool{10: true}},
		Follows: follows,
		Saves:   &stubSaves{saved: map[int64]bool{11: true}},
	}

	viewer := int64(7)
	// Articles 10 and 11 share author 2; article 12 is by author 3.
	rel, err := oracle.ForArticles(context.Background(), &viewer,
		page([2]int64{10, 2}, [2]int64{11, 2}, [2]int64{12, 3}))
	if err != nil {
		t.Fatalf("ForArticles err=%v", err)
	}
	if !rel.Liked[10] || rel.Liked[11] {
		t.Fatalf("liked set wrong: %v", rel.Liked)
	}
	if !rel.Saved[11] || rel.Saved[10] {
		t.Fatalf("saved set wrong: %v", rel.Saved)
	}
	if !rel.FollowingAuthor[2] || rel.FollowingAuthor[3] {
		t.Fatalf("following set wrong: %v", rel.FollowingAuthor)
	}
	// Duplicate authors collapse into one lookup ID.
	if len(follows.gotIDs) != 2 {
		t.Fatalf("author IDs not deduplicated: %v", follows.gotIDs)
	}
}

func TestOracle_ForArticles_Anonymous(t *testing.T) {
	oracle := &relation.Oracle{
		Likes:   &stubLikes{err: errors.New("must not be called")},
		Follows: &stubFollows{},
		Saves:   &stubSaves{},
	}

	rel, err := oracle.ForArticles(context.Background(), nil, page([2]int64{10, 2}))
	if err != nil {
		t.Fatalf("ForArticles err=%v", err)
	}
	if rel.Liked != nil || rel.Saved != nil || rel.FollowingAuthor != nil {
		t.Fatalf("anonymous viewer must have nil relation sets: %+v", rel)
	}
}

func TestOracle_ForArticles_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	oracle := &relation.Oracle{
		Likes:   &stubLikes{err: wantErr},
		Follows: &stubFollows{},
		Saves:   &stubSaves{},
	}

	viewer := int64(7)
	if _, err := oracle.ForArticles(context.Background(), &viewer, page([2]int64{10, 2})); !errors.Is(err, wantErr) {
		t.Fatalf("want wrapped stub error, got %v", err)
	}
}

func TestOracle_ForComments(t *testing.T) {
	oracle := &relation.Oracle{
		Likes:   &stubLikes{liked: map[int64]bool{31: true}},
		Follows: &stubFollows{following: map[int64]bool{3: true}},
		Saves:   &stubSaves{},
	}

	viewer := int64(7)
	comments := []repository.CommentWithAuthor{
		{Comment: &entity.Comment{ID: 31, AuthorID: 3}},
		{Comment: &entity.Comment{ID: 32, AuthorID: 4}},
	}
	rel, err := oracle.ForComments(context.Background(), &viewer, comments)
	if err != nil {
		t.Fatalf("ForComments err=%v", err)
	}
	if !rel.Liked[31] || rel.Liked[32] {
		t.Fatalf("liked set wrong: %v", rel.Liked)
	}
	if !rel.FollowingAuthor[3] || rel.FollowingAuthor[4] {
		t.Fatalf("following set wrong: %v", rel.FollowingAuthor)
	}
}
