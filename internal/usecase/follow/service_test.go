package follow_test

import (
	"context"
	"errors"
	"testing"

	"devflow/internal/domain/entity"
	followUC "devflow/internal/usecase/follow"
)

type stubFollows struct {
	edges map[[2]int64]bool // {userID, followerID}
}

func newStubFollows() *stubFollows { return &stubFollows{edges: map[[2]int64]bool{}} }

func (s *stubFollows) Follow(_ context.Context, userID, followerID int64) (bool, error) {
	key := [2]int64{userID, followerID}
	if s.edges[key] {
		return false, nil
	}
	s.edges[key] = true
	return true, nil
}

func (s *stubFollows) Unfollow(_ context.Context, userID, followerID int64) (bool, error) {
	key := [2]int64{userID, followerID}
	if !s.edges[key] {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *stubFollows) FollowingSet(context.Context, int64, []int64) (map[int64]bool, error) {
	return nil, nil
}

type stubTags struct {
	tags    map[string]*entity.Tag
	follows map[string]map[int64]bool
}

func newStubTags(names ...string) *stubTags {
	s := &stubTags{tags: map[string]*entity.Tag{}, follows: map[string]map[int64]bool{}}
	for _, n := range names {
		s.tags[n] = &entity.Tag{Name: n}
		s.follows[n] = map[int64]bool{}
	}
	return s
}

func (s *stubTags) ListPage(context.Context, *string, int) ([]*entity.Tag, error) { return nil, nil }
func (s *stubTags) Get(_ context.Context, name string) (*entity.Tag, error) {
	return s.tags[name], nil
}
func (s *stubTags) Follow(_ context.Context, name string, userID int64) (bool, error) {
	if s.follows[name][userID] {
		return false, nil
	}
	s.follows[name][userID] = true
	return true, nil
}
func (s *stubTags) Unfollow(_ context.Context, name string, userID int64) (bool, error) {
	if !s.follows[name][userID] {
		return false, nil
	}
	delete(s.follows[name], userID)
	return true, nil
}
func (s *stubTags) FollowingSet(context.Context, int64, []string) (map[string]bool, error) {
	return nil, nil
}

type stubUsers struct{ exists map[int64]bool }

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s *stubUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	if s.exists[id] {
		return &entity.User{ID: id}, nil
	}
	return nil, nil
}
func (s *stubUsers) GetByUsername(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) GetByEmail(context.Context, string) (*entity.User, error)    { return nil, nil }

func newService() *followUC.Service {
	return &followUC.Service{
		Follows: newStubFollows(),
		Tags:    newStubTags("#go"),
		Users:   &stubUsers{exists: map[int64]bool{2: true}},
	}
}

func TestService_FollowUser(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.FollowUser(ctx, 2, 7)
	if err != nil || !created {
		t.Fatalf("first follow: created=%v err=%v", created, err)
	}
	created, err = svc.FollowUser(ctx, 2, 7)
	if err != nil {
		t.Fatalf("duplicate follow err=%v", err)
	}
	if created {
		t.Fatal("duplicate follow must not create")
	}
}

func TestService_FollowUser_Self(t *testing.T) {
	svc := newService()

	if _, err := svc.FollowUser(context.Background(), 7, 7); !errors.Is(err, followUC.ErrSelfFollow) {
		t.Fatalf("want ErrSelfFollow, got %v", err)
	}
}

func TestService_FollowUser_Missing(t *testing.T) {
	svc := newService()

	if _, err := svc.FollowUser(context.Background(), 404, 7); !errors.Is(err, followUC.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestService_FollowTag_Normalizes(t *testing.T) {
	svc := newService()

	// "GO" and "#go" are the same tag.
	created, err := svc.FollowTag(context.Background(), "GO", 7)
	if err != nil || !created {
		t.Fatalf("follow tag: created=%v err=%v", created, err)
	}
	created, err = svc.FollowTag(context.Background(), "#go", 7)
	if err != nil || created {
		t.Fatalf("duplicate normalized follow: created=%v err=%v", created, err)
	}
}

func TestService_FollowTag_Missing(t *testing.T) {
	svc := newService()

	if _, err := svc.FollowTag(context.Background(), "#never", 7); !errors.Is(err, followUC.ErrTagNotFound) {
		t.Fatalf("want ErrTagNotFound, got %v", err)
	}
}

func TestService_UnfollowUser_Absent(t *testing.T) {
	svc := newService()

	removed, err := svc.UnfollowUser(context.Background(), 2, 7)
	if err != nil {
		t.Fatalf("Unfollow err=%v", err)
	}
	if removed {
		t.Fatal("unfollow of absent edge must report removed=false")
	}
}
