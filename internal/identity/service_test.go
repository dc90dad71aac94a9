package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Session{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestEnsureUser_CreatesOnceThenReuses(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	ctx := context.Background()

	p := Profile{GoogleID: "sub-123", DisplayName: "Ada", Email: "ada@example.com", Picture: "https://img/x.png"}

	first, err := svc.EnsureUser(ctx, p)
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected user id to be assigned")
	}

	second, err := svc.EnsureUser(ctx, p)
	if err != nil {
		t.Fatalf("ensure user again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same user on repeat sign-in, got %d and %d", first.ID, second.ID)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	ctx := context.Background()

	u, err := svc.EnsureUser(ctx, Profile{GoogleID: "sub-9", DisplayName: "Lin", Email: "lin@example.com"})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	sess, err := svc.CreateSession(ctx, u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.ID) != 26 {
		t.Fatalf("expected ULID session id, got %q", sess.ID)
	}

	got, err := svc.SessionUser(ctx, sess.ID)
	if err != nil {
		t.Fatalf("session user: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user resolved: %d", got.ID)
	}

	if err := svc.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := svc.SessionUser(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
}

func TestSessionUser_Expired(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.EnsureUser(ctx, Profile{GoogleID: "sub-x"})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	sess := &Session{ID: "01EXPIREDSESSIONID0000000X", UserID: u.ID, ExpiresAt: time.Now().Add(-time.Minute)}
	if err := repo.CreateSession(ctx, sess); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := svc.SessionUser(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired session, got %v", err)
	}
}

func TestSessionUser_Unknown(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	if _, err := svc.SessionUser(context.Background(), "01UNKNOWN0000000000000000X"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
