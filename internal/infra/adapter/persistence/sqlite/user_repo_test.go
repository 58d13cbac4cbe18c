package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/infra/adapter/persistence/sqlite"
)

func TestUserRepo_CreateAndFind(t *testing.T) {
	conn := openDB(t)
	repo := sqlite.NewUserRepo(conn)
	ctx := context.Background()

	admin := seedAuthor(t, conn)
	if admin.ID != 1 {
		t.Fatalf("ID = %d, want 1", admin.ID)
	}

	plain := &entity.User{Username: "user", PasswordHash: "$2a$hash", CreatedAt: epoch}
	if err := repo.Create(ctx, plain); err != nil {
		t.Fatalf("Create err=%v", err)
	}

	got, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByUsername err=%v", err)
	}
	if diff := cmp.Diff(admin, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	byID, err := repo.Get(ctx, plain.ID)
	if err != nil || byID == nil {
		t.Fatalf("Get got=%v err=%v", byID, err)
	}
	if len(byID.Roles) != 0 || !byID.HasRole(entity.RoleUser) || byID.HasRole(entity.RoleAdmin) {
		t.Fatalf("roles = %v", byID.Roles)
	}

	if none, err := repo.FindByUsername(ctx, "ghost"); err != nil || none != nil {
		t.Fatalf("FindByUsername(ghost) got=%v err=%v", none, err)
	}
	if none, err := repo.Get(ctx, 99); err != nil || none != nil {
		t.Fatalf("Get(99) got=%v err=%v", none, err)
	}

	count, err := repo.Count(ctx)
	if err != nil || count != 2 {
		t.Fatalf("Count got=%d err=%v", count, err)
	}
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	conn := openDB(t)
	seedAuthor(t, conn)

	err := sqlite.NewUserRepo(conn).Create(context.Background(), &entity.User{
		Username: "admin", PasswordHash: "other", CreatedAt: epoch,
	})
	if !errors.Is(err, entity.ErrDuplicateUsername) {
		t.Fatalf("err=%v, want ErrDuplicateUsername", err)
	}
}
