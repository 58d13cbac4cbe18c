package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"articles-admin/internal/domain/entity"
	pg "articles-admin/internal/infra/adapter/persistence/postgres"
	"articles-admin/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var articleCols = []string{
	"id", "title", "content", "short_content", "author_id", "created_at", "updated_at",
}

var articleAuthorCols = append(append([]string{}, articleCols...),
	"id", "username", "first_name", "last_name")

func artRow(a *entity.Article) *sqlmock.Rows {
	return sqlmock.NewRows(articleCols).AddRow(
		a.ID, a.Title, a.Content, a.ShortContent, a.AuthorID, a.CreatedAt, a.UpdatedAt,
	)
}

func addArtAuthorRow(rows *sqlmock.Rows, a *entity.Article, u *entity.User) *sqlmock.Rows {
	return rows.AddRow(
		a.ID, a.Title, a.Content, a.ShortContent, a.AuthorID, a.CreatedAt, a.UpdatedAt,
		u.ID, u.Username, u.FirstName, u.LastName,
	)
}

func fixture(id int64, now time.Time) (*entity.Article, *entity.User) {
	return &entity.Article{
			ID: id, Title: "Article", Content: "content", ShortContent: "short",
			AuthorID: 1, CreatedAt: now, UpdatedAt: now,
		}, &entity.User{
			ID: 1, Username: "admin", FirstName: "Ada", LastName: "Lovelace",
		}
}

/* ─────────────────────────── 1. Get ─────────────────────────── */

func TestArticleRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want, _ := fixture(1, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM articles")).
		WithArgs(int64(1)).
		WillReturnRows(artRow(want))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	got, err := pg.NewArticleRepo(db).Get(context.Background(), 99)
	if err != nil || got != nil {
		t.Fatalf("Get got=%v err=%v, want nil,nil", got, err)
	}
}

/* ─────────────────────────── 2. ListPaginated ─────────────────────────── */

func TestArticleRepo_ListPaginated(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	a7, author := fixture(7, now)
	a8, _ := fixture(8, now)

	rows := sqlmock.NewRows(articleAuthorCols)
	addArtAuthorRow(rows, a7, author)
	addArtAuthorRow(rows, a8, author)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(int64(6), int64(6)).
		WillReturnRows(rows)

	got, err := pg.NewArticleRepo(db).ListPaginated(context.Background(), 6, 6)
	if err != nil {
		t.Fatalf("ListPaginated err=%v", err)
	}
	want := []repository.ArticleWithAuthor{
		{Article: a7, Author: author},
		{Article: a8, Author: author},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_ListPaginated_Error(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles").WillReturnError(errors.New("connection lost"))

	if _, err := pg.NewArticleRepo(db).ListPaginated(context.Background(), 0, 6); err == nil {
		t.Fatal("expected error")
	}
}

/* ─────────────────────────── 3. Count ─────────────────────────── */

func TestArticleRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	got, err := pg.NewArticleRepo(db).Count(context.Background())
	if err != nil || got != 12 {
		t.Fatalf("Count got=%d err=%v", got, err)
	}
}

/* ─────────────────────────── 4. GetWithAuthor / FindOneByTitle ─────────────────────────── */

func TestArticleRepo_GetWithAuthor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	a, u := fixture(3, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(addArtAuthorRow(sqlmock.NewRows(articleAuthorCols), a, u))

	got, err := pg.NewArticleRepo(db).GetWithAuthor(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetWithAuthor err=%v", err)
	}
	if diff := cmp.Diff(&repository.ArticleWithAuthor{Article: a, Author: u}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_FindOneByTitle(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	a, _ := fixture(2, now)
	a.Title = "Article modifié"
	mock.ExpectQuery(regexp.QuoteMeta("WHERE title = $1")).
		WithArgs("Article modifié").
		WillReturnRows(artRow(a))

	got, err := pg.NewArticleRepo(db).FindOneByTitle(context.Background(), "Article modifié")
	if err != nil || got == nil || got.ID != 2 {
		t.Fatalf("FindOneByTitle got=%v err=%v", got, err)
	}
}

/* ─────────────────────────── 5. Create ─────────────────────────── */

func TestArticleRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs("title", "content", "short", int64(1), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))

	article := &entity.Article{
		Title: "title", Content: "content", ShortContent: "short",
		AuthorID: 1, CreatedAt: now, UpdatedAt: now,
	}
	if err := pg.NewArticleRepo(db).Create(context.Background(), article); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if article.ID != 13 {
		t.Fatalf("ID = %d, want 13", article.ID)
	}
}

func TestArticleRepo_Create_UnknownAuthor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("INSERT INTO articles").
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	err := pg.NewArticleRepo(db).Create(context.Background(), &entity.Article{AuthorID: 42})
	if !errors.Is(err, entity.ErrReferenceNotFound) {
		t.Fatalf("err=%v, want ErrReferenceNotFound", err)
	}
}

/* ─────────────────────────── 6. Update ─────────────────────────── */

func TestArticleRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
		WithArgs("Article modifié", "content", "short", int64(1), now, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pg.NewArticleRepo(db).Update(context.Background(), &entity.Article{
		ID: 5, Title: "Article modifié", Content: "content", ShortContent: "short",
		AuthorID: 1, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
}

func TestArticleRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("UPDATE articles").WillReturnResult(sqlmock.NewResult(0, 0))

	err := pg.NewArticleRepo(db).Update(context.Background(), &entity.Article{ID: 99})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

/* ─────────────────────────── 7. Delete ─────────────────────────── */

func TestArticleRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(db)
	if err := repo.Delete(context.Background(), 4); err != nil {
		t.Fatalf("first Delete err=%v", err)
	}
	if err := repo.Delete(context.Background(), 4); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("second Delete err=%v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
