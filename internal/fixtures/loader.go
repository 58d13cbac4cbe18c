// Package fixtures seeds the store with deterministic accounts and articles
// from YAML files embedded in the binary.
//
// Sets are loaded by name:
//
//	users      admin/admin (ROLE_ADMIN) and user/user
//	articles   "Article 1".."Article 12", authored by admin
//	dev_users  fifteen extra accounts with the password "user"
package fixtures

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"articles-admin/internal/domain/entity"
	"articles-admin/internal/infra/db"
	"articles-admin/internal/repository"
	authservice "articles-admin/internal/service/auth"
)

// Fixture set names.
const (
	SetUsers    = "users"
	SetArticles = "articles"
	SetDevUsers = "dev_users"
)

// ErrUnknownSet is returned for a set name without a matching file.
var ErrUnknownSet = errors.New("unknown fixture set")

//go:embed data/*.yaml
var files embed.FS

type userFixture struct {
	Username  string   `yaml:"username"`
	FirstName string   `yaml:"firstName"`
	LastName  string   `yaml:"lastName"`
	Password  string   `yaml:"password"`
	Roles     []string `yaml:"roles"`
}

type articleFixture struct {
	Title        string `yaml:"title"`
	ShortContent string `yaml:"shortContent"`
	Content      string `yaml:"content"`
	Author       string `yaml:"author"`
}

type set struct {
	Users    []userFixture    `yaml:"users"`
	Articles []articleFixture `yaml:"articles"`
}

// Sets returns the names of the embedded fixture sets, sorted.
func Sets() []string {
	entries, _ := fs.ReadDir(files, "data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

func parse(name string) (*set, error) {
	raw, err := files.ReadFile(path.Join("data", name+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
		}
		return nil, fmt.Errorf("read fixture set %q: %w", name, err)
	}
	var s set
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse fixture set %q: %w", name, err)
	}
	return &s, nil
}

// Loader resets the store and inserts fixture sets through the repositories.
type Loader struct {
	DB       db.Querier
	Dialect  db.Dialect
	Users    repository.UserRepository
	Articles repository.ArticleRepository
	// BcryptCost is used to hash fixture passwords.
	BcryptCost int
	Now        func() time.Time
}

// Load empties the store, restarts identities and inserts sets in order.
// Every set is parsed before anything is written, so an unknown name leaves
// the store untouched.
func (l *Loader) Load(ctx context.Context, sets ...string) error {
	parsed := make([]*set, 0, len(sets))
	for _, name := range sets {
		s, err := parse(name)
		if err != nil {
			return err
		}
		parsed = append(parsed, s)
	}

	if err := db.Reset(ctx, l.DB, l.Dialect); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}

	hashes := make(map[string]string)
	for i, s := range parsed {
		if err := l.loadUsers(ctx, s.Users, hashes); err != nil {
			return fmt.Errorf("fixture set %q: %w", sets[i], err)
		}
		if err := l.loadArticles(ctx, s.Articles); err != nil {
			return fmt.Errorf("fixture set %q: %w", sets[i], err)
		}
		slog.Debug("fixture set loaded",
			slog.String("set", sets[i]),
			slog.Int("users", len(s.Users)),
			slog.Int("articles", len(s.Articles)))
	}
	return nil
}

func (l *Loader) loadUsers(ctx context.Context, users []userFixture, hashes map[string]string) error {
	for _, f := range users {
		hash, ok := hashes[f.Password]
		if !ok {
			var err error
			if hash, err = authservice.HashPassword(f.Password, l.BcryptCost); err != nil {
				return err
			}
			hashes[f.Password] = hash
		}

		u := &entity.User{
			Username:     f.Username,
			FirstName:    f.FirstName,
			LastName:     f.LastName,
			PasswordHash: hash,
			Roles:        f.Roles,
			CreatedAt:    l.now(),
		}
		if err := u.Validate(); err != nil {
			return fmt.Errorf("user %q: %w", f.Username, err)
		}
		if err := l.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user %q: %w", f.Username, err)
		}
	}
	return nil
}

func (l *Loader) loadArticles(ctx context.Context, articles []articleFixture) error {
	authors := make(map[string]int64)
	for _, f := range articles {
		authorID, ok := authors[f.Author]
		if !ok {
			u, err := l.Users.FindByUsername(ctx, f.Author)
			if err != nil {
				return fmt.Errorf("find author %q: %w", f.Author, err)
			}
			if u == nil {
				return fmt.Errorf("article %q: author %q: %w", f.Title, f.Author, entity.ErrReferenceNotFound)
			}
			authorID = u.ID
			authors[f.Author] = authorID
		}

		now := l.now()
		a := &entity.Article{
			Title:        f.Title,
			Content:      strings.TrimSpace(f.Content),
			ShortContent: f.ShortContent,
			AuthorID:     authorID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("article %q: %w", f.Title, err)
		}
		if err := l.Articles.Create(ctx, a); err != nil {
			return fmt.Errorf("create article %q: %w", f.Title, err)
		}
	}
	return nil
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}
