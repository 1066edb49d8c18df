package repositories

import (
	"context"
	"errors"
	"testing"

	"jobprep/api/internal/models"
	"jobprep/api/internal/testhelpers"
)

func newRepo(t *testing.T) *UserRepository {
	t.Helper()
	return &UserRepository{DB: testhelpers.SetupTestDB(t)}
}

func seedUser(t *testing.T, repo *UserRepository, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "hash", Role: models.RoleCandidate}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, "Alice", "alice@example.com")
	if user.ID == 0 {
		t.Fatalf("expected user ID to be set")
	}

	dup := &models.User{Name: "Alice Two", Email: "alice@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(ctx, dup)
	if !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestUserRepository_GetUserByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "Bob", "bob@example.com")

	t.Run("success", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, user.IDString())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Email != user.Email {
			t.Fatalf("expected email %q, got %q", user.Email, got.Email)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		if _, err := repo.GetUserByID(ctx, "abc"); !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected not found for invalid id, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.GetUserByID(ctx, "999"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("database error", func(t *testing.T) {
		testhelpers.DropUserTable(t, repo.DB)
		if _, err := repo.GetUserByID(ctx, user.IDString()); err == nil || errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected underlying DB error, got %v", err)
		}
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "David", "david@example.com")

	t.Run("success", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, " DAVID@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != user.ID {
			t.Fatalf("expected id %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.GetUserByEmail(ctx, "none@example.com"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("database error", func(t *testing.T) {
		testhelpers.DropUserTable(t, repo.DB)
		if _, err := repo.GetUserByEmail(ctx, "any@example.com"); err == nil || errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected underlying DB error, got %v", err)
		}
	})
}

func TestUserRepository_GetUsersByIDs(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	a := seedUser(t, repo, "Anna", "anna@example.com")
	b := seedUser(t, repo, "Ben", "ben@example.com")

	got, err := repo.GetUsersByIDs(ctx, []string{a.IDString(), b.IDString(), "999", "bogus"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[a.IDString()].Name != "Anna" || got[b.IDString()].Name != "Ben" {
		t.Fatalf("unexpected users: %+v", got)
	}

	empty, err := repo.GetUsersByIDs(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty map, got %v (%v)", empty, err)
	}
}

func TestUserRepository_UpdateUser(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	original := seedUser(t, repo, "Eve", "eve@example.com")

	t.Run("success", func(t *testing.T) {
		updated, err := repo.UpdateUser(ctx, original.IDString(), map[string]interface{}{"email": "eve2@example.com", "company": ""})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Email != "eve2@example.com" || updated.Name != "Eve" {
			t.Fatalf("unexpected user after update: %+v", updated)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.UpdateUser(ctx, "999", map[string]interface{}{"name": "x"}); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("unique constraint", func(t *testing.T) {
		other := seedUser(t, repo, "Frank", "frank@example.com")
		_, err := repo.UpdateUser(ctx, original.IDString(), map[string]interface{}{"email": other.Email})
		if !errors.Is(err, models.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestUserRepository_SetAdmin(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo, "Grace", "grace@example.com")

	got, err := repo.SetAdmin(ctx, "GRACE@example.com", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsAdmin {
		t.Fatalf("expected admin flag on returned user")
	}

	reloaded, _ := repo.GetUserByID(ctx, user.IDString())
	if !reloaded.IsAdmin {
		t.Fatalf("expected admin flag to be persisted")
	}

	if _, err := repo.SetAdmin(ctx, "missing@example.com", true); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Migrate(t *testing.T) {
	repo := newRepo(t)
	testhelpers.DropUserTable(t, repo.DB)
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if !repo.DB.Migrator().HasTable(&models.User{}) {
		t.Fatalf("expected users table after migrate")
	}
}
