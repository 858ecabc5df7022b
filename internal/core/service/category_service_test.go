package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskloop/taskloop-api/internal/core/domain"
	"github.com/taskloop/taskloop-api/internal/core/ports"
)

func newCategoryFixture() (*CategoryService, *stubCategoryRepo, *stubTodoRepo) {
	todos := newStubTodoRepo()
	categories := newStubCategoryRepo(todos)
	return NewCategoryService(categories, discardLogger), categories, todos
}

func TestCategoryService_Create_Success(t *testing.T) {
	svc, repo, _ := newCategoryFixture()

	id, err := svc.CreateCategory(context.Background(), ports.CreateCategoryInput{
		OwnerID: "user_1", Name: "Work", Color: "#336699",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.categories[id]
	if stored == nil {
		t.Fatal("category not persisted")
	}
	if stored.Name != "Work" || stored.Color != "#336699" || stored.OwnerID != "user_1" {
		t.Errorf("unexpected stored category: %+v", stored)
	}
	if stored.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}
}

func TestCategoryService_Create_EmptyName(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	for _, name := range []string{"", "   "} {
		_, err := svc.CreateCategory(context.Background(), ports.CreateCategoryInput{OwnerID: "user_1", Name: name})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("name %q: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestCategoryService_Create_Unauthenticated(t *testing.T) {
	svc, repo, _ := newCategoryFixture()

	_, err := svc.CreateCategory(context.Background(), ports.CreateCategoryInput{Name: "Work"})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(repo.categories) != 0 {
		t.Error("no write may happen without a caller identity")
	}
}

func TestCategoryService_List_OwnerScoped(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	_, _ = svc.CreateCategory(context.Background(), ports.CreateCategoryInput{OwnerID: "user_a", Name: "Home"})
	_, _ = svc.CreateCategory(context.Background(), ports.CreateCategoryInput{OwnerID: "user_a", Name: "Work"})
	_, _ = svc.CreateCategory(context.Background(), ports.CreateCategoryInput{OwnerID: "user_b", Name: "Other"})

	got, err := svc.ListCategories(context.Background(), "user_a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories for user_a, got %d", len(got))
	}
	for _, c := range got {
		if c.OwnerID != "user_a" {
			t.Errorf("another user's category leaked: %+v", c)
		}
	}
}

func TestCategoryService_Delete_CascadeClearsReferences(t *testing.T) {
	svc, repo, todos := newCategoryFixture()

	catID, _ := svc.CreateCategory(context.Background(), ports.CreateCategoryInput{OwnerID: "user_1", Name: "Work"})
	in1, _ := todos.Create(context.Background(), &domain.Todo{Title: "a", OwnerID: "user_1", CategoryID: catID, Priority: domain.PriorityLow})
	in2, _ := todos.Create(context.Background(), &domain.Todo{Title: "b", OwnerID: "user_1", CategoryID: catID, Priority: domain.PriorityLow})
	other, _ := todos.Create(context.Background(), &domain.Todo{Title: "c", OwnerID: "user_1", Priority: domain.PriorityLow})

	cleared, err := svc.DeleteCategory(context.Background(), "user_1", catID)
	if err != nil {
		t.Fatal(err)
	}
	if cleared != 2 {
		t.Errorf("expected 2 cleared references, got %d", cleared)
	}

	if _, ok := repo.categories[catID]; ok {
		t.Error("category still present after delete")
	}
	for _, id := range []string{in1, in2} {
		if got := todos.todos[id].CategoryID; got != "" {
			t.Errorf("todo %s still references deleted category: %q", id, got)
		}
	}
	if todos.todos[other].CategoryID != "" {
		t.Errorf("unrelated todo was modified: %+v", todos.todos[other])
	}
}

func TestCategoryService_Delete_OtherUsersCategory(t *testing.T) {
	svc, repo, todos := newCategoryFixture()

	catID, _ := svc.CreateCategory(context.Background(), ports.CreateCategoryInput{OwnerID: "user_a", Name: "Work"})
	todoID, _ := todos.Create(context.Background(), &domain.Todo{Title: "a", OwnerID: "user_a", CategoryID: catID, Priority: domain.PriorityLow})

	_, err := svc.DeleteCategory(context.Background(), "user_b", catID)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, ok := repo.categories[catID]; !ok {
		t.Error("category must survive a cross-user delete attempt")
	}
	if todos.todos[todoID].CategoryID != catID {
		t.Error("references must not be cleared on a rejected delete")
	}
}

func TestCategoryService_Delete_Unauthenticated(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	if _, err := svc.DeleteCategory(context.Background(), "", "cat_001"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
