package repositories

import (
	"errors"
	"regexp"
	"testing"

	"rp_admin_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateMenuItemWritesOnlyPatchedColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	price := 999
	mock.ExpectExec(regexp.QuoteMeta("UPDATE menu_items SET price = $1 WHERE id = $2")).
		WithArgs(999, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMenuRepository(db)
	if err := repo.UpdateMenuItem(db, models.MenuItemPatch{ID: 1, Price: &price}); err != nil {
		t.Fatalf("UpdateMenuItem: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	name := "Masala Fries"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE menu_items SET name = $1 WHERE id = $2")).
		WithArgs(name, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewMenuRepository(db).UpdateMenuItem(db, models.MenuItemPatch{ID: 404, Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListMenuItemsEmptyIsNotNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM menu_items")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category", "name", "price", "veg", "available", "created_at"}))

	items, err := NewMenuRepository(db).ListMenuItems()
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %#v, want empty non-nil slice", items)
	}
}
