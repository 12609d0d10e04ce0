package repositories

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lib/pq"
)

func TestUpdateSetStatement(t *testing.T) {
	var set updateSet
	if !set.empty() {
		t.Fatal("new set should be empty")
	}
	set.add("price", 999)
	set.add("available", false)

	query, args := set.statement("menu_items", 7)
	wantQuery := "UPDATE menu_items SET price = $1, available = $2 WHERE id = $3"
	if query != wantQuery {
		t.Errorf("query = %q, want %q", query, wantQuery)
	}
	if !reflect.DeepEqual(args, []interface{}{999, false, int64(7)}) {
		t.Errorf("args = %#v", args)
	}

	query, _ = set.statement("inventory", 1, "updated_at = NOW()")
	if query != "UPDATE inventory SET price = $1, available = $2, updated_at = NOW() WHERE id = $3" {
		t.Errorf("query with raw assignment = %q", query)
	}
}

func TestWrapWriteError(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "inventory_item_name_key"}
	if err := wrapWriteError(dup, "creating inventory item"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("unique violation not mapped to ErrDuplicateKey: %v", err)
	}
	fk := &pq.Error{Code: "23503", Constraint: "sale_items_menu_item_id_fkey"}
	if err := wrapWriteError(fk, "creating sale item"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("foreign key violation not mapped to ErrInvalidReference: %v", err)
	}
	if err := wrapWriteError(errors.New("conn reset"), "creating inventory item"); !errors.Is(err, ErrDatabaseError) {
		t.Errorf("generic error not mapped to ErrDatabaseError: %v", err)
	}
}
