package permission

import (
	"testing"

	"github.com/Shaoyanting/HT-financial-system/internal/storage"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
)

func newTestService() (*Service, storage.Store) {
	store := storage.NewMemStore()
	return New(store), store
}

func TestGetUserPermissions_SeedsDefaults(t *testing.T) {
	svc, store := newTestService()

	perms := svc.GetUserPermissions()
	if len(perms) != 2 {
		t.Fatalf("rules = %d, want one per known user", len(perms))
	}

	admin := svc.GetUserPermission(1)
	if admin == nil || admin.Role != types.RoleAdmin {
		t.Fatalf("admin rule = %+v", admin)
	}
	if len(admin.AllowedPages) != len(AllPages) {
		t.Errorf("admin pages = %d, want all %d", len(admin.AllowedPages), len(AllPages))
	}

	user := svc.GetUserPermission(2)
	if user == nil {
		t.Fatal("regular user rule missing")
	}
	if len(user.AllowedPages) != len(AllPages)-1 {
		t.Errorf("user pages = %d, want all but risk-management", len(user.AllowedPages))
	}
	for _, p := range user.AllowedPages {
		if p == "/risk-management" {
			t.Error("regular user granted /risk-management by default")
		}
	}

	// The seed is persisted, not recomputed per read.
	var stored []types.UserPermission
	if ok, err := storage.GetJSON(store, permissionsKey, &stored); err != nil || !ok {
		t.Fatalf("defaults not persisted: ok=%v err=%v", ok, err)
	}
}

func TestUpdateUserPermission(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.UpdateUserPermission(2, []string{"/dashboard", "/risk-management"}); err != nil {
		t.Fatalf("UpdateUserPermission failed: %v", err)
	}

	user := svc.GetUserPermission(2)
	if len(user.AllowedPages) != 2 {
		t.Fatalf("pages = %v", user.AllowedPages)
	}

	u := &types.User{ID: 2, Role: "user"}
	if !svc.HasPagePermission(u, "/risk-management") {
		t.Error("granted page denied")
	}
	if svc.HasPagePermission(u, "/data-grid") {
		t.Error("revoked page still allowed")
	}
}

func TestHasPagePermission_AdminBypassesRules(t *testing.T) {
	svc, _ := newTestService()

	// Strip the admin's page list entirely; role still wins.
	if err := svc.UpdateUserPermission(1, nil); err != nil {
		t.Fatal(err)
	}
	admin := &types.User{ID: 1, Role: types.RoleAdmin}
	for _, p := range AllPagePaths() {
		if !svc.HasPagePermission(admin, p) {
			t.Errorf("admin denied %s", p)
		}
	}

	if svc.HasPagePermission(nil, "/dashboard") {
		t.Error("nil user allowed")
	}
	if svc.HasPagePermission(&types.User{ID: 99, Role: "user"}, "/dashboard") {
		t.Error("unknown user allowed")
	}
}

func TestGetRegularUsers(t *testing.T) {
	svc, _ := newTestService()

	users := svc.GetRegularUsers()
	if len(users) != 1 || users[0].Role == types.RoleAdmin {
		t.Fatalf("regular users = %+v", users)
	}
}

func TestResetPermissions(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.UpdateUserPermission(2, []string{"/profile"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.ResetPermissions(); err != nil {
		t.Fatalf("ResetPermissions failed: %v", err)
	}

	user := svc.GetUserPermission(2)
	if len(user.AllowedPages) != len(AllPages)-1 {
		t.Errorf("pages after reset = %v, want defaults", user.AllowedPages)
	}
}
