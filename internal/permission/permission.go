// Package permission manages per-user page access. The rules live in
// injected storage under a single key and are lazily seeded with defaults
// derived from the known user accounts.
package permission

import (
	"github.com/rs/zerolog"

	"github.com/Shaoyanting/HT-financial-system/internal/mockdata"
	"github.com/Shaoyanting/HT-financial-system/internal/storage"
	"github.com/Shaoyanting/HT-financial-system/internal/types"
	"github.com/Shaoyanting/HT-financial-system/pkg/logger"
)

const permissionsKey = "financial_system_user_permissions"

// AllPages lists every manageable page.
var AllPages = []types.PagePermission{
	{ID: "dashboard", Name: "Dashboard", Path: "/dashboard", Description: "Portfolio overview and key metrics"},
	{ID: "data-grid", Name: "Asset Grid", Path: "/data-grid", Description: "Holdings list with search and export"},
	{ID: "charts-analysis", Name: "Charts Analysis", Path: "/charts-analysis", Description: "Price and volume charts"},
	{ID: "trend-analysis", Name: "Trend Analysis", Path: "/trend-analysis", Description: "Portfolio trend vs benchmark"},
	{ID: "asset-distribution", Name: "Asset Distribution", Path: "/asset-distribution", Description: "Allocation and industry breakdowns"},
	{ID: "risk-management", Name: "Risk Management", Path: "/risk-management", Description: "Risk metrics and drawdown"},
	{ID: "profile", Name: "Profile", Path: "/profile", Description: "Account settings"},
}

// restrictedByDefault are pages regular users cannot see until an admin
// grants them.
var restrictedByDefault = map[string]bool{
	"/risk-management": true,
}

// Service reads and writes permission rules. Admins bypass the rules
// entirely: they can always reach every page.
type Service struct {
	store storage.Store
	log   zerolog.Logger
}

func New(store storage.Store) *Service {
	return &Service{store: store, log: logger.With("permission")}
}

// AllPagePaths returns every page path in display order.
func AllPagePaths() []string {
	paths := make([]string, len(AllPages))
	for i, p := range AllPages {
		paths[i] = p.Path
	}
	return paths
}

func defaultPermissions() []types.UserPermission {
	perms := make([]types.UserPermission, 0, len(mockdata.MockUsers))
	for _, u := range mockdata.MockUsers {
		pages := AllPagePaths()
		if u.Role != types.RoleAdmin {
			filtered := pages[:0]
			for _, p := range pages {
				if !restrictedByDefault[p] {
					filtered = append(filtered, p)
				}
			}
			pages = filtered
		}
		perms = append(perms, types.UserPermission{
			UserID:       u.ID,
			Username:     u.Username,
			Name:         u.Name,
			Role:         u.Role,
			AllowedPages: pages,
		})
	}
	return perms
}

// GetUserPermissions returns all rules, seeding defaults on first use or
// when the stored value is unreadable.
func (s *Service) GetUserPermissions() []types.UserPermission {
	var perms []types.UserPermission
	ok, err := storage.GetJSON(s.store, permissionsKey, &perms)
	if err != nil {
		s.log.Warn().Err(err).Msg("stored permissions unreadable, reseeding defaults")
	}
	if err != nil || !ok || len(perms) == 0 {
		perms = defaultPermissions()
		if serr := s.SaveUserPermissions(perms); serr != nil {
			s.log.Error().Err(serr).Msg("failed to persist default permissions")
		}
	}
	return perms
}

// SaveUserPermissions replaces the full rule set.
func (s *Service) SaveUserPermissions(perms []types.UserPermission) error {
	return storage.SetJSON(s.store, permissionsKey, perms)
}

// GetUserPermission returns the rule for one user, nil when unknown.
func (s *Service) GetUserPermission(userID int) *types.UserPermission {
	for _, p := range s.GetUserPermissions() {
		if p.UserID == userID {
			return &p
		}
	}
	return nil
}

// UpdateUserPermission replaces one user's allowed pages.
func (s *Service) UpdateUserPermission(userID int, allowedPages []string) error {
	perms := s.GetUserPermissions()
	for i := range perms {
		if perms[i].UserID == userID {
			perms[i].AllowedPages = allowedPages
			return s.SaveUserPermissions(perms)
		}
	}
	s.log.Warn().Int("userId", userID).Msg("permission update for unknown user ignored")
	return nil
}

// GetRegularUsers returns the rules for non-admin users, the set shown on
// the management screen.
func (s *Service) GetRegularUsers() []types.UserPermission {
	var out []types.UserPermission
	for _, p := range s.GetUserPermissions() {
		if p.Role != types.RoleAdmin {
			out = append(out, p)
		}
	}
	return out
}

// HasPagePermission reports whether user may open the page at path.
func (s *Service) HasPagePermission(user *types.User, path string) bool {
	if user == nil {
		return false
	}
	if user.Role == types.RoleAdmin {
		return true
	}
	perm := s.GetUserPermission(user.ID)
	if perm == nil {
		return false
	}
	for _, p := range perm.AllowedPages {
		if p == path {
			return true
		}
	}
	return false
}

// ResetPermissions drops stored rules; the next read reseeds defaults.
func (s *Service) ResetPermissions() error {
	return s.store.Remove(permissionsKey)
}
