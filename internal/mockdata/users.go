package mockdata

import "github.com/Shaoyanting/HT-financial-system/internal/types"

// MockUser is a demo account accepted by the offline login fallback and
// seeded into the reference server.
type MockUser struct {
	types.User
	Password string
}

// MockUsers are the built-in demo accounts.
var MockUsers = []MockUser{
	{
		User: types.User{
			ID:       1,
			Username: "admin",
			Name:     "Administrator",
			Email:    "admin@financial.com",
			Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=admin",
			Role:     types.RoleAdmin,
		},
		Password: "admin123",
	},
	{
		User: types.User{
			ID:       2,
			Username: "user1",
			Name:     "Zhang San",
			Email:    "zhangsan@financial.com",
			Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=zhangsan",
			Role:     "user",
		},
		Password: "user123",
	},
}

// FindMockUser returns the demo account matching the credentials.
func FindMockUser(username, password string) (*MockUser, bool) {
	for i := range MockUsers {
		if MockUsers[i].Username == username && MockUsers[i].Password == password {
			return &MockUsers[i], true
		}
	}
	return nil, false
}
