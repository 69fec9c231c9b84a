package dto

// Claims is the verified identity payload attached to a request by the
// upstream identity boundary. Token verification happens there; the
// service trusts this as given.
type Claims struct {
	Sub      string   `json:"sub"`
	Username string   `json:"username"`
	Groups   []string `json:"groups"`
}

const AdminGroup = "admin"

func (c *Claims) HasGroup(group string) bool {
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func (c *Claims) IsAdmin() bool {
	return c.HasGroup(AdminGroup)
}
