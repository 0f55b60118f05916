package domain

// Group is a named set of users. Members holds userids.
type Group struct {
	Name    string
	Members []string
}

// NewGroup builds a Group and validates it.
func NewGroup(name string) (*Group, error) {
	group := &Group{Name: name, Members: []string{}}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the Group has valid data.
func (g *Group) Validate() error {
	return validateKey("group_name", g.Name)
}

// NormalizeMembers removes duplicate userids from a membership list.
func NormalizeMembers(userIDs []string) []string {
	return normalizeNames(userIDs)
}
