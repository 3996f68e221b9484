package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table           string
	ID              string
	Name            string
	Email           string
	Mobile          string
	MobileConfirmed string
	Roles           string
	CreatedAt       string
	UpdatedAt       string
	DeletedAt       string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:           "users.account",
	ID:              "id",
	Name:            "name",
	Email:           "email",
	Mobile:          "mobile",
	MobileConfirmed: "mobileconfirmed",
	Roles:           "roles",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
	DeletedAt:       "deletedat",
}

// ProfileColumns returns the columns read to build a session profile, in scan order
func (t UserAccountTable) ProfileColumns() []string {
	return []string{t.ID, t.Name, t.Email, t.Mobile, t.MobileConfirmed, t.Roles}
}
