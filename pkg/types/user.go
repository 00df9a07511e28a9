package types

type AccountType string

const (
	AccountTypeCitizen    AccountType = "citizen"
	AccountTypeGovernment AccountType = "government"
)

// Valid reports whether the account type is one of the closed set the
// product supports. The "business" type was removed and is rejected.
func (a AccountType) Valid() bool {
	switch a {
	case AccountTypeCitizen, AccountTypeGovernment:
		return true
	}
	return false
}

// User is the current-user snapshot returned by /user/@me. It is replaced
// wholesale on refresh, never patched field by field.
type User struct {
	UUID        string      `json:"uuid"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Birthdate   string      `json:"birthdate,omitempty"`
	AccountType AccountType `json:"accountType"`
	Address     string      `json:"address,omitempty"`
	PFP         string      `json:"pfp,omitempty"`
	Points      int         `json:"points"`
	Projects    []string    `json:"projects,omitempty"`
}
