package seed

import (
	"myfuture/pkg/types"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// UserSeed pairs a user record with the plaintext password the mock
// authentication endpoints accept for it.
type UserSeed struct {
	User     types.User
	Password string
}

// SampleUsers returns the well-known demo accounts.
func SampleUsers() []UserSeed {
	return []UserSeed{
		{
			User: types.User{
				UUID:        "4c8f6d82-e4c6-4478-92eb-d9342500f006",
				Email:       "ava.williams@example.com",
				Name:        "Ava Williams",
				AccountType: types.AccountTypeCitizen,
				Address:     "12 Wattle Street",
				Points:      256,
				Projects:    []string{"proj-001"},
			},
			Password: "hunter2hunter2",
		},
		{
			User: types.User{
				UUID:        "7884a866-4ae1-4945-9fba-b2b8d2b7c5a9",
				Email:       "council@city.gov",
				Name:        "City Council",
				AccountType: types.AccountTypeGovernment,
				Address:     "1 Town Hall Place",
				Points:      0,
				Projects:    []string{"proj-001", "proj-004"},
			},
			Password: "adminadmin",
		},
	}
}

// FakeUsers generates n additional citizen accounts.
func FakeUsers(n int) []UserSeed {
	out := make([]UserSeed, 0, n)
	for range n {
		out = append(out, UserSeed{
			User: types.User{
				UUID:        uuid.NewString(),
				Email:       gofakeit.Email(),
				Name:        gofakeit.Name(),
				PhoneNumber: gofakeit.Phone(),
				AccountType: types.AccountTypeCitizen,
				Address:     gofakeit.Street(),
				Points:      gofakeit.Number(0, 500),
			},
			Password: gofakeit.Password(true, true, true, false, false, 16),
		})
	}
	return out
}
