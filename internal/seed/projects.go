package seed

import (
	"time"

	"myfuture/internal/utils"
	"myfuture/pkg/types"

	"github.com/brianvoe/gofakeit/v6"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleProjects returns the product's fixture campaigns, ledgers
// included, in their canonical order.
func SampleProjects() []types.ProjectWithContributions {
	return []types.ProjectWithContributions{
		{
			Project: types.Project{
				ID:          "proj-001",
				Name:        "Community Garden",
				Description: "Build and maintain a garden in the local park.",
				Category:    "Environment",
				DateStarted: date("2024-03-01"),
				Progress:    30,
				Goal:        100,
				Contact:     "garden@community.org",
				BusinessDonations: []types.EquipmentDonation{
					{Donor: "f0ab14ef-6cdc-4c1e-ae52-04de6c844dbc", Equipment: "Shovel", EstimatedValue: 50},
					{Donor: "7c09e008-a836-4607-9c59-6336a07368c0", Equipment: "Seeds", EstimatedValue: 5},
				},
			},
			CitizenContributions: map[string]int{
				"4c8f6d82-e4c6-4478-92eb-d9342500f006": 50,
				"7884a866-4ae1-4945-9fba-b2b8d2b7c5a9": 20,
			},
		},
		{
			Project: types.Project{
				ID:          "proj-002",
				Name:        "Art Mural",
				Description: "Create a mural for the city center wall.",
				Category:    "Art",
				DateStarted: date("2024-05-18"),
				Progress:    70,
				Goal:        100,
				Contact:     "art@city.org",
				BusinessDonations: []types.EquipmentDonation{
					{Donor: "a9adff1f-b61b-493d-9c47-9e4ea62e3ae7", Equipment: "Paint", EstimatedValue: 20},
				},
			},
			CitizenContributions: map[string]int{
				"ce93ac0e-aade-423e-94f4-85cd33a15dbb": 60,
				"8fd03d6b-b1d6-4dc0-8985-b7c9f3115089": 10,
			},
		},
		{
			Project: types.Project{
				ID:          "proj-003",
				Name:        "Tech Workshop",
				Description: "Teach programming basics to youth.",
				Category:    "Education",
				DateStarted: date("2024-07-01"),
				Progress:    45,
				Goal:        100,
				Contact:     "tech@workshop.org",
				BusinessDonations: []types.EquipmentDonation{
					{Donor: "aab8614f-94d6-4e4e-b9d5-00deae751184", Equipment: "Laptops", EstimatedValue: 10},
				},
			},
			CitizenContributions: map[string]int{
				"c8eea5d1-2a3b-499b-9aee-555760ba0cf9": 30,
			},
		},
		{
			Project: types.Project{
				ID:            "proj-004",
				Name:          "Street Clean-Up",
				Description:   "Monthly clean-up of major streets.",
				Category:      "Community Service",
				DateStarted:   date("2024-04-10"),
				DateCompleted: utils.TimePtr(date("2024-08-05")),
				Progress:      100,
				Goal:          100,
				Contact:       "cleanup@community.org",
				BusinessDonations: []types.EquipmentDonation{
					{Donor: "5f830f6c-1cca-4276-8db3-9d8de320fba0", Equipment: "Gloves", EstimatedValue: 50},
				},
			},
			CitizenContributions: map[string]int{
				"2ccab30f-80bf-4b33-9918-b374f7e9dd4e": 25,
				"af8cc079-71e8-45ed-9bfe-9445174dc231": 40,
			},
		},
		{
			Project: types.Project{
				ID:          "proj-005",
				Name:        "Solar Panel Installation",
				Description: "Equip the library with solar panels.",
				Category:    "Sustainability",
				DateStarted: date("2024-02-19"),
				Progress:    60,
				Goal:        100,
				Contact:     "solar@city.org",
				BusinessDonations: []types.EquipmentDonation{
					{Donor: "16f27f95-5b85-4d54-9905-0fdaa036b0a8", Equipment: "Solar Panels", EstimatedValue: 10},
				},
			},
			CitizenContributions: map[string]int{
				"30358007-5b19-47b8-979f-5b8afaae1e44": 35,
				"ddf30d9e-0865-48d8-88ed-648c28710853": 15,
			},
		},
	}
}

// SampleProjectList returns the public views of the fixture campaigns.
func SampleProjectList() []types.Project {
	withLedgers := SampleProjects()
	list := make([]types.Project, 0, len(withLedgers))
	for _, p := range withLedgers {
		list = append(list, p.Project)
	}
	return list
}

var fakeCategories = []string{
	"Environment", "Art", "Education", "Community Service", "Sustainability",
}

// FakeProjects generates n additional campaigns for demo volume.
func FakeProjects(n int) []types.ProjectWithContributions {
	out := make([]types.ProjectWithContributions, 0, n)
	for range n {
		started := gofakeit.DateRange(date("2024-01-01"), date("2024-12-01"))

		p := types.ProjectWithContributions{
			Project: types.Project{
				ID:          utils.NanoIDSize(12),
				Name:        gofakeit.Sentence(3),
				Description: gofakeit.Sentence(10),
				Category:    fakeCategories[gofakeit.Number(0, len(fakeCategories)-1)],
				DateStarted: started,
				Progress:    gofakeit.Number(0, 100),
				Goal:        100,
				Contact:     gofakeit.Email(),
			},
			CitizenContributions: map[string]int{
				gofakeit.UUID(): gofakeit.Number(5, 75),
				gofakeit.UUID(): gofakeit.Number(5, 75),
			},
		}

		if gofakeit.Bool() {
			completed := gofakeit.DateRange(started, date("2025-01-01"))
			p.DateCompleted = &completed
			p.Progress = 100
		}

		out = append(out, p)
	}
	return out
}
