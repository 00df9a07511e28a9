package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EquipmentDonation is a business-donated equipment record owned by its
// parent project; it is never persisted independently.
type EquipmentDonation struct {
	Donor          string `json:"donor"`
	Equipment      string `json:"equipment"`
	EstimatedValue int    `json:"estimatedValue"`
}

// Project is the public view of a campaign. The citizen contribution
// ledger is withheld from this shape; see ProjectWithContributions.
type Project struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	Category          string              `json:"category"`
	DateStarted       time.Time           `json:"dateStarted"`
	DateCompleted     *time.Time          `json:"dateCompleted,omitempty"`
	Thumbnail         string              `json:"thumbnail,omitempty"`
	Progress          int                 `json:"progress"`
	Goal              int                 `json:"goal"`
	Contact           string              `json:"contact,omitempty"`
	BusinessDonations []EquipmentDonation `json:"businessDonations,omitempty"`
}

// Completed reports whether the project has been marked finished. A
// fully funded project (progress == goal) is not completed until a
// completion date is recorded.
func (p *Project) Completed() bool {
	return p.DateCompleted != nil
}

// ProjectWithContributions is the authenticated view of a campaign,
// extending the public record with the citizen contribution ledger.
type ProjectWithContributions struct {
	Project
	CitizenContributions map[string]int `json:"citizenContributions,omitempty"`
}

// ValidateContributions checks that every ledger key is a well-formed
// contributor UUID.
func (p *ProjectWithContributions) ValidateContributions() error {
	for contributor := range p.CitizenContributions {
		if _, err := uuid.Parse(contributor); err != nil {
			return fmt.Errorf("contributor %q: %w", contributor, ErrInvalidContributor)
		}
	}
	return nil
}
