package emails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"
)

func draftProject() *models.Project {
	return &models.Project{
		Name: "Dock Rebuild",
		Owner: models.Owner{
			FirstName: "Dana",
			LastName:  "Whitfield",
			Email:     "dana@example.com",
			Phone:     "(555) 201-3344",
		},
		Details: models.ProjectDetails{
			Category:         constants.CategoryModification,
			ImprovementTypes: []constants.ImprovementType{constants.ImprovementDock, constants.ImprovementBoatLift},
			Description:      "Replace decking and add a boat lift to the existing dock.",
			EstimatedCost:    6500,
			PlannedStartDate: "2026-05-01",
		},
		Site: models.SiteInfo{
			PropertyAddress: "48 Lakeshore Dr",
			ParcelNumber:    "081-220-0340",
		},
		RequiredPermits: []constants.PermitType{
			constants.PermitReservoirUse,
			constants.PermitShorelineExemption,
			constants.PermitHydraulicApproval,
		},
	}
}

func TestDraftsForProjectEmailPermitsOnly(t *testing.T) {
	drafts := DraftsForProject(draftProject())

	// hydraulic approval is portal-submitted, so only two drafts
	require.Len(t, drafts, 2)
	assert.Equal(t, constants.PermitReservoirUse, drafts[0].PermitType)
	assert.Equal(t, constants.PermitShorelineExemption, drafts[1].PermitType)
	assert.Equal(t, "shoreline.permits@lakehaven.gov", drafts[0].To)
}

func TestDraftSubjectIncludesAddress(t *testing.T) {
	drafts := DraftsForProject(draftProject())
	require.NotEmpty(t, drafts)
	assert.Equal(t, "Reservoir Land Use Permit Application - 48 Lakeshore Dr", drafts[0].Subject)
}

func TestDraftBodyCarriesProjectFields(t *testing.T) {
	drafts := DraftsForProject(draftProject())
	require.NotEmpty(t, drafts)
	body := drafts[0].Body

	assert.Contains(t, body, "Dear Lakehaven Reservoir Authority,")
	assert.Contains(t, body, "Name: Dana Whitfield")
	assert.Contains(t, body, "Parcel number: 081-220-0340")
	assert.Contains(t, body, "Improvements: dock, boat lift")
	assert.Contains(t, body, "Estimated cost: $6500.00")
	assert.Contains(t, body, "Planned start: 2026-05-01")
	assert.NotContains(t, body, "Planned completion:", "blank fields are omitted")
}

func TestDraftsForProjectNoEmailPermits(t *testing.T) {
	p := draftProject()
	p.RequiredPermits = []constants.PermitType{constants.PermitBuilding, constants.PermitUSACESection10}
	assert.Empty(t, DraftsForProject(p))
}
