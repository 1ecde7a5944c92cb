package workflow

import (
	"context"
	"errors"
	"testing"

	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	saves int
	err   error
}

func (f *fakeSaver) Save(ctx context.Context, p *models.Project) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	return nil
}

type fakeSnapshots struct {
	triggers []constants.VersionTrigger
	err      error
}

func (f *fakeSnapshots) SaveVersion(ctx context.Context, p *models.Project, trigger constants.VersionTrigger, description *string) (*models.ProjectVersion, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.triggers = append(f.triggers, trigger)
	return &models.ProjectVersion{ProjectID: p.ProjectID, Trigger: trigger}, nil
}

func completeProject() *models.Project {
	elev := 742.0
	lot := 12000.0
	front := 80.0
	p := baseProject()
	p.Owner = models.Owner{
		FirstName: "Pat", LastName: "Smith", Email: "pat@example.com",
		Phone: "555-0100", MailingAddress: "1 Lake Rd", ParcelNumber: "12-34-567",
	}
	p.Details = models.ProjectDetails{
		Category:                    constants.CategoryNewConstruction,
		ImprovementTypes:            []constants.ImprovementType{constants.ImprovementDock},
		Description:                 "New fixed-pier dock with two slips",
		EstimatedCost:               15000,
		PlannedStartDate:            "2026-04-01",
		PlannedCompletionDate:       "2026-06-30",
		InWater:                     true,
		WithinShorelineJurisdiction: true,
	}
	p.Site = models.SiteInfo{
		PropertyAddress: "100 Shoreline Dr", ParcelNumber: "12-34-567",
		ElevationFeet: &elev, LotSizeSqFt: &lot, WaterFrontageFt: &front,
	}
	return p
}

func TestNavigator_NextThroughAllStagesReachesLast(t *testing.T) {
	p := completeProject()
	saver := &fakeSaver{}
	snaps := &fakeSnapshots{}
	nav := NewNavigator(p, saver, snaps)

	for i := 0; i < int(constants.LastStage)-1; i++ {
		res, err := nav.Next(context.Background(), true)
		require.NoError(t, err)
		require.Equal(t, MoveAdvanced, res.Outcome, "step %d", i)
	}
	assert.Equal(t, constants.LastStage, nav.CurrentStage())
	assert.False(t, nav.CanGoForward())

	// Next at the terminal stage is a no-op.
	res, err := nav.Next(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, MoveNoop, res.Outcome)
}

func TestNavigator_BlockedNextIsNoopWithMessage(t *testing.T) {
	p := baseProject()
	p.CurrentStage = constants.StagePropertyOwner
	nav := NewNavigator(p, &fakeSaver{}, &fakeSnapshots{})

	res, err := nav.Next(context.Background(), true)
	require.NoError(t, err, "blocked moves never error")
	assert.Equal(t, MoveBlocked, res.Outcome)
	assert.NotEmpty(t, res.BlockingMessage)
	assert.Equal(t, constants.StagePropertyOwner, nav.CurrentStage())
}

func TestNavigator_WarningRequiresConfirmation(t *testing.T) {
	p := baseProject()
	p.CurrentStage = constants.StagePropertyOwner
	p.Owner = models.Owner{FirstName: "Pat", LastName: "Smith", Email: "pat@example.com"}
	nav := NewNavigator(p, &fakeSaver{}, &fakeSnapshots{})

	res, err := nav.Next(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, MoveNeedsConfirmation, res.Outcome)
	assert.NotEmpty(t, res.WarningMessage)
	assert.Equal(t, constants.StagePropertyOwner, nav.CurrentStage())

	res, err = nav.Next(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, MoveAdvanced, res.Outcome)
	assert.Equal(t, constants.StageProjectDetails, nav.CurrentStage())
}

func TestNavigator_StageCompleteSnapshotBeforeAdvance(t *testing.T) {
	p := completeProject()
	p.CurrentStage = constants.StagePropertyOwner
	snaps := &fakeSnapshots{}
	nav := NewNavigator(p, &fakeSaver{}, snaps)

	res, err := nav.Next(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, MoveAdvanced, res.Outcome)
	require.Len(t, snaps.triggers, 1)
	assert.Equal(t, constants.TriggerStageComplete, snaps.triggers[0])
}

func TestNavigator_FailedSnapshotBlocksTransition(t *testing.T) {
	p := completeProject()
	p.CurrentStage = constants.StagePropertyOwner
	saver := &fakeSaver{}
	snaps := &fakeSnapshots{err: errors.New("disk full")}
	nav := NewNavigator(p, saver, snaps)

	_, err := nav.Next(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, constants.StagePropertyOwner, nav.CurrentStage(), "pointer must not move")
	assert.Equal(t, 0, saver.saves, "nothing persisted after a failed snapshot")
}

func TestNavigator_FailedSaveRollsBackPointer(t *testing.T) {
	p := baseProject()
	saver := &fakeSaver{err: errors.New("db locked")}
	nav := NewNavigator(p, saver, &fakeSnapshots{})

	_, err := nav.Next(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, constants.StageWelcome, nav.CurrentStage())
	assert.Len(t, nav.History(), 1)
}

func TestNavigator_PreviousPopsAndNeverUnderflows(t *testing.T) {
	p := completeProject()
	nav := NewNavigator(p, &fakeSaver{}, &fakeSnapshots{})

	// No history yet: previous is a no-op, never an error.
	res, err := nav.Previous(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MoveNoop, res.Outcome)
	assert.False(t, nav.CanGoBack())

	for i := 0; i < 3; i++ {
		_, err := nav.Next(context.Background(), true)
		require.NoError(t, err)
	}
	assert.True(t, nav.CanGoBack())

	// Interleave far more previous calls than history entries.
	for i := 0; i < 10; i++ {
		_, err := nav.Previous(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, constants.StageWelcome, nav.CurrentStage())
	assert.Len(t, nav.History(), 1)
}

func TestNavigator_GoToStageSameStageNoop(t *testing.T) {
	p := completeProject()
	saver := &fakeSaver{}
	nav := NewNavigator(p, saver, &fakeSnapshots{})

	res, err := nav.GoToStage(context.Background(), constants.StageWelcome)
	require.NoError(t, err)
	assert.Equal(t, MoveNoop, res.Outcome)
	assert.Equal(t, 0, saver.saves)

	res, err = nav.GoToStage(context.Background(), constants.StagePropertyOwner)
	require.NoError(t, err)
	assert.Equal(t, MoveJumped, res.Outcome)
	assert.Equal(t, constants.StagePropertyOwner, nav.CurrentStage())

	res, err = nav.GoToStage(context.Background(), constants.StageID(99))
	require.NoError(t, err)
	assert.Equal(t, MoveBlocked, res.Outcome)
}

func TestNavigator_RefreshRequiredPermitsOnDetailsAdvance(t *testing.T) {
	p := completeProject()
	p.CurrentStage = constants.StageProjectDetails
	nav := NewNavigator(p, &fakeSaver{}, &fakeSnapshots{})

	res, err := nav.Next(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, MoveAdvanced, res.Outcome)

	// In-water project over the exemption threshold: hydraulic approval
	// and substantial development both land in the required set.
	assert.Contains(t, p.RequiredPermits, constants.PermitReservoirUse)
	assert.Contains(t, p.RequiredPermits, constants.PermitHydraulicApproval)
	assert.Contains(t, p.RequiredPermits, constants.PermitShorelineSubstantial)
	for _, pt := range p.RequiredPermits {
		assert.Contains(t, p.Permits, pt, "application entry for %s", pt)
	}
}
