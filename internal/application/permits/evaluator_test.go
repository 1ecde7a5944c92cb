package permits

import (
	"math"
	"testing"

	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRec(recs []Recommendation, t constants.PermitType) *Recommendation {
	for i := range recs {
		if recs[i].PermitType == t {
			return &recs[i]
		}
	}
	return nil
}

func TestDetermine_ReservoirPermitAlwaysPresent(t *testing.T) {
	inputs := []models.ProjectDetails{
		{},
		{EstimatedCost: 250000, InWater: true, BelowHighWaterLine: true, WithinShorelineJurisdiction: true},
		{ImprovementTypes: []constants.ImprovementType{constants.ImprovementBoathouse}},
	}
	for _, d := range inputs {
		recs := DetermineRequiredPermits(d, nil)
		count := 0
		for _, r := range recs {
			if r.PermitType == constants.PermitReservoirUse {
				count++
				assert.True(t, r.IsRequired)
			}
		}
		assert.Equal(t, 1, count, "exactly one reservoir-use entry")
		assert.Equal(t, constants.PermitReservoirUse, recs[0].PermitType, "reservoir entry comes first")
	}
}

func TestDetermine_ShorelineExclusivity(t *testing.T) {
	cases := []struct {
		cost       float64
		wantSimple bool
	}{
		{0, true},
		{7046.99, true},
		{7047, true}, // threshold is inclusive
		{7047.01, false},
		{500000, false},
	}
	for _, tc := range cases {
		recs := DetermineRequiredPermits(models.ProjectDetails{EstimatedCost: tc.cost}, nil)
		simple := findRec(recs, constants.PermitShorelineExemption)
		full := findRec(recs, constants.PermitShorelineSubstantial)
		if tc.wantSimple {
			require.NotNil(t, simple, "cost %.2f", tc.cost)
			assert.Nil(t, full, "cost %.2f", tc.cost)
		} else {
			require.NotNil(t, full, "cost %.2f", tc.cost)
			assert.Nil(t, simple, "cost %.2f", tc.cost)
		}
	}
}

func TestDetermine_ShorelineRequiredFollowsJurisdictionFlag(t *testing.T) {
	recs := DetermineRequiredPermits(models.ProjectDetails{EstimatedCost: 100, WithinShorelineJurisdiction: true}, nil)
	require.NotNil(t, findRec(recs, constants.PermitShorelineExemption))
	assert.True(t, findRec(recs, constants.PermitShorelineExemption).IsRequired)

	recs = DetermineRequiredPermits(models.ProjectDetails{EstimatedCost: 100}, nil)
	assert.False(t, findRec(recs, constants.PermitShorelineExemption).IsRequired)
}

func TestDetermine_HydraulicPresenceAndReasons(t *testing.T) {
	// Absent when no water contact.
	recs := DetermineRequiredPermits(models.ProjectDetails{}, nil)
	assert.Nil(t, findRec(recs, constants.PermitHydraulicApproval))

	// One flag: one flag reason plus the boilerplate line.
	recs = DetermineRequiredPermits(models.ProjectDetails{InWater: true}, nil)
	hpa := findRec(recs, constants.PermitHydraulicApproval)
	require.NotNil(t, hpa)
	assert.True(t, hpa.IsRequired)
	assert.Len(t, hpa.Reasons, 2)

	// Both flags: two flag reasons plus boilerplate.
	recs = DetermineRequiredPermits(models.ProjectDetails{InWater: true, BelowHighWaterLine: true}, nil)
	hpa = findRec(recs, constants.PermitHydraulicApproval)
	require.NotNil(t, hpa)
	assert.Len(t, hpa.Reasons, 3)

	recs = DetermineRequiredPermits(models.ProjectDetails{BelowHighWaterLine: true}, nil)
	hpa = findRec(recs, constants.PermitHydraulicApproval)
	require.NotNil(t, hpa)
	assert.Len(t, hpa.Reasons, 2)
	assert.NotContains(t, hpa.Reasons[0], "in the water")
}

func TestDetermine_ScenarioA_LowCostJurisdiction(t *testing.T) {
	d := models.ProjectDetails{
		EstimatedCost:               7047,
		ImprovementTypes:            []constants.ImprovementType{},
		InWater:                     false,
		BelowHighWaterLine:          false,
		WithinShorelineJurisdiction: true,
	}
	recs := DetermineRequiredPermits(d, nil)
	require.Len(t, recs, 2)
	assert.Equal(t, constants.PermitReservoirUse, recs[0].PermitType)
	assert.Equal(t, constants.PermitShorelineExemption, recs[1].PermitType)
	assert.True(t, recs[1].IsRequired)
}

func TestDetermine_ScenarioB_MooringPile(t *testing.T) {
	d := models.ProjectDetails{
		ImprovementTypes: []constants.ImprovementType{constants.ImprovementMooringPile},
		EstimatedCost:    3000,
		InWater:          false,
	}
	recs := DetermineRequiredPermits(d, nil)
	fed := findRec(recs, constants.PermitUSACESection10)
	require.NotNil(t, fed)
	assert.False(t, fed.IsRequired)
	assert.True(t, fed.IsLikelyRequired)
}

func TestDetermine_FederalReasonOnlyTriggers(t *testing.T) {
	// Boat ramp alone: entry present but likely flag stays down.
	d := models.ProjectDetails{
		ImprovementTypes: []constants.ImprovementType{constants.ImprovementBoatRamp},
	}
	recs := DetermineRequiredPermits(d, nil)
	fed := findRec(recs, constants.PermitUSACESection10)
	require.NotNil(t, fed)
	assert.False(t, fed.IsLikelyRequired)
	assert.Len(t, fed.Reasons, 1)

	// Both water flags without any likely trigger: reason only.
	d = models.ProjectDetails{InWater: true, BelowHighWaterLine: true, EstimatedCost: 500}
	recs = DetermineRequiredPermits(d, nil)
	fed = findRec(recs, constants.PermitUSACESection10)
	require.NotNil(t, fed)
	assert.False(t, fed.IsLikelyRequired)
}

func TestDetermine_FederalOmittedWhenNoTriggers(t *testing.T) {
	recs := DetermineRequiredPermits(models.ProjectDetails{EstimatedCost: 5000}, nil)
	assert.Nil(t, findRec(recs, constants.PermitUSACESection10))
}

func TestDetermine_BuildingTriggers(t *testing.T) {
	// Boathouse: likely.
	recs := DetermineRequiredPermits(models.ProjectDetails{
		ImprovementTypes: []constants.ImprovementType{constants.ImprovementBoathouse},
	}, nil)
	b := findRec(recs, constants.PermitBuilding)
	require.NotNil(t, b)
	assert.True(t, b.IsLikelyRequired)

	// Covered-structure keyword in description: likely.
	recs = DetermineRequiredPermits(models.ProjectDetails{
		Description: "Replace the dock and add a roofed storage area",
	}, nil)
	b = findRec(recs, constants.PermitBuilding)
	require.NotNil(t, b)
	assert.True(t, b.IsLikelyRequired)

	// High valuation alone: reason only, not likely.
	recs = DetermineRequiredPermits(models.ProjectDetails{EstimatedCost: 60000}, nil)
	b = findRec(recs, constants.PermitBuilding)
	require.NotNil(t, b)
	assert.False(t, b.IsLikelyRequired)
	assert.Len(t, b.Reasons, 1)

	// Electrical keyword: likely.
	recs = DetermineRequiredPermits(models.ProjectDetails{
		Description: "New boat lift with wiring for the winch",
	}, nil)
	b = findRec(recs, constants.PermitBuilding)
	require.NotNil(t, b)
	assert.True(t, b.IsLikelyRequired)

	// Nothing triggers: omitted.
	recs = DetermineRequiredPermits(models.ProjectDetails{Description: "simple repair"}, nil)
	assert.Nil(t, findRec(recs, constants.PermitBuilding))
}

func TestDetermine_EmptyImprovementsStillYieldsBaseline(t *testing.T) {
	recs := DetermineRequiredPermits(models.ProjectDetails{}, nil)
	require.Len(t, recs, 2)
	assert.Equal(t, constants.PermitReservoirUse, recs[0].PermitType)
	assert.Equal(t, constants.PermitShorelineExemption, recs[1].PermitType)
}

func TestDetermine_NonFiniteElevationTreatedAsAbsent(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	base := len(DetermineRequiredPermits(models.ProjectDetails{}, nil)[0].Reasons)
	assert.Equal(t, base, len(DetermineRequiredPermits(models.ProjectDetails{}, &nan)[0].Reasons))
	assert.Equal(t, base, len(DetermineRequiredPermits(models.ProjectDetails{}, &inf)[0].Reasons))

	elev := 742.5
	assert.Equal(t, base+1, len(DetermineRequiredPermits(models.ProjectDetails{}, &elev)[0].Reasons))
}

func TestSummarize_PartitionsTriState(t *testing.T) {
	d := models.ProjectDetails{
		EstimatedCost:               20000,
		ImprovementTypes:            []constants.ImprovementType{constants.ImprovementMooringPile, constants.ImprovementBoatRamp},
		InWater:                     true,
		WithinShorelineJurisdiction: true,
		Description:                 "Install mooring piles and a ramp",
	}
	recs := DetermineRequiredPermits(d, nil)
	s := Summarize(recs)

	for _, r := range s.Required {
		assert.True(t, r.IsRequired)
	}
	for _, r := range s.Likely {
		assert.False(t, r.IsRequired)
		assert.True(t, r.IsLikelyRequired)
	}
	for _, r := range s.Possible {
		assert.False(t, r.IsRequired)
		assert.False(t, r.IsLikelyRequired)
	}
	assert.Equal(t, len(recs), len(s.Required)+len(s.Likely)+len(s.Possible))
	// Reservoir, shoreline (jurisdiction), hydraulic all required.
	assert.Len(t, s.Required, 3)
	// Federal likely via mooring pile + in-water cost.
	assert.Len(t, s.Likely, 1)
}

func TestCatalog_CoversEveryPermitType(t *testing.T) {
	for _, pt := range constants.AllPermitTypes {
		e, ok := Lookup(pt)
		require.True(t, ok, string(pt))
		assert.NotEmpty(t, e.DisplayName)
		assert.NotEmpty(t, e.AgencyName)
		assert.NotEmpty(t, e.RegulatoryBasis)
	}
	assert.Len(t, All(), len(constants.AllPermitTypes))

	reservoir, _ := Lookup(constants.PermitReservoirUse)
	assert.True(t, reservoir.AlwaysRequired)
	assert.Equal(t, constants.SubmitEmail, reservoir.SubmitMethod)
	assert.NotEmpty(t, reservoir.ContactEmail)
}
