package permits

import (
	"fmt"
	"math"
	"strings"

	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"
)

// ShorelineExemptionThreshold is the inclusive cost boundary below which
// the simplified shoreline review applies. Versioned constant; update when
// the state republishes the exemption level.
const ShorelineExemptionThreshold = 7047.0

// FederalInWaterCostThreshold: in-water work above this cost makes a
// federal permit likely.
const FederalInWaterCostThreshold = 10000.0

// BuildingCostThreshold: above this cost the building department usually
// wants a look, noted as a reason without raising the likely flag.
const BuildingCostThreshold = 50000.0

var coveredKeywords = []string{"covered", "roof", "roofed", "enclosed", "canopy"}
var electricalKeywords = []string{"electric", "electrical", "wiring", "lighting", "power"}

// Recommendation is a derived verdict on whether one permit applies.
// Never persisted; always recomputed wholesale from project details so
// reasons can never go stale.
type Recommendation struct {
	PermitType             constants.PermitType   `json:"permit_type"`
	DisplayName            string                 `json:"display_name"`
	AgencyName             string                 `json:"agency_name"`
	IsRequired             bool                   `json:"is_required"`
	IsLikelyRequired       bool                   `json:"is_likely_required"`
	Reasons                []string               `json:"reasons"`
	RegulatoryBasis        string                 `json:"regulatory_basis"`
	FeeEstimate            string                 `json:"fee_estimate,omitempty"`
	ProcessingTimeEstimate string                 `json:"processing_time_estimate,omitempty"`
	SubmitMethod           constants.SubmitMethod `json:"submit_method"`
	ContactEmail           string                 `json:"contact_email,omitempty"`
	ContactPhone           string                 `json:"contact_phone,omitempty"`
	PortalURL              string                 `json:"portal_url,omitempty"`
}

func fromCatalog(t constants.PermitType, required, likely bool, reasons []string) Recommendation {
	e, _ := Lookup(t)
	return Recommendation{
		PermitType:             t,
		DisplayName:            e.DisplayName,
		AgencyName:             e.AgencyName,
		IsRequired:             required,
		IsLikelyRequired:       likely,
		Reasons:                reasons,
		RegulatoryBasis:        e.RegulatoryBasis,
		FeeEstimate:            e.FeeEstimate,
		ProcessingTimeEstimate: e.ProcessingTimeEstimate,
		SubmitMethod:           e.SubmitMethod,
		ContactEmail:           e.ContactEmail,
		ContactPhone:           e.ContactPhone,
		PortalURL:              e.PortalURL,
	}
}

func hasImprovement(d models.ProjectDetails, t constants.ImprovementType) bool {
	for _, i := range d.ImprovementTypes {
		if i == t {
			return true
		}
	}
	return false
}

func descriptionContains(d models.ProjectDetails, keywords []string) bool {
	desc := strings.ToLower(d.Description)
	for _, kw := range keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// DetermineRequiredPermits maps project details and site elevation to the
// ordered list of permit recommendations. Deterministic, side-effect-free,
// and total: unknown or absent fields degrade to "not applicable". Each
// rule is evaluated independently; no short-circuiting between rules.
func DetermineRequiredPermits(d models.ProjectDetails, siteElevation *float64) []Recommendation {
	recs := make([]Recommendation, 0, 6)

	// Non-finite elevations come from upstream GIS glitches; treat as absent.
	if siteElevation != nil && (math.IsNaN(*siteElevation) || math.IsInf(*siteElevation, 0)) {
		siteElevation = nil
	}

	// Rule 1: the reservoir-use permit applies to every project on the lake.
	reservoirReasons := []string{
		"All construction or modification on reservoir shoreline property requires authorization from the reservoir authority.",
	}
	if siteElevation != nil {
		reservoirReasons = append(reservoirReasons,
			fmt.Sprintf("Site elevation of %.1f ft places the property within the authority's managed shoreline band.", *siteElevation))
	}
	recs = append(recs, fromCatalog(constants.PermitReservoirUse, true, false, reservoirReasons))

	// Rule 2: exactly one shoreline review track, chosen by cost
	// (threshold inclusive). Required when the property sits within
	// shoreline jurisdiction.
	if d.EstimatedCost <= ShorelineExemptionThreshold {
		reasons := []string{
			fmt.Sprintf("Estimated cost of $%.0f is at or below the $%.0f exemption threshold, so the simplified review track applies.", d.EstimatedCost, ShorelineExemptionThreshold),
		}
		if d.WithinShorelineJurisdiction {
			reasons = append(reasons, "The property lies within shoreline jurisdiction.")
		} else {
			reasons = append(reasons, "Confirm with the county whether the property lies within shoreline jurisdiction.")
		}
		recs = append(recs, fromCatalog(constants.PermitShorelineExemption, d.WithinShorelineJurisdiction, false, reasons))
	} else {
		reasons := []string{
			fmt.Sprintf("Estimated cost of $%.0f exceeds the $%.0f exemption threshold, triggering full substantial-development review.", d.EstimatedCost, ShorelineExemptionThreshold),
		}
		if d.WithinShorelineJurisdiction {
			reasons = append(reasons, "The property lies within shoreline jurisdiction.")
		} else {
			reasons = append(reasons, "Confirm with the county whether the property lies within shoreline jurisdiction.")
		}
		recs = append(recs, fromCatalog(constants.PermitShorelineSubstantial, d.WithinShorelineJurisdiction, false, reasons))
	}

	// Rule 3: state hydraulic review for any work touching the water.
	// One reason per true flag plus the fixed hydraulic-code statement.
	if d.InWater || d.BelowHighWaterLine {
		var reasons []string
		if d.InWater {
			reasons = append(reasons, "The project includes work conducted in the water.")
		}
		if d.BelowHighWaterLine {
			reasons = append(reasons, "The project includes work below the ordinary high water line.")
		}
		reasons = append(reasons, "Work that uses, diverts, obstructs, or changes the bed or flow of state waters requires hydraulic review.")
		recs = append(recs, fromCatalog(constants.PermitHydraulicApproval, true, false, reasons))
	}

	// Rule 4: federal (Army Corps) triggers. Omitted entirely when nothing
	// triggers.
	if reasons, likely := federalTriggers(d); len(reasons) > 0 {
		recs = append(recs, fromCatalog(constants.PermitUSACESection10, false, likely, reasons))
	}

	// Rule 5: county building permit triggers. Omitted entirely when
	// nothing triggers.
	if reasons, likely := buildingTriggers(d); len(reasons) > 0 {
		recs = append(recs, fromCatalog(constants.PermitBuilding, false, likely, reasons))
	}

	return recs
}

// federalTriggers evaluates the Army Corps helper predicate. Some triggers
// raise the likely flag, others contribute a reason only.
// TODO: confirm with the product owner whether boat ramps (here) and high
// valuation (buildingTriggers) should also raise the likely flag.
func federalTriggers(d models.ProjectDetails) (reasons []string, likely bool) {
	if hasImprovement(d, constants.ImprovementMooringPile) {
		reasons = append(reasons, "Mooring piles placed in navigable waters fall under Section 10 jurisdiction.")
		likely = true
	}
	if d.InWater && d.EstimatedCost > FederalInWaterCostThreshold {
		reasons = append(reasons, fmt.Sprintf("In-water work estimated above $%.0f typically draws Corps review.", FederalInWaterCostThreshold))
		likely = true
	}
	if hasImprovement(d, constants.ImprovementBoatRamp) {
		// Reason only: ramps are usually covered by a regional general permit.
		reasons = append(reasons, "Boat ramps may qualify under a regional general permit; verify with the Corps.")
	}
	if hasImprovement(d, constants.ImprovementBulkhead) {
		reasons = append(reasons, "Bulkheads at or below the high water line are regulated fill under Section 404.")
		likely = true
	}
	if d.BelowHighWaterLine && d.InWater {
		reasons = append(reasons, "Combined in-water and below-high-water-line work widens the area subject to federal jurisdiction.")
	}
	return reasons, likely
}

// buildingTriggers evaluates the county building-permit helper predicate.
// Same likely/reason-only split discipline as federalTriggers.
func buildingTriggers(d models.ProjectDetails) (reasons []string, likely bool) {
	if hasImprovement(d, constants.ImprovementBoathouse) {
		reasons = append(reasons, "Boathouses are enclosed structures and need structural plan review.")
		likely = true
	}
	if descriptionContains(d, coveredKeywords) {
		reasons = append(reasons, "The description mentions a covered or enclosed structure, which requires a building permit.")
		likely = true
	}
	if d.EstimatedCost > BuildingCostThreshold {
		// Reason only: valuation alone does not settle whether a habitable
		// or roofed structure is involved.
		reasons = append(reasons, fmt.Sprintf("Project valuation above $%.0f commonly requires building department sign-off.", BuildingCostThreshold))
	}
	if descriptionContains(d, electricalKeywords) {
		reasons = append(reasons, "The description mentions electrical work, which requires permitting and inspection.")
		likely = true
	}
	return reasons, likely
}

// Summary partitions recommendations into the tri-state buckets, keeping
// catalog order within each bucket.
type Summary struct {
	Required []Recommendation `json:"required"`
	Likely   []Recommendation `json:"likely"`
	Possible []Recommendation `json:"possible"`
}

func Summarize(recs []Recommendation) Summary {
	var s Summary
	for _, r := range recs {
		switch {
		case r.IsRequired:
			s.Required = append(s.Required, r)
		case r.IsLikelyRequired:
			s.Likely = append(s.Likely, r)
		default:
			s.Possible = append(s.Possible, r)
		}
	}
	return s
}
