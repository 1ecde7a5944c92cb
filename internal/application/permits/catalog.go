package permits

import (
	"shoredock-backend/internal/constants"
)

// CatalogEntry is immutable agency/routing configuration for one permit
// type. The catalog is the single source of routing truth for the email
// and document generators.
type CatalogEntry struct {
	PermitType             constants.PermitType   `json:"permit_type"`
	DisplayName            string                 `json:"display_name"`
	AgencyName             string                 `json:"agency_name"`
	RegulatoryBasis        string                 `json:"regulatory_basis"`
	FeeEstimate            string                 `json:"fee_estimate,omitempty"`
	ProcessingTimeEstimate string                 `json:"processing_time_estimate,omitempty"`
	SubmitMethod           constants.SubmitMethod `json:"submit_method"`
	ContactEmail           string                 `json:"contact_email,omitempty"`
	ContactPhone           string                 `json:"contact_phone,omitempty"`
	PortalURL              string                 `json:"portal_url,omitempty"`
	AlwaysRequired         bool                   `json:"always_required"`
}

var catalog = map[constants.PermitType]CatalogEntry{
	constants.PermitReservoirUse: {
		PermitType:             constants.PermitReservoirUse,
		DisplayName:            "Reservoir Land Use Permit",
		AgencyName:             "Lakehaven Reservoir Authority",
		RegulatoryBasis:        "Reservoir Shoreline Management Plan §4.1",
		FeeEstimate:            "$150",
		ProcessingTimeEstimate: "4-6 weeks",
		SubmitMethod:           constants.SubmitEmail,
		ContactEmail:           "shoreline.permits@lakehaven.gov",
		ContactPhone:           "(555) 412-8800",
		AlwaysRequired:         true,
	},
	constants.PermitShorelineExemption: {
		PermitType:             constants.PermitShorelineExemption,
		DisplayName:            "Shoreline Exemption (Simplified Review)",
		AgencyName:             "County Planning & Community Development",
		RegulatoryBasis:        "Shoreline Management Act, RCW 90.58.030(3)(e)",
		FeeEstimate:            "$95",
		ProcessingTimeEstimate: "2-4 weeks",
		SubmitMethod:           constants.SubmitEmail,
		ContactEmail:           "shoreline@county-planning.gov",
		ContactPhone:           "(555) 412-7210",
	},
	constants.PermitShorelineSubstantial: {
		PermitType:             constants.PermitShorelineSubstantial,
		DisplayName:            "Shoreline Substantial Development Permit",
		AgencyName:             "County Planning & Community Development",
		RegulatoryBasis:        "Shoreline Management Act, RCW 90.58.140",
		FeeEstimate:            "$1,200+",
		ProcessingTimeEstimate: "3-6 months",
		SubmitMethod:           constants.SubmitOnline,
		ContactPhone:           "(555) 412-7210",
		PortalURL:              "https://permits.county-planning.gov/shoreline",
	},
	constants.PermitHydraulicApproval: {
		PermitType:             constants.PermitHydraulicApproval,
		DisplayName:            "Hydraulic Project Approval (HPA)",
		AgencyName:             "State Department of Fish & Wildlife",
		RegulatoryBasis:        "Hydraulic Code, RCW 77.55",
		FeeEstimate:            "$150",
		ProcessingTimeEstimate: "45 days",
		SubmitMethod:           constants.SubmitOnline,
		PortalURL:              "https://apps.wildlife.state.gov/aps",
	},
	constants.PermitUSACESection10: {
		PermitType:             constants.PermitUSACESection10,
		DisplayName:            "Section 10 / Section 404 Permit",
		AgencyName:             "U.S. Army Corps of Engineers",
		RegulatoryBasis:        "Rivers and Harbors Act §10; Clean Water Act §404",
		ProcessingTimeEstimate: "60-120 days",
		SubmitMethod:           constants.SubmitMail,
		ContactPhone:           "(555) 764-3495",
	},
	constants.PermitBuilding: {
		PermitType:             constants.PermitBuilding,
		DisplayName:            "Building Permit",
		AgencyName:             "County Building Department",
		RegulatoryBasis:        "International Building Code as adopted by county ordinance",
		FeeEstimate:            "varies with valuation",
		ProcessingTimeEstimate: "2-8 weeks",
		SubmitMethod:           constants.SubmitOnline,
		ContactPhone:           "(555) 412-7300",
		PortalURL:              "https://permits.county-building.gov",
	},
}

// Lookup returns the catalog entry for a permit type.
func Lookup(t constants.PermitType) (CatalogEntry, bool) {
	e, ok := catalog[t]
	return e, ok
}

// All returns catalog entries in catalog order.
func All() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(constants.AllPermitTypes))
	for _, t := range constants.AllPermitTypes {
		entries = append(entries, catalog[t])
	}
	return entries
}
