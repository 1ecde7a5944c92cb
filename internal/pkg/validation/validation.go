package validation

import (
	"regexp"
	"strings"

	"shoredock-backend/internal/models"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// OwnerCanProceed is the minimal owner check that unblocks navigation:
// first name, last name, and a plausible email.
func OwnerCanProceed(o models.Owner) bool {
	return strings.TrimSpace(o.FirstName) != "" &&
		strings.TrimSpace(o.LastName) != "" &&
		IsValidEmail(o.Email)
}

// OwnerComplete requires every owner field.
func OwnerComplete(o models.Owner) bool {
	return OwnerCanProceed(o) &&
		strings.TrimSpace(o.Phone) != "" &&
		strings.TrimSpace(o.MailingAddress) != "" &&
		strings.TrimSpace(o.ParcelNumber) != ""
}

// OwnerMissingFields lists the optional owner fields still blank, in form
// order, for warning messages.
func OwnerMissingFields(o models.Owner) []string {
	var missing []string
	if strings.TrimSpace(o.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(o.MailingAddress) == "" {
		missing = append(missing, "mailing address")
	}
	if strings.TrimSpace(o.ParcelNumber) == "" {
		missing = append(missing, "parcel number")
	}
	return missing
}

// DetailsCanProceed: a description of at least 10 characters is enough to
// keep moving; everything else is collected later or warned about.
func DetailsCanProceed(d models.ProjectDetails) bool {
	return len(strings.TrimSpace(d.Description)) >= 10
}

// DetailsComplete requires cost, dates, category, and at least one
// improvement type on top of the description.
func DetailsComplete(d models.ProjectDetails) bool {
	return DetailsCanProceed(d) &&
		d.EstimatedCost > 0 &&
		d.PlannedStartDate != "" &&
		d.PlannedCompletionDate != "" &&
		d.Category != "" &&
		len(d.ImprovementTypes) > 0
}

func DetailsMissingFields(d models.ProjectDetails) []string {
	var missing []string
	if d.EstimatedCost <= 0 {
		missing = append(missing, "estimated cost")
	}
	if d.PlannedStartDate == "" {
		missing = append(missing, "start date")
	}
	if d.PlannedCompletionDate == "" {
		missing = append(missing, "completion date")
	}
	if d.Category == "" {
		missing = append(missing, "project category")
	}
	if len(d.ImprovementTypes) == 0 {
		missing = append(missing, "improvement types")
	}
	return missing
}

// SiteCanProceed requires only the property address.
func SiteCanProceed(s models.SiteInfo) bool {
	return strings.TrimSpace(s.PropertyAddress) != ""
}

// SiteComplete additionally requires parcel number, elevation, lot size,
// and water frontage.
func SiteComplete(s models.SiteInfo) bool {
	return SiteCanProceed(s) &&
		strings.TrimSpace(s.ParcelNumber) != "" &&
		s.ElevationFeet != nil &&
		s.LotSizeSqFt != nil &&
		s.WaterFrontageFt != nil
}

func SiteMissingFields(s models.SiteInfo) []string {
	var missing []string
	if strings.TrimSpace(s.ParcelNumber) == "" {
		missing = append(missing, "parcel number")
	}
	if s.ElevationFeet == nil {
		missing = append(missing, "elevation")
	}
	if s.LotSizeSqFt == nil {
		missing = append(missing, "lot size")
	}
	if s.WaterFrontageFt == nil {
		missing = append(missing, "water frontage")
	}
	return missing
}

// InsuranceComplete: nothing is required unless the user said they carry
// insurance, in which case carrier and policy number must be filled in.
func InsuranceComplete(i models.Insurance) bool {
	if !i.HasInsurance {
		return true
	}
	return strings.TrimSpace(i.Carrier) != "" && strings.TrimSpace(i.PolicyNumber) != ""
}

func InsuranceMissingFields(i models.Insurance) []string {
	if !i.HasInsurance {
		return nil
	}
	var missing []string
	if strings.TrimSpace(i.Carrier) == "" {
		missing = append(missing, "insurance carrier")
	}
	if strings.TrimSpace(i.PolicyNumber) == "" {
		missing = append(missing, "policy number")
	}
	return missing
}
