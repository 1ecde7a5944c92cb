package emails

import (
	"fmt"
	"strings"

	"shoredock-backend/internal/application/permits"
	"shoredock-backend/internal/constants"
	"shoredock-backend/internal/models"
)

// Draft is a ready-to-copy submission email for one permit application.
// Nothing is sent from here; the wizard hands drafts to the user's own
// mail client.
type Draft struct {
	PermitType  constants.PermitType `json:"permit_type"`
	DisplayName string               `json:"display_name"`
	AgencyName  string               `json:"agency_name"`
	To          string               `json:"to"`
	Subject     string               `json:"subject"`
	Body        string               `json:"body"`
}

// DraftsForProject builds one draft per required permit whose agency
// accepts email submissions. Online and mail permits are skipped.
func DraftsForProject(p *models.Project) []Draft {
	var drafts []Draft
	for _, permitType := range p.RequiredPermits {
		entry, ok := permits.Lookup(permitType)
		if !ok || entry.SubmitMethod != constants.SubmitEmail || entry.ContactEmail == "" {
			continue
		}
		drafts = append(drafts, Draft{
			PermitType:  permitType,
			DisplayName: entry.DisplayName,
			AgencyName:  entry.AgencyName,
			To:          entry.ContactEmail,
			Subject:     draftSubject(entry, p),
			Body:        draftBody(entry, p),
		})
	}
	return drafts
}

func draftSubject(entry permits.CatalogEntry, p *models.Project) string {
	subject := entry.DisplayName + " Application"
	if p.Site.PropertyAddress != "" {
		subject += " - " + p.Site.PropertyAddress
	}
	return subject
}

func draftBody(entry permits.CatalogEntry, p *models.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", entry.AgencyName)
	fmt.Fprintf(&b, "I am writing to apply for a %s under %s.\n\n",
		entry.DisplayName, entry.RegulatoryBasis)

	b.WriteString("Applicant:\n")
	writeField(&b, "Name", strings.TrimSpace(p.Owner.FirstName+" "+p.Owner.LastName))
	writeField(&b, "Email", p.Owner.Email)
	writeField(&b, "Phone", p.Owner.Phone)

	b.WriteString("\nProperty:\n")
	writeField(&b, "Address", p.Site.PropertyAddress)
	writeField(&b, "Parcel number", p.Site.ParcelNumber)

	b.WriteString("\nProposed work:\n")
	writeField(&b, "Description", p.Details.Description)
	if len(p.Details.ImprovementTypes) > 0 {
		writeField(&b, "Improvements", joinImprovements(p.Details.ImprovementTypes))
	}
	if p.Details.EstimatedCost > 0 {
		writeField(&b, "Estimated cost", fmt.Sprintf("$%.2f", p.Details.EstimatedCost))
	}
	writeField(&b, "Planned start", p.Details.PlannedStartDate)
	writeField(&b, "Planned completion", p.Details.PlannedCompletionDate)

	b.WriteString("\nA site plan and supporting documents are attached. ")
	b.WriteString("Please let me know if any further information is required.\n\n")
	b.WriteString("Thank you,\n")
	b.WriteString(strings.TrimSpace(p.Owner.FirstName + " " + p.Owner.LastName))
	b.WriteString("\n")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, value)
}

func joinImprovements(types []constants.ImprovementType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = strings.ReplaceAll(string(t), "_", " ")
	}
	return strings.Join(parts, ", ")
}
