package constants

// ImprovementType is one kind of planned shoreline improvement. A project
// carries a set of these.
type ImprovementType string

const (
	ImprovementDock          ImprovementType = "dock"
	ImprovementBoatLift      ImprovementType = "boat_lift"
	ImprovementBoathouse     ImprovementType = "boathouse"
	ImprovementBulkhead      ImprovementType = "bulkhead"
	ImprovementMooringPile   ImprovementType = "mooring_pile"
	ImprovementBoatRamp      ImprovementType = "boat_ramp"
	ImprovementDredging      ImprovementType = "dredging"
	ImprovementStairsWalkway ImprovementType = "stairs_walkway"
	ImprovementOther         ImprovementType = "other"
)

var AllImprovementTypes = []ImprovementType{
	ImprovementDock,
	ImprovementBoatLift,
	ImprovementBoathouse,
	ImprovementBulkhead,
	ImprovementMooringPile,
	ImprovementBoatRamp,
	ImprovementDredging,
	ImprovementStairsWalkway,
	ImprovementOther,
}

func ValidImprovementType(i ImprovementType) bool {
	for _, t := range AllImprovementTypes {
		if t == i {
			return true
		}
	}
	return false
}

// ProjectCategory distinguishes new construction from changes to an
// existing structure.
type ProjectCategory string

const (
	CategoryNewConstruction ProjectCategory = "new_construction"
	CategoryModification    ProjectCategory = "modification"
)

func ValidProjectCategory(c ProjectCategory) bool {
	return c == CategoryNewConstruction || c == CategoryModification
}
