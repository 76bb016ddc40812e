package patterns

// Well-known family names referenced by the gate and the platform mapper.
const (
	FamilyNonAviationGoods     = "non_aviation_goods"
	FamilySecurityClearance    = "security_clearance"
	FamilyClearancePossible    = "clearance_possible"
	FamilySetAsideCodes        = "set_aside_codes"
	FamilySoleSource           = "sole_source"
	FamilyApprovedSourceList   = "approved_source_list"
	FamilyQPLQML               = "qpl_qml"
	FamilyTechDataUnavailable  = "tech_data_unavailable"
	FamilyExportControl        = "export_control"
	FamilyAMSCRestrictedCodes  = "amsc_restricted_codes"
	FamilySourceApprovalReq    = "source_approval_required"
	FamilyMilitaryPlatform     = "military_platform"
	FamilyWeaponsOrdnance      = "weapons_ordnance"
	FamilyNewPartsOnly         = "new_parts_only"
	FamilyBridgeContract       = "bridge_contract"
	FamilyIncumbentAdvantage   = "incumbent_advantage"
	FamilyFirstArticle         = "first_article_testing"
	FamilySubcontractingBan    = "subcontracting_prohibited"
	FamilyContractVehicle      = "contract_vehicle_required"
	FamilyExperimental         = "experimental_programs"
	FamilyITSystemAccess       = "it_system_access"
	FamilyJCPCertification     = "jcp_certification"
	FamilyAgencyCertifications = "agency_certifications"
	FamilyWarrantyObligations  = "warranty_obligations"
	FamilyCADFormatRequired    = "cad_format_required"

	// Override and positive-signal families.
	FamilyAMSCOpenCodes      = "amsc_open_codes"
	FamilyCommercialItems    = "commercial_items"
	FamilyFAA8130            = "faa_8130"
	FamilyTDPPositive        = "tdp_positive"
	FamilyRefurbishedAllowed = "refurbished_allowed"
	FamilyCivilianPlatform   = "civilian_platform"
	FamilyAviationPlatform   = "aviation_platform"
)

// FamilyCategories maps each knock-out family to its category id. Families
// not present here (the override and positive-signal families) never score.
var FamilyCategories = map[string]int{
	FamilyNonAviationGoods:     2,
	FamilySecurityClearance:    3,
	FamilyClearancePossible:    3,
	FamilySetAsideCodes:        4,
	FamilySoleSource:           5,
	FamilyApprovedSourceList:   5,
	FamilyQPLQML:               5,
	FamilyTechDataUnavailable:  6,
	FamilyExportControl:        7,
	FamilyAMSCRestrictedCodes:  8,
	FamilySourceApprovalReq:    9,
	FamilyMilitaryPlatform:     10,
	FamilyWeaponsOrdnance:      10,
	FamilyNewPartsOnly:         11,
	FamilyBridgeContract:       12,
	FamilyIncumbentAdvantage:   12,
	FamilyFirstArticle:         12,
	FamilySubcontractingBan:    13,
	FamilyContractVehicle:      14,
	FamilyExperimental:         15,
	FamilyITSystemAccess:       16,
	FamilyJCPCertification:     16,
	FamilyAgencyCertifications: 17,
	FamilyWarrantyObligations:  18,
	FamilyCADFormatRequired:    19,
}

// CategoryFamilies returns the family names mapped to a category id.
func CategoryFamilies(categoryID int) []string {
	var out []string
	for name, id := range FamilyCategories {
		if id == categoryID {
			out = append(out, name)
		}
	}
	return out
}

// OverrideFamilies maps a category id to the override-signal families that
// cancel its block. Only categories 8, 9, 10, and 11 are overridable.
var OverrideFamilies = map[int][]string{
	8:  {FamilyAMSCOpenCodes, FamilyCommercialItems},
	9:  {FamilyFAA8130, FamilyAMSCOpenCodes},
	10: {FamilyAMSCOpenCodes, FamilyCommercialItems, FamilyFAA8130},
	11: {FamilyCommercialItems, FamilyRefurbishedAllowed},
}

// PositiveFamilies are signals that, absent any blocker, justify a GO.
var PositiveFamilies = []string{
	FamilyAviationPlatform,
	FamilyFAA8130,
	FamilyCommercialItems,
	FamilyRefurbishedAllowed,
	FamilyTDPPositive,
	FamilyAMSCOpenCodes,
	FamilyCivilianPlatform,
}

// FurtherAnalysisHints maps trigger families to follow-up items attached to
// INDETERMINATE results.
var FurtherAnalysisHints = map[string]string{
	FamilyJCPCertification:  "Verify JCP certification and JEDMICS access before bidding",
	FamilyClearancePossible: "Confirm whether a facility clearance is actually required",
	FamilyQPLQML:            "Check whether the firm or its OEM partners appear on the QPL",
	FamilyContractVehicle:   "Confirm access to the required contract vehicle",
}
