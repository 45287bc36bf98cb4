package diag

// Category помечает класс нарушения. Набор закрыт: каждая проверка пишет
// ровно в одну категорию, новые категории добавляются только вместе с новой
// проверкой.
type Category uint8

const (
	// Structural findings raised while the LEF document is being built.
	SemicolonSpacing Category = iota
	MissingPropertyDefinitions
	MissingEndLibrary
	MangledCellEnd
	MissingCellEnd
	UnknownPinProperty
	UnknownCellProperty
	UnknownLayer

	// Per-cell property presence and value findings.
	MissingOrigin
	StrangeOrigin
	MissingClass
	StrangeClass
	MissingSymmetry
	StrangeSymmetry
	MissingSize
	MissingSite
	StrangeSite

	// Per-pin property presence and value findings.
	MissingDirection
	StrangeDirection
	MissingUse
	StrangeUse

	MissingViaObs

	// Cross-file findings against Liberty.
	LibMissingCell
	LibMissingPin
	LefMissingCell
	LefMissingPin
	AreaMismatch
	PinPropertyMismatch

	numCategories
)

// Categories returns every category in report order.
func Categories() []Category {
	out := make([]Category, 0, int(numCategories))
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

var categoryTitles = [numCategories]string{
	SemicolonSpacing:           "Lines with a semicolon touching the last token",
	MissingPropertyDefinitions: "Missing PROPERTYDEFINITIONS block",
	MissingEndLibrary:          "Missing END LIBRARY token",
	MangledCellEnd:             "Cell END does not match the cell name",
	MissingCellEnd:             "Cell without an END line",
	UnknownPinProperty:         "Unknown pin property",
	UnknownCellProperty:        "Unknown cell property",
	UnknownLayer:               "Unknown layer",
	MissingOrigin:              "Missing ORIGIN",
	StrangeOrigin:              "Strange ORIGIN",
	MissingClass:               "Missing CLASS",
	StrangeClass:               "Strange CLASS",
	MissingSymmetry:            "Missing SYMMETRY",
	StrangeSymmetry:            "Strange SYMMETRY",
	MissingSize:                "Missing SIZE",
	MissingSite:                "Missing SITE",
	StrangeSite:                "Strange SITE",
	MissingDirection:           "Missing DIRECTION",
	StrangeDirection:           "Strange DIRECTION",
	MissingUse:                 "Missing USE",
	StrangeUse:                 "Strange USE",
	MissingViaObs:              "Via used in a PORT without an OBS entry",
	LibMissingCell:             "Cells missing from Liberty",
	LibMissingPin:              "Pins missing from Liberty",
	LefMissingCell:             "Cells missing from LEF",
	LefMissingPin:              "Pins missing from LEF",
	AreaMismatch:               "SIZE area does not match Liberty area",
	PinPropertyMismatch:        "Pin property differs between LEF and Liberty",
}

var categoryNames = [numCategories]string{
	SemicolonSpacing:           "semicolon_spacing",
	MissingPropertyDefinitions: "missing_property_definitions",
	MissingEndLibrary:          "missing_end_library",
	MangledCellEnd:             "mangled_cell_end",
	MissingCellEnd:             "missing_cell_end",
	UnknownPinProperty:         "unknown_pin_property",
	UnknownCellProperty:        "unknown_cell_property",
	UnknownLayer:               "unknown_layer",
	MissingOrigin:              "missing_origin",
	StrangeOrigin:              "strange_origin",
	MissingClass:               "missing_class",
	StrangeClass:               "strange_class",
	MissingSymmetry:            "missing_symmetry",
	StrangeSymmetry:            "strange_symmetry",
	MissingSize:                "missing_size",
	MissingSite:                "missing_site",
	StrangeSite:                "strange_site",
	MissingDirection:           "missing_direction",
	StrangeDirection:           "strange_direction",
	MissingUse:                 "missing_use",
	StrangeUse:                 "strange_use",
	MissingViaObs:              "missing_via_obs",
	LibMissingCell:             "lib_missing_cell",
	LibMissingPin:              "lib_missing_pin",
	LefMissingCell:             "lef_missing_cell",
	LefMissingPin:              "lef_missing_pin",
	AreaMismatch:               "area_mismatch",
	PinPropertyMismatch:        "pin_property_mismatch",
}

// Title returns the human-readable report heading for the category.
func (c Category) Title() string {
	if c >= numCategories {
		return "unknown"
	}
	return categoryTitles[c]
}

// String returns the stable machine name for the category (used in JSON
// reports and tests).
func (c Category) String() string {
	if c >= numCategories {
		return "unknown"
	}
	return categoryNames[c]
}
