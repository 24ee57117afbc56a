package flow

import "homologacion_motos/internal/domain/entities"

// Section names the data blocks a review edit may re-open. Element data is
// deliberately absent: once the per-element stage is closed it can only be
// redone by cancelling and starting over.
type Section string

const (
	SectionBaseDocs Section = "base_docs"
	SectionPersonal Section = "personal"
	SectionVehicle  Section = "vehicle"
	SectionWorkshop Section = "workshop"
)

var sectionPhases = map[Section]entities.CasePhase{
	SectionBaseDocs: entities.PhaseBaseDocs,
	SectionPersonal: entities.PhasePersonal,
	SectionVehicle:  entities.PhaseVehicle,
	SectionWorkshop: entities.PhaseWorkshop,
}

// ParseSection validates the payload of an edit_section action.
func ParseSection(s string) (Section, bool) {
	sec := Section(s)
	if _, ok := sectionPhases[sec]; !ok {
		return "", false
	}
	return sec, true
}

// SectionOfPhase is the inverse mapping; false for phases that are not a
// data section.
func SectionOfPhase(p entities.CasePhase) (Section, bool) {
	for sec, phase := range sectionPhases {
		if phase == p {
			return sec, true
		}
	}
	return "", false
}

// SectionPhase maps a section to the phase an edit re-enters.
func SectionPhase(sec Section) entities.CasePhase {
	return sectionPhases[sec]
}

// phaseOrder ranks phases along the forward workflow. Replay detection uses
// it to tell "this transition already happened" apart from "this action is
// out of place".
var phaseOrder = map[entities.CasePhase]int{
	entities.PhaseIdle:          0,
	entities.PhaseElementPhotos: 1,
	entities.PhaseElementData:   2,
	entities.PhaseBaseDocs:      3,
	entities.PhasePersonal:      4,
	entities.PhaseVehicle:       5,
	entities.PhaseWorkshop:      6,
	entities.PhaseReview:        7,
	entities.PhaseCompleted:     8,
}

// PhaseAtOrPast reports whether phase is at or beyond target in workflow
// order.
func PhaseAtOrPast(phase, target entities.CasePhase) bool {
	return phaseOrder[phase] >= phaseOrder[target]
}

// NextPhase walks the fixed chain that follows the per-element stage. After a
// review edit the case re-walks the same chain; sections that are still
// complete pass straight through.
func NextPhase(p entities.CasePhase) entities.CasePhase {
	switch p {
	case entities.PhaseBaseDocs:
		return entities.PhasePersonal
	case entities.PhasePersonal:
		return entities.PhaseVehicle
	case entities.PhaseVehicle:
		return entities.PhaseWorkshop
	case entities.PhaseWorkshop:
		return entities.PhaseReview
	default:
		return p
	}
}

// Section field schemas. These are fixed per deployment, not per catalog
// category, so they live here instead of the catalog store.

func PersonalFields() []entities.RequiredField {
	return []entities.RequiredField{
		{Key: "nombre", Label: "Nombre", Type: entities.FieldTypeText},
		{Key: "apellidos", Label: "Apellidos", Type: entities.FieldTypeText},
		{Key: "dni", Label: "DNI o NIE", Type: entities.FieldTypeText},
		{Key: "telefono", Label: "Teléfono de contacto", Type: entities.FieldTypeText},
		{Key: "email", Label: "Correo electrónico", Type: entities.FieldTypeText},
	}
}

func VehicleFields() []entities.RequiredField {
	return []entities.RequiredField{
		{Key: "marca", Label: "Marca", Type: entities.FieldTypeText},
		{Key: "modelo", Label: "Modelo", Type: entities.FieldTypeText},
		{Key: "matricula", Label: "Matrícula", Type: entities.FieldTypeText},
		{Key: "bastidor", Label: "Número de bastidor", Type: entities.FieldTypeText},
		{Key: "fecha_matriculacion", Label: "Fecha de primera matriculación", Type: entities.FieldTypeDate},
	}
}

func WorkshopFields() []entities.RequiredField {
	return []entities.RequiredField{
		{Key: "nombre_taller", Label: "Nombre del taller", Type: entities.FieldTypeText},
		{Key: "cif", Label: "CIF del taller", Type: entities.FieldTypeText},
		{Key: "provincia", Label: "Provincia", Type: entities.FieldTypeText},
	}
}

// SectionFields returns the schema for a data section; base_docs collects
// images only and has no fields.
func SectionFields(sec Section) []entities.RequiredField {
	switch sec {
	case SectionPersonal:
		return PersonalFields()
	case SectionVehicle:
		return VehicleFields()
	case SectionWorkshop:
		return WorkshopFields()
	default:
		return nil
	}
}
