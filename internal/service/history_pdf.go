package service

import (
	"fmt"
	"io"

	"dental-clinic-api/internal/domain/entity"

	"github.com/jung-kurt/gofpdf"
)

// HistoryPDF renders a patient's clinical history to a PDF document.
type HistoryPDF struct{}

func NewHistoryPDF() *HistoryPDF {
	return &HistoryPDF{}
}

// Render writes the PDF for the given patient and records to w.
func (p *HistoryPDF) Render(w io.Writer, patient *entity.PatientProfile, records []entity.ClinicalRecord) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Historial Odontologico")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Paciente: %s", patient.User.FullName()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Email: %s", patient.User.Email))
	pdf.Ln(6)
	if !patient.DateOfBirth.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Fecha de nacimiento: %s", patient.DateOfBirth.Format(entity.DateLayout)))
		pdf.Ln(6)
	}
	if patient.Phone != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Celular: %s", patient.Phone))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	for i := range records {
		record := &records[i]

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Registro del %s", record.CreatedAt.Format(entity.DateLayout)))
		pdf.Ln(9)

		pdf.SetFont("Helvetica", "", 10)
		if record.HasDiagnosis() {
			pdf.MultiCell(0, 5, fmt.Sprintf("Diagnostico: %s", record.GeneralDiagnosis), "", "L", false)
		}
		if record.Observations != "" {
			pdf.MultiCell(0, 5, fmt.Sprintf("Observaciones: %s", record.Observations), "", "L", false)
		}
		if record.MedicalHistory != "" {
			pdf.MultiCell(0, 5, fmt.Sprintf("Antecedentes: %s", record.MedicalHistory), "", "L", false)
		}

		for j := range record.Treatments {
			treatment := &record.Treatments[j]
			pdf.SetFont("Helvetica", "I", 10)
			line := fmt.Sprintf("- %s (%s) costo %s, inicio %s",
				treatment.Type, treatment.Status, treatment.Cost.StringFixed(2),
				treatment.StartDate.Format(entity.DateLayout))
			if treatment.EndDate != nil {
				line += fmt.Sprintf(", fin %s", treatment.EndDate.Format(entity.DateLayout))
			}
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		pdf.Ln(4)
	}

	return pdf.Output(w)
}
