package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
)

func TestWriteCSV(t *testing.T) {
	report := &dto.AllotmentReport{
		Semester:     1,
		PaperHeaders: []string{"DSC 1", "DSC 2", "DSC 3", "MDC"},
		Rows: []dto.AllotmentRow{
			{
				AdmissionNumber: "ADM2025001",
				Name:            "Anjali K",
				Department:      "Economics",
				Pathway:         "Single Major",
				Category:        "General",
				Papers:          []string{"Introductory Microeconomics", "Fundamentals of Sociology", "-", "Applied Statistics"},
			},
		},
	}

	var buf bytes.Buffer
	svc := &ReportService{}
	require.NoError(t, svc.WriteCSV(&buf, report))

	expected := "Admission Number,Name,Department,Pathway,Category,DSC 1,DSC 2,DSC 3,MDC\n" +
		"ADM2025001,Anjali K,Economics,Single Major,General,Introductory Microeconomics,Fundamentals of Sociology,-,Applied Statistics\n"
	assert.Equal(t, expected, buf.String())
}
