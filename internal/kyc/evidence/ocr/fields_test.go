package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kycgate/internal/kyc/models"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "NAME: JANE DOE DOB 01/02/1990", NormalizeText("  name:\tJane   Doe\n\nDOB 01/02/1990 "))
}

func TestParseFields(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.ExtractedFields
	}{
		{
			name: "national id card",
			text: `REPUBLIC OF EXAMPLE
Name: Jane Doe
ID No: AB1234567
Date of Birth: 01/02/1990
Address: 12 Main Street Springfield
Date of Issue: 2020-05-06
Date of Expiry: 06.05.2030`,
			want: models.ExtractedFields{
				Name:           "JANE DOE",
				DocumentNumber: "AB1234567",
				DOB:            "1990-02-01",
				Address:        "12 MAIN STREET SPRINGFIELD",
				IssueDate:      "2020-05-06",
				ExpiryDate:     "2030-05-06",
			},
		},
		{
			name: "passport with surname and given names",
			text: "PASSPORT NO. P9876543 SURNAME: DOE GIVEN NAMES: JOHN PAUL NATIONALITY EXAMPLE DOB 25/12/1985 EXPIRES 2031/31/12",
			want: models.ExtractedFields{
				Name:           "JOHN PAUL DOE",
				DocumentNumber: "P9876543",
				DOB:            "1985-12-25",
				ExpiryDate:     "2031-12-31",
			},
		},
		{
			name: "bare document number and valid until",
			text: "X12345678 holder: someone VALID UNTIL 01-01-2029",
			want: models.ExtractedFields{
				DocumentNumber: "X12345678",
				ExpiryDate:     "2029-01-01",
			},
		},
		{
			name: "unparseable date kept verbatim",
			text: "DOB: 31/02/1990",
			want: models.ExtractedFields{DOB: "31/02/1990"},
		},
		{
			name: "empty text",
			text: "",
			want: models.ExtractedFields{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseFields(tc.text))
		})
	}
}

func TestParseFieldsFirstMatchWins(t *testing.T) {
	// Both the full-name label and the plain name label are present; only the
	// higher-priority one is used.
	got := ParseFields("NAME: SHORT FORM FULL NAME: LONG FORM VERSION DOB 01/01/1990")
	assert.Equal(t, "LONG FORM VERSION", got.Name)

	// A labelled document number wins over an earlier bare token.
	got = ParseFields("AB1234567 DOCUMENT NUMBER: ZZ7654321")
	assert.Equal(t, "ZZ7654321", got.DocumentNumber)
}
