package ocr

import (
	"regexp"
	"strings"

	"kycgate/internal/kyc/models"
)

// candidate is one pattern for a field. build turns the submatches into the
// field value; an empty result means the candidate did not match.
type candidate struct {
	re    *regexp.Regexp
	build func(m []string) string
}

const (
	datePattern = `(\d{1,4}[./\- ]\d{1,2}[./\- ]\d{1,4})`
	nameStop    = `(?:\s+(?:DATE|DOB|D\.O\.B|BIRTH|BORN|SEX|GENDER|NATIONALITY|DOCUMENT|DOC|ID|NO|NUMBER|PASSPORT|LICEN[CS]E|ADDRESS|ISSUED?|EXPIR\w*|VALID|PLACE|SIGNATURE|GIVEN|SURNAME)\b|\s+\d|$)`
	addressStop = `(?:\s+(?:DATE|DOB|D\.O\.B|ISSUED?|EXPIR\w*|VALID|SEX|GENDER|NATIONALITY|SIGNATURE|DOCUMENT|NAME)\b|$)`
)

func first(m []string) string {
	return strings.TrimSpace(m[1])
}

func date(m []string) string {
	return NormalizeDate(m[1])
}

func documentNumber(m []string) string {
	v := strings.Trim(m[1], "-")
	if len(v) < 5 || len(v) > 20 || !strings.ContainsAny(v, "0123456789") {
		return ""
	}
	return v
}

func givenThenSurname(m []string) string {
	return strings.TrimSpace(strings.TrimSpace(m[2]) + " " + strings.TrimSpace(m[1]))
}

func must(pattern string, build func([]string) string) candidate {
	return candidate{re: regexp.MustCompile(pattern), build: build}
}

// Candidates per field, highest priority first.
var (
	nameCandidates = []candidate{
		must(`\b(?:FULL NAME|NAME IN FULL)\s*:?\s*([A-Z][A-Z' \-]*?)`+nameStop, first),
		must(`\bSURNAME\s*:?\s*([A-Z][A-Z' \-]*?)\s+GIVEN NAMES?\s*:?\s*([A-Z][A-Z' \-]*?)`+nameStop, givenThenSurname),
		must(`\bNAME\b\s*:?\s*([A-Z][A-Z' \-]*?)`+nameStop, first),
	}
	documentNumberCandidates = []candidate{
		must(`\b(?:DOCUMENT|DOC|PASSPORT|LICEN[CS]E|ID|CARD)\s*(?:NO\.?|NUMBER|NUM|#)\s*:?\s*([A-Z0-9][A-Z0-9\-]{3,19})`, documentNumber),
		must(`\b(?:NO\.?|NUMBER)\s*:?\s*([A-Z0-9][A-Z0-9\-]{3,19})`, documentNumber),
		must(`\b([A-Z]{1,2}\d{6,9})\b`, documentNumber),
	}
	dobCandidates = []candidate{
		must(`\b(?:DATE OF BIRTH|BIRTH DATE|D\.?O\.?B\.?)\s*:?\s*`+datePattern, date),
		must(`\b(?:BORN|BIRTH)\b[^0-9]{0,20}`+datePattern, date),
	}
	issueDateCandidates = []candidate{
		must(`\b(?:DATE OF ISSUE|ISSUE DATE|ISSUED ON|ISSUED|DOI)\s*:?\s*`+datePattern, date),
	}
	expiryDateCandidates = []candidate{
		must(`\b(?:DATE OF EXPIRY|EXPIRY DATE|EXPIRATION DATE|EXPIRES ON|EXPIRES|EXPIRY|DOE)\s*:?\s*`+datePattern, date),
		must(`\bVALID (?:UNTIL|THRU|TO)\s*:?\s*`+datePattern, date),
	}
	addressCandidates = []candidate{
		must(`\b(?:ADDRESS|ADDR\.?|RESIDENCE)\s*:?\s*(\S.*?)`+addressStop, first),
	}
)

// NormalizeText upper-cases and collapses all whitespace to single spaces.
func NormalizeText(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}

// ParseFields extracts the structured fields from recognised text.
func ParseFields(raw string) models.ExtractedFields {
	text := NormalizeText(raw)
	return models.ExtractedFields{
		Name:           firstMatch(text, nameCandidates),
		DocumentNumber: firstMatch(text, documentNumberCandidates),
		DOB:            firstMatch(text, dobCandidates),
		Address:        firstMatch(text, addressCandidates),
		IssueDate:      firstMatch(text, issueDateCandidates),
		ExpiryDate:     firstMatch(text, expiryDateCandidates),
	}
}

// firstMatch returns the value of the first candidate that matches; later
// candidates are not evaluated.
func firstMatch(text string, candidates []candidate) string {
	for _, c := range candidates {
		m := c.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := c.build(m); v != "" {
			return v
		}
	}
	return ""
}
