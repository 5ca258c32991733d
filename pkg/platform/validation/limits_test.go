package validation

import (
	"strings"
	"testing"

	dErrors "kycgate/pkg/domain-errors"

	"github.com/stretchr/testify/suite"
)

// LimitsSuite covers the trust-boundary validators: max must pass, max+1 must fail.
type LimitsSuite struct {
	suite.Suite
}

func TestLimitsSuite(t *testing.T) {
	suite.Run(t, new(LimitsSuite))
}

func (s *LimitsSuite) TestCheckSliceCount() {
	s.Run("passes when count equals max", func() {
		s.NoError(CheckSliceCount("items", MaxBulkReviewItems, MaxBulkReviewItems))
	})

	s.Run("passes when count is zero", func() {
		s.NoError(CheckSliceCount("items", 0, MaxBulkReviewItems))
	})

	s.Run("fails when count exceeds max", func() {
		err := CheckSliceCount("items", MaxBulkReviewItems+1, MaxBulkReviewItems)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "too many items")
	})
}

func (s *LimitsSuite) TestCheckStringLength() {
	s.Run("passes when length equals max", func() {
		s.NoError(CheckStringLength("notes", strings.Repeat("a", MaxNotesLength), MaxNotesLength))
	})

	s.Run("fails when length exceeds max", func() {
		err := CheckStringLength("notes", strings.Repeat("a", MaxNotesLength+1), MaxNotesLength)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "notes exceeds max length")
	})
}

type structFixture struct {
	DocumentURL string `validate:"required,url"`
	Notes       string `validate:"notblank"`
}

func (s *LimitsSuite) TestValidateStruct() {
	s.Run("valid struct passes", func() {
		s.NoError(Validate(structFixture{DocumentURL: "https://cdn.example.com/a.jpg", Notes: "ok"}))
	})

	s.Run("missing field names the snake_case field", func() {
		err := Validate(structFixture{Notes: "ok"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("document_url is required", err.Error())
	})

	s.Run("blank notes rejected", func() {
		err := Validate(structFixture{DocumentURL: "https://cdn.example.com/a.jpg", Notes: "   "})
		s.Require().Error(err)
		s.Equal("notes must not be blank", err.Error())
	})
}
