// Package aggregate derives a user's overall KYC status from their records.
package aggregate

import (
	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

// Aggregate computes the KYC aggregate for records owned by userID.
//
// For each required type the most recently updated record decides. The
// overall status is verified when every required type is verified, else
// pending when any is pending, else rejected when any is rejected, else
// unverified. Counts cover every record, required or not.
func Aggregate(userID id.UserID, records []*models.VerificationRecord, requiredTypes []models.VerificationType) models.KycAggregate {
	agg := models.KycAggregate{
		UserID:         userID,
		RequiredTypes:  append([]models.VerificationType(nil), requiredTypes...),
		Requirements:   make([]models.Requirement, 0, len(requiredTypes)),
		CountsByStatus: make(map[models.Status]int),
		CountsByType:   make(map[models.VerificationType]int),
	}

	latest := make(map[models.VerificationType]*models.VerificationRecord, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		agg.TotalRecords++
		agg.CountsByStatus[r.Status]++
		agg.CountsByType[r.Type]++
		if cur, ok := latest[r.Type]; !ok || r.UpdatedAt.After(cur.UpdatedAt) {
			latest[r.Type] = r
		}
	}

	allVerified, anyPending, anyRejected := true, false, false
	for _, t := range requiredTypes {
		req := models.Requirement{Type: t}
		r, ok := latest[t]
		if !ok {
			allVerified = false
			agg.Requirements = append(agg.Requirements, req)
			continue
		}

		recordID, status := r.ID, r.Status
		req.RecordID = &recordID
		req.Status = &status
		req.Satisfied = status == models.StatusVerified
		agg.Requirements = append(agg.Requirements, req)

		switch status {
		case models.StatusVerified:
		case models.StatusPending:
			allVerified = false
			anyPending = true
		case models.StatusRejected:
			allVerified = false
			anyRejected = true
		default:
			allVerified = false
		}
	}

	switch {
	case len(requiredTypes) > 0 && allVerified:
		agg.OverallStatus = models.OverallVerified
	case anyPending:
		agg.OverallStatus = models.OverallPending
	case anyRejected:
		agg.OverallStatus = models.OverallRejected
	default:
		agg.OverallStatus = models.OverallUnverified
	}
	return agg
}
