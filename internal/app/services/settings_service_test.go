package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
)

func validSettingsRequest() *dto.SaveAllocationSettingsRequest {
	return &dto.SaveAllocationSettingsRequest{
		DepartmentID:              1,
		Strength:                  48,
		DepartmentQuotaPercentage: 20,
		GeneralQuotaPercentage:    60,
		ScStQuotaPercentage:       20,
		OtherQuotaPercentage:      20,
	}
}

func TestValidateSettingsRequest(t *testing.T) {
	t.Run("accepts a valid request", func(t *testing.T) {
		assert.NoError(t, validateSettingsRequest(validSettingsRequest()))
	})

	t.Run("rejects non-positive strength", func(t *testing.T) {
		req := validSettingsRequest()
		req.Strength = 0
		assert.Error(t, validateSettingsRequest(req))
	})

	t.Run("rejects percentages outside 0-100", func(t *testing.T) {
		req := validSettingsRequest()
		req.DepartmentQuotaPercentage = 120
		assert.Error(t, validateSettingsRequest(req))
	})

	t.Run("rejects category split not summing to 100", func(t *testing.T) {
		req := validSettingsRequest()
		req.GeneralQuotaPercentage = 50
		err := validateSettingsRequest(req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidQuotaPercentage)
	})

	t.Run("accepts fractional split summing to 100", func(t *testing.T) {
		req := validSettingsRequest()
		req.GeneralQuotaPercentage = 33.4
		req.ScStQuotaPercentage = 33.3
		req.OtherQuotaPercentage = 33.3
		assert.NoError(t, validateSettingsRequest(req))
	})
}
