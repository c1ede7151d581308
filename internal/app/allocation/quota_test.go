package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

func TestComputeQuota(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		expected quota
	}{
		{
			name: "economics department split",
			settings: Settings{
				Strength:           48,
				DepartmentQuotaPct: 20,
				GeneralQuotaPct:    60,
				ScStQuotaPct:       20,
				OtherQuotaPct:      20,
			},
			expected: quota{Total: 10, General: 6, ScSt: 2, Other: 2},
		},
		{
			name: "half values round away from zero",
			settings: Settings{
				Strength:           25,
				DepartmentQuotaPct: 10,
				GeneralQuotaPct:    50,
				ScStQuotaPct:       30,
				OtherQuotaPct:      20,
			},
			expected: quota{Total: 3, General: 2, ScSt: 1, Other: 1},
		},
		{
			name: "every group keeps at least one seat",
			settings: Settings{
				Strength:           10,
				DepartmentQuotaPct: 10,
				GeneralQuotaPct:    90,
				ScStQuotaPct:       5,
				OtherQuotaPct:      5,
			},
			expected: quota{Total: 1, General: 1, ScSt: 1, Other: 1},
		},
		{
			name: "large cohort",
			settings: Settings{
				Strength:           120,
				DepartmentQuotaPct: 25,
				GeneralQuotaPct:    70,
				ScStQuotaPct:       20,
				OtherQuotaPct:      10,
			},
			expected: quota{Total: 30, General: 21, ScSt: 6, Other: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, computeQuota(tt.settings))
		})
	}
}

func TestGroupFor(t *testing.T) {
	tests := []struct {
		category models.AdmissionCategory
		group    quotaGroup
	}{
		{models.CategoryGeneral, groupGeneral},
		{models.CategorySC, groupScSt},
		{models.CategoryST, groupScSt},
		{models.CategoryEWS, groupOther},
		{models.CategorySports, groupOther},
		{models.CategoryManagement, groupOther},
		{models.CategoryPWD, groupNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.group, groupFor(tt.category))
		})
	}
}
