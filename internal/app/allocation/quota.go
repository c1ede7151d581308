package allocation

import (
	"math"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

// quotaGroup is one of the three reservation pools a department's MDC
// quota is split into.
type quotaGroup int

const (
	groupNone quotaGroup = iota
	groupGeneral
	groupScSt
	groupOther
)

// groupFor maps an admission category to its reservation pool. Categories
// outside every pool compete only in the fallback phase.
func groupFor(category models.AdmissionCategory) quotaGroup {
	switch category {
	case models.CategoryGeneral:
		return groupGeneral
	case models.CategorySC, models.CategoryST:
		return groupScSt
	case models.CategoryEWS, models.CategorySports, models.CategoryManagement:
		return groupOther
	default:
		return groupNone
	}
}

// quota holds the computed seat counts for one department's reserved
// MDC intake.
type quota struct {
	Total   int
	General int
	ScSt    int
	Other   int
}

// computeQuota derives per-group seat counts from a department's settings.
// Every count is rounded half away from zero and floored at one, so a
// configured department always reserves at least one seat per group.
func computeQuota(s Settings) quota {
	total := atLeastOne(math.Round(float64(s.Strength) * s.DepartmentQuotaPct / 100))
	return quota{
		Total:   total,
		General: atLeastOne(math.Round(float64(total) * s.GeneralQuotaPct / 100)),
		ScSt:    atLeastOne(math.Round(float64(total) * s.ScStQuotaPct / 100)),
		Other:   atLeastOne(math.Round(float64(total) * s.OtherQuotaPct / 100)),
	}
}

func (q quota) forGroup(g quotaGroup) int {
	switch g {
	case groupGeneral:
		return q.General
	case groupScSt:
		return q.ScSt
	case groupOther:
		return q.Other
	default:
		return 0
	}
}

func atLeastOne(v float64) int {
	n := int(v)
	if n < 1 {
		return 1
	}
	return n
}
