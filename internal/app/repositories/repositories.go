package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	DepartmentRepository *DepartmentRepository
	PathwayRepository    *PathwayRepository
	StudentRepository    *StudentRepository
	CourseRepository     *CourseRepository
	BatchRepository      *BatchRepository
	PreferenceRepository *PreferenceRepository
	AllotmentRepository  *AllotmentRepository
	SettingsRepository   *SettingsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		PathwayRepository:    NewPathwayRepository(db),
		StudentRepository:    NewStudentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		BatchRepository:      NewBatchRepository(db),
		PreferenceRepository: NewPreferenceRepository(db),
		AllotmentRepository:  NewAllotmentRepository(db),
		SettingsRepository:   NewSettingsRepository(db),
	}
}
