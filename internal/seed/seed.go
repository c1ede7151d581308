package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	appRepos "github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminUsername = "admin"
	adminEmail    = "admin@college.edu"
	adminPassword = "Admin123!"
)

// CreateDefaultData creates the three pathways and the default admin account
// if they don't exist. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	pathwayRepo := appRepos.NewPathwayRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Pathways/Admin)...")
	var finalErr error // Collect errors without stopping the process

	pathwayNames := []string{
		appModels.PathwaySingleMajor,
		appModels.PathwayDoubleMajor,
		appModels.PathwaySingleMajorMinor,
	}
	for _, name := range pathwayNames {
		pathway := &appModels.Pathway{Name: name}
		err := pathwayRepo.Create(ctx, pathway)
		if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("pathway", name).Msg("Error creating pathway")
			finalErr = errors.Join(finalErr, err)
		}
	}

	exists, err := userRepo.ExistsByUsername(ctx, adminUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Username:  adminUsername,
				Email:     adminEmail,
				Password:  string(hashedPassword),
				RoleType:  appModels.RoleAdmin,
				IsActive:  true,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
