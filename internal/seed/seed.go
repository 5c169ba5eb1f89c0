package seed

import (
	"fmt"
	"log"

	"postpilot/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo accounts, personas and projects.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll wipes the seeded tables. Projects and personas go first so no
// foreign keys dangle mid-wipe.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Project{},
		&models.Persona{},
		&models.UserProfile{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds numUsers onboarded accounts, each with a small persona tree and
// projectsPerUser projects in mixed lifecycle states.
func (s *Seeder) Run(numUsers, projectsPerUser int) error {
	log.Printf("Seeding %d users with %d projects each...", numUsers, projectsPerUser)

	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}

		root, err := s.factory.CreatePersona(user, nil)
		if err != nil {
			return err
		}
		// Roughly half the users get a variant under their root persona.
		var variant *models.Persona
		if i%2 == 0 {
			variant, err = s.factory.CreatePersona(user, &root.ID)
			if err != nil {
				return err
			}
		}

		for j := 0; j < projectsPerUser; j++ {
			persona := root
			if variant != nil && j%2 == 1 {
				persona = variant
			}
			// every third project has no persona attached
			if j%3 == 2 {
				persona = nil
			}
			if _, err := s.factory.CreateProject(user, persona); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d users.", numUsers)
	return nil
}
