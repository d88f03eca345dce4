package seed

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/theandrewmo/warbler/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Seeder orchestrates factories into complete data sets.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes all seeded rows. Postgres only.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, messages, follows, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run populates the database according to the seeder options.
func (s *Seeder) Run() error {
	log.Printf("🌱 Starting database seeding with %d users and %d warbles...", s.opts.NumUsers, s.opts.NumWarbles)

	if s.opts.ShouldClean && !s.opts.DryRun {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := s.SeedUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := s.SeedFollowMesh(users); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Println("✓ follow mesh created")

	warbles, err := s.SeedWarbles(users, s.opts.NumWarbles)
	if err != nil {
		return fmt.Errorf("failed to create warbles: %w", err)
	}
	log.Printf("✓ %d warbles created", len(warbles))

	if err := s.SeedLikes(users, warbles); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Println("✓ likes created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// SeedUsers creates count users. The first three are well-known accounts
// so developers always have a predictable login.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	if count >= 3 {
		baseUsers := []string{"warbler", "tuckerdiane", "test"}
		for _, u := range baseUsers {
			name := u
			user, err := s.factory.CreateUser(func(usr *models.User) {
				usr.Username = name
				usr.Email = fmt.Sprintf("%s@example.com", name)
				usr.Bio = "One of the OGs."
			})
			if err != nil {
				return nil, err
			}
			users = append(users, user)
		}
		count -= len(baseUsers)
	}

	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			// unique collisions happen with random usernames, retry once
			user, err = s.factory.CreateUser()
			if err != nil {
				return nil, err
			}
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedFollowMesh wires users into a loose follow graph. Each user follows
// a random handful of others so every feed has content.
func (s *Seeder) SeedFollowMesh(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, follower := range users {
		edges := r.Intn(len(users)/2+1) + 1
		for i := 0; i < edges; i++ {
			followed := users[r.Intn(len(users))]
			if err := s.factory.CreateFollow(follower, followed); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedWarbles attributes count warbles across users, weighted randomly.
func (s *Seeder) SeedWarbles(users []*models.User, count int) ([]*models.Message, error) {
	if len(users) == 0 || count == 0 {
		return nil, nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	batch := make([]*models.Message, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		batch = append(batch, s.factory.BuildWarble(author))
	}
	if err := s.factory.CreateWarblesBatch(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// SeedLikes sprinkles likes over the seeded warbles.
func (s *Seeder) SeedLikes(users []*models.User, warbles []*models.Message) error {
	if len(users) == 0 || len(warbles) == 0 {
		return nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, msg := range warbles {
		likers := r.Intn(len(users)/3 + 1)
		for i := 0; i < likers; i++ {
			if err := s.factory.CreateLike(users[r.Intn(len(users))], msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Preset is a named seeding profile loadable from a YAML file.
type Preset struct {
	Name       string `yaml:"name"`
	Users      int    `yaml:"users"`
	Warbles    int    `yaml:"warbles"`
	MaxDays    int    `yaml:"max_days"`
	Clean      bool   `yaml:"clean"`
	SkipBcrypt bool   `yaml:"skip_bcrypt"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets parses a YAML preset file.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}
	return pf.Presets, nil
}

// ApplyPreset runs the named preset from the given YAML file.
func ApplyPreset(db *gorm.DB, path, name string, dryRun bool) error {
	presets, err := LoadPresets(path)
	if err != nil {
		return err
	}
	for _, p := range presets {
		if p.Name != name {
			continue
		}
		log.Printf("Applying preset %q: %d users, %d warbles", p.Name, p.Users, p.Warbles)
		seeder := NewSeeder(db, Options{
			NumUsers:    p.Users,
			NumWarbles:  p.Warbles,
			MaxDays:     p.MaxDays,
			ShouldClean: p.Clean,
			SkipBcrypt:  p.SkipBcrypt,
			DryRun:      dryRun,
		})
		return seeder.Run()
	}
	return fmt.Errorf("preset %q not found in %s", name, path)
}
