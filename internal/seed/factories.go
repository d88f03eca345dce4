// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/theandrewmo/warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls seeder volume and behavior.
type Options struct {
	NumUsers    int
	NumWarbles  int
	MaxDays     int
	ShouldClean bool
	SkipBcrypt  bool
	DryRun      bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		ImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildWarble constructs a message struct with a realistic created_at
// spread but does not persist it. Useful for batching.
func (f *Factory) BuildWarble(user *models.User, overrides ...func(*models.Message)) *models.Message {
	text := gofakeit.Sentence(gofakeit.Number(4, 12))
	if len(text) > models.MaxMessageLength {
		text = text[:models.MaxMessageLength]
	}
	msg := &models.Message{
		Text:   text,
		UserID: user.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	msg.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(msg)
	}
	return msg
}

// CreateWarblesBatch persists multiple messages in a single DB call when possible.
func (f *Factory) CreateWarblesBatch(msgs []*models.Message) error {
	if f.opts.DryRun {
		for _, m := range msgs {
			f.nextID++
			m.ID = f.nextID
		}
		log.Printf("[dry-run] CreateWarblesBatch: %d warbles (no DB write)", len(msgs))
		return nil
	}
	return f.db.Create(&msgs).Error
}

// CreateFollow persists a follow edge between two users. Duplicate edges
// are skipped silently so presets can be re-applied.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	if follower.ID == followed.ID {
		return nil
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFollow: %s -> %s", follower.Username, followed.Username)
		return nil
	}
	edge := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	return f.db.Where(&edge).FirstOrCreate(&edge).Error
}

// CreateLike persists a like edge. Duplicates are skipped silently.
func (f *Factory) CreateLike(user *models.User, msg *models.Message) error {
	if msg.UserID == user.ID {
		return nil
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateLike: %s likes warble %d", user.Username, msg.ID)
		return nil
	}
	edge := models.Like{UserID: user.ID, MessageID: msg.ID}
	return f.db.Where(&edge).FirstOrCreate(&edge).Error
}
