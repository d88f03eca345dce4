package service

import (
	"context"
	"testing"

	"github.com/theandrewmo/warbler/internal/models"
	"github.com/theandrewmo/warbler/internal/repository"
)

// Function-field stubs for the repository interfaces. Each test overrides
// only the calls it cares about; everything else succeeds with zero values.

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByIDWithMessagesFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	deleteFn              func(context.Context, uint) error
	listFn                func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithMessagesFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, query, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithMessagesFn: func(context.Context, uint, int) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:          func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:              func(context.Context, *models.User) error { return nil },
		updateFn:              func(context.Context, *models.User) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		listFn:                func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}

type followRepoStub struct {
	createFn    func(context.Context, uint, uint) error
	deleteFn    func(context.Context, uint, uint) error
	existsFn    func(context.Context, uint, uint) (bool, error)
	followersFn func(context.Context, uint) ([]models.User, error)
	followingFn func(context.Context, uint) ([]models.User, error)
	countsFn    func(context.Context, uint) (repository.FollowCounts, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followedID uint) error {
	return s.createFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (repository.FollowCounts, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:    func(context.Context, uint, uint) error { return nil },
		deleteFn:    func(context.Context, uint, uint) error { return nil },
		existsFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followingFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		countsFn:    func(context.Context, uint) (repository.FollowCounts, error) { return repository.FollowCounts{}, nil },
	}
}

type messageRepoStub struct {
	createFn     func(context.Context, *models.Message) error
	getByIDFn    func(context.Context, uint) (*models.Message, error)
	deleteFn     func(context.Context, uint) error
	listByUserFn func(context.Context, uint, int, int) ([]models.Message, error)
	feedFn       func(context.Context, uint, int, int) ([]models.Message, error)
	createLikeFn func(context.Context, uint, uint) error
	deleteLikeFn func(context.Context, uint, uint) error
	isLikedFn    func(context.Context, uint, uint) (bool, error)
	likedByFn    func(context.Context, uint, int, int) ([]models.Message, error)
	likeCountFn  func(context.Context, uint) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *messageRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.feedFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) CreateLike(ctx context.Context, userID, messageID uint) error {
	return s.createLikeFn(ctx, userID, messageID)
}
func (s *messageRepoStub) DeleteLike(ctx context.Context, userID, messageID uint) error {
	return s.deleteLikeFn(ctx, userID, messageID)
}
func (s *messageRepoStub) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, messageID)
}
func (s *messageRepoStub) LikedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.likedByFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) LikeCount(ctx context.Context, messageID uint) (int64, error) {
	return s.likeCountFn(ctx, messageID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:     func(context.Context, *models.Message) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Message, error) { return &models.Message{}, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		listByUserFn: func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		feedFn:       func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		createLikeFn: func(context.Context, uint, uint) error { return nil },
		deleteLikeFn: func(context.Context, uint, uint) error { return nil },
		isLikedFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		likedByFn:    func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		likeCountFn:  func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !models.HasCode(err, code) {
		t.Fatalf("expected %s error, got %#v", code, err)
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}
