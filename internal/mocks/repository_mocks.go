package mocks

import (
	"context"
	"time"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"

	"github.com/stretchr/testify/mock"
)

var (
	_ interfaces.UserRepository       = (*MockUserRepository)(nil)
	_ interfaces.ProductRepository    = (*MockProductRepository)(nil)
	_ interfaces.ImageRepository      = (*MockImageRepository)(nil)
	_ interfaces.TagRepository        = (*MockTagRepository)(nil)
	_ interfaces.CollectionRepository = (*MockCollectionRepository)(nil)
	_ interfaces.TokenDenylist        = (*MockTokenDenylist)(nil)
)

// MockUserRepository is a mock type for interfaces.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

// Create runs any func(*models.User) registered with Run, so tests can assign ids.
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, set *patch.Set) (*models.User, error) {
	args := m.Called(ctx, id, set)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id int64, role models.Role) (*models.User, error) {
	args := m.Called(ctx, id, role)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductRepository is a mock type for interfaces.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) product(args mock.Arguments) (*models.Product, error) {
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) products(args mock.Arguments) ([]models.Product, error) {
	p, _ := args.Get(0).([]models.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductRepository) GetApprovedByID(ctx context.Context, id int64) (*models.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductRepository) ListApproved(ctx context.Context) ([]models.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductRepository) ListApprovedByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return m.products(m.Called(ctx, category))
}

func (m *MockProductRepository) ListByOwner(ctx context.Context, ownerID int64, approvedOnly bool) ([]models.Product, error) {
	return m.products(m.Called(ctx, ownerID, approvedOnly))
}

func (m *MockProductRepository) Search(ctx context.Context, term string, page models.Page) ([]models.SearchResult, error) {
	args := m.Called(ctx, term, page)
	results, _ := args.Get(0).([]models.SearchResult)
	return results, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p models.NewProduct) (*models.Product, error) {
	return m.product(m.Called(ctx, p))
}

func (m *MockProductRepository) UpdateOwned(ctx context.Context, id, ownerID int64, set *patch.Set) (*models.Product, error) {
	return m.product(m.Called(ctx, id, ownerID, set))
}

func (m *MockProductRepository) SetApproved(ctx context.Context, id int64, approved bool) (*models.Product, error) {
	return m.product(m.Called(ctx, id, approved))
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

// MockImageRepository is a mock type for interfaces.ImageRepository.
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) List(ctx context.Context) ([]models.Image, error) {
	args := m.Called(ctx)
	images, _ := args.Get(0).([]models.Image)
	return images, args.Error(1)
}

func (m *MockImageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *MockImageRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Image, error) {
	args := m.Called(ctx, productID)
	images, _ := args.Get(0).([]models.Image)
	return images, args.Error(1)
}

func (m *MockImageRepository) Create(ctx context.Context, link string, productID int64) (*models.Image, error) {
	args := m.Called(ctx, link, productID)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *MockImageRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockTagRepository is a mock type for interfaces.TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]models.Tag)
	return tags, args.Error(1)
}

func (m *MockTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*models.Tag)
	return tag, args.Error(1)
}

func (m *MockTagRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Tag, error) {
	args := m.Called(ctx, productID)
	tags, _ := args.Get(0).([]models.Tag)
	return tags, args.Error(1)
}

func (m *MockTagRepository) Create(ctx context.Context, name string, productID int64) (*models.Tag, error) {
	args := m.Called(ctx, name, productID)
	tag, _ := args.Get(0).(*models.Tag)
	return tag, args.Error(1)
}

func (m *MockTagRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockCollectionRepository is a mock type for interfaces.CollectionRepository.
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Add(ctx context.Context, userID, productID int64) (*models.CollectionEntry, error) {
	args := m.Called(ctx, userID, productID)
	entry, _ := args.Get(0).(*models.CollectionEntry)
	return entry, args.Error(1)
}

func (m *MockCollectionRepository) ListByUser(ctx context.Context, userID int64) ([]models.CollectionItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]models.CollectionItem)
	return items, args.Error(1)
}

func (m *MockCollectionRepository) Remove(ctx context.Context, entryID, userID int64) error {
	return m.Called(ctx, entryID, userID).Error(0)
}

// MockTokenDenylist is a mock type for interfaces.TokenDenylist.
type MockTokenDenylist struct {
	mock.Mock
}

func (m *MockTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
