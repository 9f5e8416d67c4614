package mocks

import (
	"context"

	"marketplace-server/internal/models"
	"marketplace-server/internal/service"

	"github.com/stretchr/testify/mock"
)

var (
	_ service.AuthService       = (*MockAuthService)(nil)
	_ service.UserService       = (*MockUserService)(nil)
	_ service.ProductService    = (*MockProductService)(nil)
	_ service.ImageService      = (*MockImageService)(nil)
	_ service.TagService        = (*MockTagService)(nil)
	_ service.CollectionService = (*MockCollectionService)(nil)
)

// MockAuthService is a mock type for service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.IssuedToken, error) {
	args := m.Called(ctx, email, password)
	token, _ := args.Get(0).(*models.IssuedToken)
	return token, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *models.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.Caller, *models.Claims, error) {
	args := m.Called(ctx, token)
	caller, _ := args.Get(0).(*models.Caller)
	claims, _ := args.Get(1).(*models.Claims)
	return caller, claims, args.Error(2)
}

// MockUserService is a mock type for service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*models.User, error) {
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, caller *models.Caller, in service.RegisterInput) (*models.User, error) {
	return m.user(m.Called(ctx, caller, in))
}

func (m *MockUserService) Get(ctx context.Context, caller *models.Caller, id int64) (*models.User, error) {
	return m.user(m.Called(ctx, caller, id))
}

func (m *MockUserService) List(ctx context.Context, caller *models.Caller) ([]models.User, error) {
	args := m.Called(ctx, caller)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, caller *models.Caller, id int64, p models.UserPatch) (*models.User, error) {
	return m.user(m.Called(ctx, caller, id, p))
}

func (m *MockUserService) SetPicture(ctx context.Context, caller *models.Caller, id int64, file service.Upload) (*models.User, error) {
	return m.user(m.Called(ctx, caller, id, file))
}

func (m *MockUserService) Promote(ctx context.Context, caller *models.Caller, id int64) (*models.User, error) {
	return m.user(m.Called(ctx, caller, id))
}

func (m *MockUserService) Crown(ctx context.Context, caller *models.Caller, id int64) (*models.User, error) {
	return m.user(m.Called(ctx, caller, id))
}

func (m *MockUserService) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockProductService is a mock type for service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) product(args mock.Arguments) (*models.Product, error) {
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *MockProductService) products(args mock.Arguments) ([]models.Product, error) {
	p, _ := args.Get(0).([]models.Product)
	return p, args.Error(1)
}

func (m *MockProductService) ListAll(ctx context.Context, caller *models.Caller) ([]models.Product, error) {
	return m.products(m.Called(ctx, caller))
}

func (m *MockProductService) ListApproved(ctx context.Context) ([]models.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return m.products(m.Called(ctx, category))
}

func (m *MockProductService) Search(ctx context.Context, term string, page models.Page) ([]models.SearchResult, error) {
	args := m.Called(ctx, term, page)
	results, _ := args.Get(0).([]models.SearchResult)
	return results, args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, caller *models.Caller, id int64) (*models.Product, error) {
	return m.product(m.Called(ctx, caller, id))
}

func (m *MockProductService) GetApproved(ctx context.Context, id int64) (*models.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductService) ListByOwner(ctx context.Context, caller *models.Caller, ownerID int64) ([]models.Product, error) {
	return m.products(m.Called(ctx, caller, ownerID))
}

func (m *MockProductService) ListSelf(ctx context.Context, caller *models.Caller) ([]models.Product, error) {
	return m.products(m.Called(ctx, caller))
}

func (m *MockProductService) Create(ctx context.Context, caller *models.Caller, in service.ProductInput) (*models.Product, error) {
	return m.product(m.Called(ctx, caller, in))
}

func (m *MockProductService) Update(ctx context.Context, caller *models.Caller, id int64, p models.ProductPatch) (*models.Product, error) {
	return m.product(m.Called(ctx, caller, id, p))
}

func (m *MockProductService) Approve(ctx context.Context, caller *models.Caller, id int64) (*models.Product, error) {
	return m.product(m.Called(ctx, caller, id))
}

func (m *MockProductService) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockImageService is a mock type for service.ImageService.
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) List(ctx context.Context, caller *models.Caller) ([]models.Image, error) {
	args := m.Called(ctx, caller)
	images, _ := args.Get(0).([]models.Image)
	return images, args.Error(1)
}

func (m *MockImageService) Get(ctx context.Context, caller *models.Caller, id int64) (*models.Image, error) {
	args := m.Called(ctx, caller, id)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *MockImageService) ListByProduct(ctx context.Context, productID int64) ([]models.Image, error) {
	args := m.Called(ctx, productID)
	images, _ := args.Get(0).([]models.Image)
	return images, args.Error(1)
}

func (m *MockImageService) Create(ctx context.Context, caller *models.Caller, in service.ImageInput) (*models.Image, error) {
	args := m.Called(ctx, caller, in)
	image, _ := args.Get(0).(*models.Image)
	return image, args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockTagService is a mock type for service.TagService.
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) List(ctx context.Context, caller *models.Caller) ([]models.Tag, error) {
	args := m.Called(ctx, caller)
	tags, _ := args.Get(0).([]models.Tag)
	return tags, args.Error(1)
}

func (m *MockTagService) ListByProduct(ctx context.Context, productID int64) ([]models.Tag, error) {
	args := m.Called(ctx, productID)
	tags, _ := args.Get(0).([]models.Tag)
	return tags, args.Error(1)
}

func (m *MockTagService) Create(ctx context.Context, caller *models.Caller, name string, productID int64) (*models.Tag, error) {
	args := m.Called(ctx, caller, name, productID)
	tag, _ := args.Get(0).(*models.Tag)
	return tag, args.Error(1)
}

func (m *MockTagService) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockCollectionService is a mock type for service.CollectionService.
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Add(ctx context.Context, caller *models.Caller, productID int64) (*models.CollectionEntry, error) {
	args := m.Called(ctx, caller, productID)
	entry, _ := args.Get(0).(*models.CollectionEntry)
	return entry, args.Error(1)
}

func (m *MockCollectionService) List(ctx context.Context, caller *models.Caller) ([]models.CollectionItem, error) {
	args := m.Called(ctx, caller)
	items, _ := args.Get(0).([]models.CollectionItem)
	return items, args.Error(1)
}

func (m *MockCollectionService) Remove(ctx context.Context, caller *models.Caller, entryID int64) error {
	return m.Called(ctx, caller, entryID).Error(0)
}
