package repository_test

import (
	"context"
	"testing"
	"time"

	"marketplace-server/internal/database"
	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"
	"marketplace-server/internal/repository"

	"github.com/docker/docker/client"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type StoreIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	pool        *pgxpool.Pool
	redisClient *redis.Client
	logger      *zap.Logger

	users     interfaces.UserRepository
	products  interfaces.ProductRepository
	images    interfaces.ImageRepository
	tags      interfaces.TagRepository
	cart      interfaces.CollectionRepository
	favourite interfaces.CollectionRepository
	denylist  interfaces.TokenDenylist
}

func (s *StoreIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = zap.NewNop()
	var err error

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("marketplace_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(s.T(), err, "start postgres container")

	dsn, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	s.pool, err = pgxpool.New(s.ctx, dsn)
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.ApplyMigrations(s.pool, s.logger))

	s.rdContainer, err = tcredis.Run(s.ctx, "docker.io/redis:7-alpine")
	require.NoError(s.T(), err, "start redis container")
	redisURI, err := s.rdContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)
	redisOpts, err := redis.ParseURL(redisURI)
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(redisOpts)

	opts := repository.Options{QueryTimeout: 5 * time.Second, ReadRetries: 1}
	s.users = repository.NewPgUserRepository(s.pool, s.logger, opts)
	s.products = repository.NewPgProductRepository(s.pool, s.logger, opts)
	s.images = repository.NewPgImageRepository(s.pool, s.logger, opts)
	s.tags = repository.NewPgTagRepository(s.pool, s.logger, opts)
	s.cart, err = repository.NewPgCollectionRepository(s.pool, models.CollectionCart, s.logger, opts)
	require.NoError(s.T(), err)
	s.favourite, err = repository.NewPgCollectionRepository(s.pool, models.CollectionFavourites, s.logger, opts)
	require.NoError(s.T(), err)
	s.denylist = repository.NewRedisTokenDenylist(s.redisClient, s.logger, time.Second)
}

func (s *StoreIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
	if s.rdContainer != nil {
		_ = s.rdContainer.Terminate(s.ctx)
	}
}

func (s *StoreIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err())
}

func (s *StoreIntegrationSuite) createUser(email string, seller bool) *models.User {
	u := &models.User{Name: "Ann", Surname: "Lee", Email: email, PasswordHash: "digest", Description: "hi", Seller: seller}
	require.NoError(s.T(), s.users.Create(s.ctx, u))
	return u
}

func (s *StoreIntegrationSuite) createProduct(ownerID int64, name, category string, price float64) *models.Product {
	p, err := s.products.Create(s.ctx, models.NewProduct{Name: name, Category: category, Price: price, OwnerID: ownerID})
	require.NoError(s.T(), err)
	return p
}

func (s *StoreIntegrationSuite) TestUserEmailConflict() {
	s.createUser("a@x.com", false)
	err := s.users.Create(s.ctx, &models.User{Name: "B", Surname: "C", Email: "a@x.com", PasswordHash: "d"})
	s.ErrorIs(err, models.ErrEmailAlreadyInUse)
}

func (s *StoreIntegrationSuite) TestUserPartialUpdateTouchesOnlyGivenFields() {
	u := s.createUser("p@x.com", false)
	name := "Anna"

	updated, err := s.users.Update(s.ctx, u.ID, patch.New().String("name", &name))
	s.Require().NoError(err)
	s.Equal("Anna", updated.Name)
	s.Equal(u.Surname, updated.Surname)
	s.Equal(u.Email, updated.Email)
	s.Equal(u.PasswordHash, updated.PasswordHash)
	s.Equal(u.Description, updated.Description)

	_, err = s.users.Update(s.ctx, u.ID, patch.New())
	s.ErrorIs(err, models.ErrNoFieldsProvided)

	_, err = s.users.Update(s.ctx, 9999, patch.New().String("name", &name))
	s.ErrorIs(err, models.ErrUserNotFound)
}

func (s *StoreIntegrationSuite) TestRolesAreSeparate() {
	u := s.createUser("r@x.com", false)

	promoted, err := s.users.SetRole(s.ctx, u.ID, models.RoleSeller)
	s.Require().NoError(err)
	s.True(promoted.Seller)
	s.False(promoted.Admin)

	other := s.createUser("q@x.com", false)
	crowned, err := s.users.SetRole(s.ctx, other.ID, models.RoleAdmin)
	s.Require().NoError(err)
	s.True(crowned.Admin)
	s.False(crowned.Seller)
}

func (s *StoreIntegrationSuite) TestProductImagesAggregation() {
	owner := s.createUser("o@x.com", true)
	p := s.createProduct(owner.ID, "Lamp", "home", 10)
	s.NotNil(p.Images)
	s.Empty(p.Images)

	got, err := s.products.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal([]string{}, got.Images)

	_, err = s.images.Create(s.ctx, "https://cdn/1.png", p.ID)
	s.Require().NoError(err)
	_, err = s.images.Create(s.ctx, "https://cdn/2.png", p.ID)
	s.Require().NoError(err)

	got, err = s.products.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"https://cdn/1.png", "https://cdn/2.png"}, got.Images)

	_, err = s.images.Create(s.ctx, "https://cdn/3.png", 4242)
	s.ErrorIs(err, models.ErrProductNotFound)
}

func (s *StoreIntegrationSuite) TestModerationGate() {
	owner := s.createUser("m@x.com", true)
	p := s.createProduct(owner.ID, "Chair", "furniture", 100)
	s.False(p.Approved)

	listed, err := s.products.ListApprovedByCategory(s.ctx, "furniture")
	s.Require().NoError(err)
	s.Empty(listed)

	_, err = s.products.GetApprovedByID(s.ctx, p.ID)
	s.ErrorIs(err, models.ErrProductNotFound)

	own, err := s.products.ListByOwner(s.ctx, owner.ID, false)
	s.Require().NoError(err)
	s.Len(own, 1)
	public, err := s.products.ListByOwner(s.ctx, owner.ID, true)
	s.Require().NoError(err)
	s.Empty(public)

	approved, err := s.products.SetApproved(s.ctx, p.ID, true)
	s.Require().NoError(err)
	s.True(approved.Approved)

	listed, err = s.products.ListApprovedByCategory(s.ctx, "furniture")
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(p.ID, listed[0].ID)
}

func (s *StoreIntegrationSuite) TestUpdateOwnedIsConditional() {
	owner := s.createUser("own@x.com", true)
	intruder := s.createUser("int@x.com", true)
	p := s.createProduct(owner.ID, "Desk", "furniture", 50)

	zero := 0.0
	no := false
	_, err := s.products.UpdateOwned(s.ctx, p.ID, intruder.ID, patch.New().Float("price", &zero))
	s.ErrorIs(err, models.ErrProductNotFound)

	updated, err := s.products.UpdateOwned(s.ctx, p.ID, owner.ID, patch.New().Float("price", &zero).Bool("approved", &no))
	s.Require().NoError(err)
	s.Equal(0.0, updated.Price)
	s.False(updated.Approved)
	s.Equal("Desk", updated.Name)
	s.Equal([]string{}, updated.Images)

	s.ErrorIs(s.products.DeleteOwned(s.ctx, p.ID, intruder.ID), models.ErrProductNotFound)
	s.NoError(s.products.DeleteOwned(s.ctx, p.ID, owner.ID))
}

func (s *StoreIntegrationSuite) TestProductDeleteCascades() {
	owner := s.createUser("c@x.com", true)
	p := s.createProduct(owner.ID, "Vase", "home", 5)
	img, err := s.images.Create(s.ctx, "https://cdn/v.png", p.ID)
	s.Require().NoError(err)
	tag, err := s.tags.Create(s.ctx, "glass", p.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.products.Delete(s.ctx, p.ID))

	_, err = s.images.GetByID(s.ctx, img.ID)
	s.ErrorIs(err, models.ErrImageNotFound)
	_, err = s.tags.GetByID(s.ctx, tag.ID)
	s.ErrorIs(err, models.ErrTagNotFound)
	s.ErrorIs(s.products.Delete(s.ctx, p.ID), models.ErrProductNotFound)
}

func (s *StoreIntegrationSuite) TestSearchOnlyApprovedAndRanked() {
	owner := s.createUser("s@x.com", true)
	byName := s.createProduct(owner.ID, "Red lamp", "home", 10)
	byDesc, err := s.products.Create(s.ctx, models.NewProduct{Name: "Shade", Description: "fits any lamp", Category: "home", OwnerID: owner.ID})
	s.Require().NoError(err)
	hidden := s.createProduct(owner.ID, "Lamp prototype", "home", 1)

	for _, id := range []int64{byName.ID, byDesc.ID} {
		_, err := s.products.SetApproved(s.ctx, id, true)
		s.Require().NoError(err)
	}

	results, err := s.products.Search(s.ctx, "LAMP", models.Page{})
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(byName.ID, results[0].ID)
	s.Equal(byDesc.ID, results[1].ID)
	s.Greater(results[0].Score, results[1].Score)
	for _, r := range results {
		s.NotEqual(hidden.ID, r.ID)
	}

	results, err = s.products.Search(s.ctx, "lamp", models.Page{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(byDesc.ID, results[0].ID)

	results, err = s.products.Search(s.ctx, "%", models.Page{})
	s.Require().NoError(err)
	s.Empty(results)
}

func (s *StoreIntegrationSuite) TestCartRoundtrip() {
	buyer := s.createUser("b@x.com", false)
	seller := s.createUser("sl@x.com", true)
	p := s.createProduct(seller.ID, "Book", "books", 3)
	_, err := s.products.SetApproved(s.ctx, p.ID, true)
	s.Require().NoError(err)

	entry, err := s.cart.Add(s.ctx, buyer.ID, p.ID)
	s.Require().NoError(err)
	again, err := s.cart.Add(s.ctx, buyer.ID, p.ID)
	s.Require().NoError(err)
	s.Equal(entry.ID, again.ID)

	items, err := s.cart.ListByUser(s.ctx, buyer.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(p.ID, items[0].Product.ID)
	s.Equal([]string{}, items[0].Images)

	favs, err := s.favourite.ListByUser(s.ctx, buyer.ID)
	s.Require().NoError(err)
	s.Empty(favs)

	s.ErrorIs(s.cart.Remove(s.ctx, entry.ID, seller.ID), models.ErrEntryNotFound)
	s.NoError(s.cart.Remove(s.ctx, entry.ID, buyer.ID))

	items, err = s.cart.ListByUser(s.ctx, buyer.ID)
	s.Require().NoError(err)
	s.Empty(items)

	_, err = s.cart.Add(s.ctx, buyer.ID, 31337)
	s.ErrorIs(err, models.ErrProductNotFound)
}

func (s *StoreIntegrationSuite) TestTokenDenylist() {
	revoked, err := s.denylist.IsRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.denylist.Revoke(s.ctx, "jti-1", time.Minute))
	revoked, err = s.denylist.IsRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	s.NoError(s.denylist.Revoke(s.ctx, "jti-2", -time.Second))
	revoked, err = s.denylist.IsRevoked(s.ctx, "jti-2")
	s.Require().NoError(err)
	s.False(revoked)
}

func TestStoreIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		t.Skipf("Docker client unavailable: %v", err)
	}
	defer cli.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(pingCtx); err != nil {
		t.Skipf("Docker daemon is not reachable: %v", err)
	}

	suite.Run(t, new(StoreIntegrationSuite))
}
