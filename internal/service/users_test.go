package service_test

import (
	"context"
	"testing"

	"marketplace-server/internal/mocks"
	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"
	"marketplace-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService() (service.UserService, *mocks.MockUserRepository, *mocks.MockUploader, *mocks.MockEventPublisher) {
	users := &mocks.MockUserRepository{}
	uploader := &mocks.MockUploader{}
	events := &mocks.MockEventPublisher{}
	return service.NewUserService(users, uploader, events, testPepper, zap.NewNop()), users, uploader, events
}

func TestUserService_GetSelfOrAdmin(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserService()
	users.On("GetByID", ctx, int64(20)).Return(&models.User{ID: 20}, nil)

	_, err := svc.Get(ctx, plainUser, 20)
	require.NoError(t, err)
	_, err = svc.Get(ctx, admin, 20)
	require.NoError(t, err)

	_, err = svc.Get(ctx, seller, 20)
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = svc.Get(ctx, nil, 20)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestUserService_UpdateBuildsOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserService()

	var got *patch.Set
	users.On("Update", ctx, int64(20), mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(2).(*patch.Set)
	}).Return(&models.User{ID: 20}, nil)

	_, err := svc.Update(ctx, plainUser, 20, models.UserPatch{
		Email:    str(" New@Mail.com "),
		Password: str("secret"),
		Surname:  str(""),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "password"}, got.Columns())

	sql, args, err := got.Build("users", "", patch.Eq("id_user", 20))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET email = $1, password = $2 WHERE id_user = $3", sql)
	assert.Equal(t, "new@mail.com", args[0])
	assert.NotEqual(t, "secret", args[1], "password is stored hashed")
}

func TestUserService_UpdateRejections(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserService()

	_, err := svc.Update(ctx, plainUser, 20, models.UserPatch{})
	assert.ErrorIs(t, err, models.ErrNoFieldsProvided)

	_, err = svc.Update(ctx, plainUser, 20, models.UserPatch{Email: str("broken")})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Update(ctx, seller, 20, models.UserPatch{Name: str("x")})
	assert.ErrorIs(t, err, models.ErrForbidden)

	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_EscalationSeparation(t *testing.T) {
	ctx := context.Background()
	svc, users, _, events := newUserService()
	users.On("SetRole", ctx, int64(20), models.RoleSeller).Return(&models.User{ID: 20, Seller: true}, nil)
	users.On("SetRole", ctx, int64(20), models.RoleAdmin).Return(&models.User{ID: 20, Admin: true}, nil)
	events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	promoted, err := svc.Promote(ctx, admin, 20)
	require.NoError(t, err)
	assert.True(t, promoted.Seller)
	assert.False(t, promoted.Admin)

	crowned, err := svc.Crown(ctx, admin, 20)
	require.NoError(t, err)
	assert.True(t, crowned.Admin)
	assert.False(t, crowned.Seller)

	_, err = svc.Promote(ctx, seller, 20)
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = svc.Crown(ctx, plainUser, 20)
	assert.ErrorIs(t, err, models.ErrForbidden)

	users.AssertNumberOfCalls(t, "SetRole", 2)
	events.AssertNumberOfCalls(t, "Publish", 2)
}

func TestUserService_SetPicture(t *testing.T) {
	ctx := context.Background()
	svc, users, uploader, _ := newUserService()
	file := service.Upload{Data: []byte{0x89, 'P', 'N', 'G'}, ContentType: "image/png"}

	users.On("GetByID", ctx, int64(20)).Return(&models.User{ID: 20}, nil)
	uploader.On("Upload", ctx, file.Data, "image/png", "profiles").Return("https://cdn/profiles/a.png", nil)
	users.On("Update", ctx, int64(20), mock.MatchedBy(func(set *patch.Set) bool {
		return assert.ObjectsAreEqual([]string{"picture"}, set.Columns())
	})).Return(&models.User{ID: 20, Picture: str("https://cdn/profiles/a.png")}, nil)

	user, err := svc.SetPicture(ctx, plainUser, 20, file)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/profiles/a.png", *user.Picture)

	_, err = svc.SetPicture(ctx, plainUser, 20, service.Upload{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUserService_SetPictureUploadFailure(t *testing.T) {
	ctx := context.Background()
	svc, users, uploader, _ := newUserService()
	users.On("GetByID", ctx, int64(20)).Return(&models.User{ID: 20}, nil)
	uploader.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", models.ErrUploadFailed)

	_, err := svc.SetPicture(ctx, plainUser, 20, service.Upload{Data: []byte("x")})
	assert.ErrorIs(t, err, models.ErrUploadFailed)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	svc, users, _, events := newUserService()
	users.On("Delete", ctx, int64(20)).Return(nil)
	users.On("List", ctx).Return([]models.User{{ID: 1}, {ID: 20}}, nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e models.DomainEvent) bool {
		return e.Type == models.EventUserDeleted && e.EntityID == 20
	})).Return(nil).Once()

	assert.ErrorIs(t, svc.Delete(ctx, plainUser, 20), models.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, 20))

	_, err := svc.List(ctx, plainUser)
	assert.ErrorIs(t, err, models.ErrForbidden)
	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	events.AssertExpectations(t)
}

func TestUserService_AdminCreate(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserService()
	in := service.RegisterInput{Name: "Bo", Surname: "Li", Email: "bo@x.com", Password: "pw"}

	_, err := svc.Create(ctx, seller, in)
	assert.ErrorIs(t, err, models.ErrForbidden)

	users.On("GetByEmail", ctx, "bo@x.com").Return(nil, models.ErrUserNotFound)
	users.On("Create", ctx, mock.Anything).Return(nil)
	user, err := svc.Create(ctx, admin, in)
	require.NoError(t, err)
	assert.False(t, user.Admin)
	assert.NotEqual(t, "pw", user.PasswordHash)
}
