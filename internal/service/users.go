package service

import (
	"context"

	"marketplace-server/internal/access"
	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"

	"go.uber.org/zap"
)

// Upload is an in-memory file received from a client.
type Upload struct {
	Data        []byte
	ContentType string
}

func (u Upload) validate() error {
	if len(u.Data) == 0 {
		return models.NewValidationError("file is required")
	}
	return nil
}

const profilePictureFolder = "profiles"

// UserService manages accounts on behalf of an authenticated caller.
type UserService interface {
	Create(ctx context.Context, caller *models.Caller, in RegisterInput) (*models.User, error)
	Get(ctx context.Context, caller *models.Caller, id int64) (*models.User, error)
	List(ctx context.Context, caller *models.Caller) ([]models.User, error)
	Update(ctx context.Context, caller *models.Caller, id int64, p models.UserPatch) (*models.User, error)
	SetPicture(ctx context.Context, caller *models.Caller, id int64, file Upload) (*models.User, error)
	Promote(ctx context.Context, caller *models.Caller, id int64) (*models.User, error)
	Crown(ctx context.Context, caller *models.Caller, id int64) (*models.User, error)
	Delete(ctx context.Context, caller *models.Caller, id int64) error
}

var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	users    interfaces.UserRepository
	uploader interfaces.Uploader
	events   interfaces.EventPublisher
	pepper   string
	logger   *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(users interfaces.UserRepository, uploader interfaces.Uploader, events interfaces.EventPublisher, pepper string, logger *zap.Logger) UserService {
	return &userServiceImpl{
		users:    users,
		uploader: uploader,
		events:   events,
		pepper:   pepper,
		logger:   logger.Named("UserService"),
	}
}

func canViewUser(targetID int64) access.Rule {
	return func(c models.Caller) bool { return access.CanViewPrivateUser(c.UserID, targetID, c.Admin) }
}

// Create lets an admin open an account for someone else. The new user gets
// default roles.
func (s *userServiceImpl) Create(ctx context.Context, caller *models.Caller, in RegisterInput) (*models.User, error) {
	if err := access.Require(caller, access.Admin); err != nil {
		return nil, err
	}
	user, err := createAccount(ctx, s.users, s.pepper, s.logger, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User created by admin", zap.Int64("userID", user.ID), zap.Int64("adminID", caller.UserID))
	return user, nil
}

func (s *userServiceImpl) Get(ctx context.Context, caller *models.Caller, id int64) (*models.User, error) {
	if err := access.Require(caller, canViewUser(id)); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *userServiceImpl) List(ctx context.Context, caller *models.Caller) ([]models.User, error) {
	if err := access.Require(caller, access.Admin); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Update applies a sparse profile change. A new password is hashed before it
// reaches the store.
func (s *userServiceImpl) Update(ctx context.Context, caller *models.Caller, id int64, p models.UserPatch) (*models.User, error) {
	if err := access.Require(caller, access.Self(id)); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	set := patch.New().
		String("name", trimmed(p.Name)).
		String("surname", trimmed(p.Surname)).
		String("description", p.Description)

	if p.Email != nil && *p.Email != "" {
		email := normalizeEmail(*p.Email)
		if err := validate.Var(email, "email"); err != nil {
			return nil, models.NewValidationError("email must be a valid email address")
		}
		set.String("email", &email)
	}
	if p.Password != nil && *p.Password != "" {
		hashed, err := hashPassword(*p.Password, s.pepper)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Int64("userID", id), zap.Error(err))
			return nil, err
		}
		set.String("password", &hashed)
	}

	if set.Empty() {
		return nil, models.ErrNoFieldsProvided
	}
	return s.users.Update(ctx, id, set)
}

func (s *userServiceImpl) SetPicture(ctx context.Context, caller *models.Caller, id int64, file Upload) (*models.User, error) {
	if err := access.Require(caller, access.Self(id)); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := file.validate(); err != nil {
		return nil, err
	}
	// fail before uploading an orphan blob
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}

	link, err := s.uploader.Upload(ctx, file.Data, file.ContentType, profilePictureFolder)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Update(ctx, id, patch.New().Value("picture", link))
	if err != nil {
		return nil, err
	}
	s.logger.Info("Profile picture updated", zap.Int64("userID", id))
	return user, nil
}

func (s *userServiceImpl) Promote(ctx context.Context, caller *models.Caller, id int64) (*models.User, error) {
	return s.grant(ctx, caller, id, models.RoleSeller, models.EventUserPromoted)
}

func (s *userServiceImpl) Crown(ctx context.Context, caller *models.Caller, id int64) (*models.User, error) {
	return s.grant(ctx, caller, id, models.RoleAdmin, models.EventUserCrowned)
}

func (s *userServiceImpl) grant(ctx context.Context, caller *models.Caller, id int64, role models.Role, event models.EventType) (*models.User, error) {
	if err := access.Require(caller, access.Admin); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	user, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Role granted", zap.Int64("userID", id), zap.String("role", string(role)), zap.Int64("adminID", caller.UserID))
	publishEvent(ctx, s.events, s.logger, models.NewDomainEvent(event, id, caller.UserID))
	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, caller *models.Caller, id int64) error {
	if err := access.Require(caller, access.Admin); err != nil {
		return err
	}
	if err := validateID("id", id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	publishEvent(ctx, s.events, s.logger, models.NewDomainEvent(models.EventUserDeleted, id, caller.UserID))
	return nil
}
