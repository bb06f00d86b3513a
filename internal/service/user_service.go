package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/escusoft/escuela-backend/internal/model"
	"github.com/escusoft/escuela-backend/internal/pagination"
	"github.com/escusoft/escuela-backend/internal/repository"
)

// Service-level sentinels shared by handlers.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnknownRole  = errors.New("unknown user type")
)

// UserSearchLimit is the contact-picker page size without a search term;
// SearchRaisedLimit applies once a search of at least MinSearchLen runs.
const (
	ContactLimit       = 20
	ContactSearchLimit = 50
	MinSearchLen       = 2
)

// UserService implements registration, login payloads and every user listing
// variant, including the keyset-paginated ones.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// Register creates a user with its detail atomically. Uniqueness clashes come
// back as the repository sentinels.
func (s *UserService) Register(ctx context.Context, req *model.RegisterUserRequest) (*model.User, error) {
	role, err := model.ParseRole(req.Type)
	if err != nil {
		return nil, ErrUnknownRole
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Detail: model.UserDetail{
			DNI:       req.DNI,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      role,
			Email:     req.Email,
			CareerID:  req.CareerID,
		},
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", u.ID).Str("type", role.String()).Msg("user registered")
	return u, nil
}

// Login checks credentials and returns the user plus a fresh token.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if err := s.auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateToken(u.Username)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetByID retrieves one user with detail.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ListAll returns every user with detail.
func (s *UserService) ListAll(ctx context.Context) ([]model.UserWithDetail, error) {
	return s.userRepo.ListAll(ctx)
}

// ListTeachers returns every teacher.
func (s *UserService) ListTeachers(ctx context.Context) ([]model.Contact, error) {
	return s.userRepo.ListTeachers(ctx)
}

// ListByRolePage is the offset variant with a total count.
func (s *UserService) ListByRolePage(ctx context.Context, roleTag string, limit, offset int) ([]model.UserWithDetail, int, error) {
	role, err := model.ParseRole(roleTag)
	if err != nil {
		return nil, 0, ErrUnknownRole
	}
	return s.userRepo.ListByRolePage(ctx, role, limit, offset)
}

// SearchByRolePage is the offset variant with a name substring and a total.
func (s *UserService) SearchByRolePage(ctx context.Context, roleTag, q string, limit, offset int) ([]model.UserWithDetail, int, error) {
	role, err := model.ParseRole(roleTag)
	if err != nil {
		return nil, 0, ErrUnknownRole
	}
	if q == "" {
		return s.userRepo.ListByRolePage(ctx, role, limit, offset)
	}
	return s.userRepo.SearchByRolePage(ctx, role, q, limit, offset)
}

// ListKeyset fetches one keyset page with the optional structured filters and
// derives the next cursor from it.
func (s *UserService) ListKeyset(ctx context.Context, params pagination.Params, filter *model.UserFilter) ([]model.UserWithDetail, *int, error) {
	limit, err := params.NormalizeLimit()
	if err != nil {
		return nil, nil, err
	}

	users, err := s.userRepo.ListKeyset(ctx, params.Cursor(), limit, buildUserFilter(filter))
	if err != nil {
		return nil, nil, err
	}

	next := pagination.NextCursor(users, limit, func(u model.UserWithDetail) int { return u.ID })
	return users, next, nil
}

// buildUserFilter renders the typed filter into a predicate conjunction.
// Username and email match case-insensitive substrings, the role tag matches
// exactly, search spans first name, last name and email.
func buildUserFilter(f *model.UserFilter) *pagination.Builder {
	if f == nil {
		return nil
	}

	var b pagination.Builder
	if f.Username != "" {
		b.Where("u.username ILIKE ?", "%"+f.Username+"%")
	}
	if f.Role != "" {
		b.Where("ud.type = ?", f.Role)
	}
	if f.Email != "" {
		b.Where("ud.email ILIKE ?", "%"+f.Email+"%")
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b.Where("(ud.first_name ILIKE ? OR ud.last_name ILIKE ? OR ud.email ILIKE ?)",
			pattern, pattern, pattern)
	}
	if b.Empty() {
		return nil
	}
	return &b
}

// Contacts applies the role visibility matrix of the messaging feature:
// admins see everyone, teachers see admins and students, students see admins
// and teachers. A search of MinSearchLen or more raises the page limit.
func (s *UserService) Contacts(ctx context.Context, userID int, search string) ([]model.Contact, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var visible []model.Role
	switch u.Detail.Role {
	case model.RoleAdmin:
		visible = nil // all roles
	case model.RoleTeacher:
		visible = []model.Role{model.RoleAdmin, model.RoleStudent}
	case model.RoleStudent:
		visible = []model.Role{model.RoleAdmin, model.RoleTeacher}
	default:
		return nil, ErrUnknownRole
	}

	limit := ContactLimit
	if len(search) >= MinSearchLen {
		limit = ContactSearchLimit
	} else {
		search = ""
	}

	return s.userRepo.ListContacts(ctx, userID, visible, search, limit)
}

// UpdatePassword replaces only the password.
func (s *UserService) UpdatePassword(ctx context.Context, id int, password string) error {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UpdateProfile renames a user and resets the password, enforcing username
// uniqueness against other users.
func (s *UserService) UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) error {
	taken, err := s.userRepo.UsernameTakenByOther(ctx, req.Username, req.ID)
	if err != nil {
		return err
	}
	if taken {
		return repository.ErrDuplicateUsername
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateProfile(ctx, req.ID, req.Username, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
