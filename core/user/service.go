package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
)

var (
	// errors
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		Create(ctx context.Context, usr User) (User, error)
		Get(ctx context.Context, id string) (User, error)
		FindOne(ctx context.Context, filter core.Filter) (User, error)
		Query(ctx context.Context, filter core.Filter, orderings ...core.DBOrdering) ([]User, error)
		Update(ctx context.Context, usr User) (User, error)
		Delete(ctx context.Context, id string) error
	}

	// DependencyChecker guards user deletion.
	DependencyChecker interface {
		CanDeleteUser(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nu NewUser) (User, error)
		Query(ctx context.Context, filter QueryFilter) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Update(ctx context.Context, usr User, uu UpdateUser) (User, error)
		SetLastLogin(ctx context.Context, usr User) (User, error)
		SetPassword(ctx context.Context, usr User, pwd string) (User, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo    Repository
		checker DependencyChecker
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, checker DependencyChecker) Service {
	return &service{repo: repo, checker: checker}
}

func (svc *service) checkUniqueness(ctx context.Context, email string, exclUsers ...User) error {
	usr, err := svc.repo.FindOne(ctx, core.Filter{"email": email})
	if err != nil {
		if core.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, "finding user by email")
	}
	for _, excl := range exclUsers {
		if excl.ID == usr.ID {
			return nil
		}
	}
	return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
}

func (svc *service) Create(ctx context.Context, nu NewUser) (User, error) {
	nu.Clean()
	if err := svc.checkUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}

	now := core.Now()
	usr := User{
		ID:        core.NewID(),
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		Status:    nu.Status,
		Avatar:    nu.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if usr.Avatar == "" {
		usr.Avatar = DefaultAvatar(usr.Name)
	}
	if nu.Password != "" {
		if err := usr.SetPassword(nu.Password); err != nil {
			return User{}, errors.Wrap(err, "setting password")
		}
	}
	return svc.repo.Create(ctx, usr)
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]User, error) {
	return svc.repo.Query(ctx, filter.toFilter())
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.FindOne(ctx, core.Filter{"email": core.CleanString(email, true /* lower */)})
}

func (svc *service) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	if err := svc.checkUniqueness(ctx, uu.Email, usr); err != nil {
		return User{}, err
	}

	usr.Name = uu.Name
	usr.Email = uu.Email
	usr.Role = uu.Role
	usr.Status = uu.Status
	usr.Avatar = uu.Avatar
	if usr.Avatar == "" {
		usr.Avatar = DefaultAvatar(usr.Name)
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, errors.Wrap(err, "setting password")
		}
	}
	usr.UpdatedAt = core.Now()
	return svc.repo.Update(ctx, usr)
}

func (svc *service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	now := core.Now()
	usr.LastLogin = &now
	return svc.repo.Update(ctx, usr)
}

func (svc *service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = core.Now()
	return svc.repo.Update(ctx, usr)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	if _, err := svc.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := svc.checker.CanDeleteUser(ctx, id); err != nil {
		return err
	}
	return svc.repo.Delete(ctx, id)
}
