package client

import (
	"context"
	"log/slog"
	"strings"

	"delivery-platform/internal/credential"
	"delivery-platform/internal/domain"
	"delivery-platform/internal/logging"
	clientrepo "delivery-platform/internal/repository/client"
	"github.com/pkg/errors"
)

// Service owns client registration, authentication and profile changes.
// Every Client it returns has the password hash cleared.
type Service struct {
	repo   clientrepo.Repository
	hasher credential.Hasher
	logger *slog.Logger

	// dummyHash is verified against when the email is unknown so both
	// authentication failures cost one hash comparison.
	dummyHash string
}

// New creates a Service. It fails when the hasher cannot produce the digest
// used for unknown emails.
func New(repo clientrepo.Repository, hasher credential.Hasher, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	dummy, err := hasher.Hash("dummy-password-for-unknown-email")
	if err != nil {
		return nil, errors.Wrap(err, "client service: dummy hash")
	}
	return &Service{repo: repo, hasher: hasher, logger: logger, dummyHash: dummy}, nil
}

// RegisterInput captures fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// UpdateInput is a merge patch: nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	Address  *string
}

// Register creates a client after checking the email is free.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.Wrap(domain.ErrValidation, "name required")
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, errors.Wrap(domain.ErrValidation, "email required")
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, errors.Wrap(domain.ErrValidation, "password required")
	}

	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, s.storeErr(ctx, "exists by email", err)
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Save(ctx, domain.Client{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Address:      in.Address,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, s.storeErr(ctx, "save", err)
	}

	s.logger.InfoContext(ctx, "client registered", slog.Int64("client_id", created.ID))
	return redacted(created), nil
}

// Authenticate returns the client owning email when password matches.
// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Client, error) {
	c, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, s.storeErr(ctx, "get by email", err)
	}

	digest := s.dummyHash
	if c != nil {
		digest = c.PasswordHash
	}
	if !s.hasher.Verify(password, digest) || c == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return redacted(c), nil
}

// Get returns the client with id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return redacted(c), nil
}

// List returns every client.
func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storeErr(ctx, "list", err)
	}
	out := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.Redacted())
	}
	return out, nil
}

// Update applies a merge patch to the client with id.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Client, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, errors.Wrap(domain.ErrValidation, "name must not be blank")
		}
		existing.Name = name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, errors.Wrap(domain.ErrValidation, "email must not be blank")
		}
		if email != existing.Email {
			taken, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, s.storeErr(ctx, "exists by email", err)
			}
			if taken {
				return nil, domain.ErrDuplicateEmail
			}
			existing.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}
	if in.Phone != nil {
		existing.Phone = *in.Phone
	}
	if in.Address != nil {
		existing.Address = *in.Address
	}

	saved, err := s.repo.Save(ctx, *existing)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			return nil, domain.ErrDuplicateEmail
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrClientNotFound
		}
		return nil, s.storeErr(ctx, "save", err)
	}
	return redacted(saved), nil
}

// Delete removes the client with id. Deleting an unknown id is an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrClientNotFound
		}
		return s.storeErr(ctx, "delete", err)
	}
	s.logger.InfoContext(ctx, "client deleted", slog.Int64("client_id", id))
	return nil
}

func (s *Service) find(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, s.storeErr(ctx, "get by id", err)
	}
	return c, nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, credential.ErrSecretTooLong) {
			return "", errors.Wrap(domain.ErrValidation, err.Error())
		}
		return "", errors.Wrap(err, "hash password")
	}
	return hash, nil
}

func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "client service: store failure", slog.String("op", op), slog.Any("error", err))
	return domain.NewStoreError(op, err)
}

func redacted(c *domain.Client) *domain.Client {
	out := c.Redacted()
	return &out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
