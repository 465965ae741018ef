package auth

import (
	"log/slog"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/audit"
	orgDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/organisation"
	userDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

// Service registers organisations, authenticates logins and issues
// session tokens.
type Service struct {
	repo       RepositoryAPI
	tokenGen   TokenGeneratorAPI
	auditor    audit.Recorder
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, auditor audit.Recorder, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.DefaultCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		auditor:    auditor,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an organisation and its admin user in one transaction,
// then issues a token for the new session.
func (s *Service) Register(dto RegisterDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	if exists {
		s.logger.Warn("register: email already taken", "email", dto.Email)
		return nil, internal.ErrDuplicateCredential
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("register: failed to hash password", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}

	org := &orgDatamodel.Organisation{Name: dto.OrgName}
	admin := &userDatamodel.User{
		Email:        dto.Email,
		PasswordHash: hash,
		Name:         dto.AdminName,
	}

	if err := s.repo.CreateOrganisationWithAdmin(org, admin); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("register: failed to create organisation", "error", err, "org_name", dto.OrgName)
		return nil, internal.NewInternalError("Server error", err)
	}

	token, err := s.tokenGen.GenerateToken(admin.ID, org.ID)
	if err != nil {
		s.logger.Error("register: failed to issue token", "error", err, "user_id", admin.ID)
		return nil, internal.NewInternalError("Server error", err)
	}

	if err := s.auditor.Record(org.ID, admin.ID, audit.ActionUserRegistered, audit.Meta{
		"organisationId": org.ID,
		"userId":         admin.ID,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("organisation registered",
		"organisation_id", org.ID,
		"user_id", admin.ID)

	return &AuthResult{
		Token: token,
		User: UserView{
			ID:             admin.ID,
			Email:          admin.Email,
			Name:           admin.Name,
			OrganisationID: org.ID,
		},
	}, nil
}

// Login verifies the credentials and issues a token. A missing user and a
// wrong password both return the identical error.
func (s *Service) Login(dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login: user lookup failed", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(user.PasswordHash, dto.Password); err != nil {
		s.logger.Warn("login: password mismatch", "user_id", user.ID)
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGen.GenerateToken(user.ID, user.OrganisationID)
	if err != nil {
		s.logger.Error("login: failed to issue token", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("Server error", err)
	}

	if err := s.auditor.Record(user.OrganisationID, user.ID, audit.ActionUserLoggedIn, audit.Meta{
		"userId": user.ID,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "organisation_id", user.OrganisationID)

	return &AuthResult{
		Token: token,
		User: UserView{
			ID:             user.ID,
			Email:          user.Email,
			Name:           user.Name,
			OrganisationID: user.OrganisationID,
		},
	}, nil
}

// Logout records the audit event only. Tokens are stateless and remain
// valid until natural expiry.
func (s *Service) Logout(sess internal.Session) error {
	if err := s.auditor.Record(sess.OrganisationID, sess.UserID, audit.ActionUserLoggedOut, audit.Meta{
		"userId": sess.UserID,
	}); err != nil {
		return err
	}

	s.logger.Info("user logged out", "user_id", sess.UserID, "organisation_id", sess.OrganisationID)
	return nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

// SessionFromToken verifies the token and re-reads the user row, so a user
// deleted after issuance cannot keep an authenticated session. The
// organisation id comes from storage, not from the claim alone.
func (s *Service) SessionFromToken(tokenString string) (internal.Session, error) {
	claims, err := s.tokenGen.ValidateToken(tokenString)
	if err != nil {
		return internal.Session{}, err
	}

	user, err := s.repo.GetUserByID(claims.UserID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return internal.Session{}, appErr
		}
		s.logger.Error("session: user lookup failed", "error", err, "user_id", claims.UserID)
		return internal.Session{}, internal.NewInternalError("Server error", err)
	}

	return internal.Session{
		UserID:         user.ID,
		OrganisationID: user.OrganisationID,
	}, nil
}
