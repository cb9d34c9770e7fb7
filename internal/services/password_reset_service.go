package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yusup-rd/gourmet-gleam/internal/email"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	pkgauth "github.com/yusup-rd/gourmet-gleam/pkg/auth"
	pkglogger "github.com/yusup-rd/gourmet-gleam/pkg/logger"
)

// ResetCodeRepository defines the reset-code persistence operations.
type ResetCodeRepository interface {
	Create(ctx context.Context, userID int64, code string, expiresAt time.Time) (*models.PasswordResetCode, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	GetValid(ctx context.Context, email, code string) (*models.PasswordResetCode, error)
	ClaimTx(ctx context.Context, tx pgx.Tx, email, code string) (int64, error)
}

// TxUserRepository is the transactional slice of the user repository used by
// the confirm step.
type TxUserRepository interface {
	UpdatePasswordTx(ctx context.Context, tx pgx.Tx, id int64, passwordHash string) error
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// PasswordResetService orchestrates the three-step reset flow: request a
// code, verify it, confirm a new password. Confirm consumes the code and
// writes the password in one transaction.
type PasswordResetService struct {
	userRepo    UserRepository
	txUserRepo  TxUserRepository
	codeRepo    ResetCodeRepository
	tx          TxRunner
	mailer      email.Mailer
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
	codeExpiry  time.Duration
}

func NewPasswordResetService(
	userRepo UserRepository,
	txUserRepo TxUserRepository,
	codeRepo ResetCodeRepository,
	tx TxRunner,
	mailer email.Mailer,
	logger *slog.Logger,
	auditLogger *pkglogger.AuditLogger,
	codeExpiry time.Duration,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:    userRepo,
		txUserRepo:  txUserRepo,
		codeRepo:    codeRepo,
		tx:          tx,
		mailer:      mailer,
		logger:      logger,
		auditLogger: auditLogger,
		codeExpiry:  codeExpiry,
	}
}

// RequestCode issues a fresh reset code for the account and emails it.
// Any codes already outstanding for the account are invalidated first, so
// only the newest code can ever succeed. An unknown email surfaces as
// ErrNotFound.
func (s *PasswordResetService) RequestCode(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.codeRepo.DeleteByUserID(ctx, user.ID); err != nil {
		s.logger.Error("failed to supersede outstanding reset codes", slog.Any("error", err))
		return models.ErrInternalServer
	}

	code, err := pkgauth.GenerateResetCode()
	if err != nil {
		s.logger.Error("failed to generate reset code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	expiresAt := time.Now().Add(s.codeExpiry)
	if _, err := s.codeRepo.Create(ctx, user.ID, code, expiresAt); err != nil {
		s.logger.Error("failed to store reset code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.mailer.SendResetCode(ctx, user.Email, user.Name, code, expiresAt); err != nil {
		s.logger.Error("failed to email reset code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogPasswordEvent(pkglogger.AuditEvent{
		EventType: "reset_code_requested",
		UserID:    user.ID,
		Success:   true,
	})

	return nil
}

// VerifyCode checks that an unexpired code matching the email exists. The
// code is not consumed; confirmation re-checks it atomically.
func (s *PasswordResetService) VerifyCode(ctx context.Context, emailAddr, code string) error {
	_, err := s.codeRepo.GetValid(ctx, emailAddr, code)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInvalidOrExpiredCode
		}
		s.logger.Error("failed to look up reset code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	return nil
}

// ConfirmNewPassword consumes the code and writes the new password hash in a
// single transaction. The code's validity is re-checked by the consuming
// delete itself, so a code that expired after VerifyCode, was superseded, or
// was already used fails here with ErrInvalidOrExpiredCode.
func (s *PasswordResetService) ConfirmNewPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	var userID int64
	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		userID, err = s.codeRepo.ClaimTx(ctx, tx, emailAddr, code)
		if err != nil {
			return err
		}
		return s.txUserRepo.UpdatePasswordTx(ctx, tx, userID, hash)
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidOrExpiredCode) {
			s.auditLogger.LogPasswordEvent(pkglogger.AuditEvent{
				EventType:     "password_reset_failed",
				FailureReason: "invalid_or_expired_code",
				Success:       false,
			})
			return models.ErrInvalidOrExpiredCode
		}
		s.logger.Error("failed to confirm password reset", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogPasswordEvent(pkglogger.AuditEvent{
		EventType: "password_reset_completed",
		UserID:    userID,
		Success:   true,
	})

	return nil
}
