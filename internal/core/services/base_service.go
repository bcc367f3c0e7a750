package services

import (
	"context"
	"log/slog"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	portssvc "github.com/KudaNhari/boarding_house_mgmt/internal/core/ports/services"
	"github.com/KudaNhari/boarding_house_mgmt/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.BoardingHouseAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for a boarding house
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, boardingHouseID string, requiredRole domain.UserBoardingHouseRole) error {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeUserAction(ctx, userID, boardingHouseID, requiredRole)
	}
	s.LogDebug(ctx, "No boarding house authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("boarding_house_id", boardingHouseID),
		slog.String("required_role", string(requiredRole)))
	return nil
}
