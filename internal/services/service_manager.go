package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/reviewhub/review-service/internal/auth"
	"github.com/reviewhub/review-service/internal/events"
	"github.com/reviewhub/review-service/internal/repositories"
	"github.com/reviewhub/review-service/internal/validator"
)

// ServiceManager wires and owns all service instances.
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Taxonomy() TaxonomyService
	Title() TitleService
	Review() ReviewService
	Comment() CommentService
	Export() ExportService
	Notification() NotificationService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerConfig carries the auth primitives and event publisher the
// services depend on.
type ServiceManagerConfig struct {
	CodeIssuer  *auth.CodeIssuer
	TokenIssuer *auth.TokenIssuer
	Publisher   events.EventPublisher
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	// Service instances
	authService         AuthService
	userService         UserService
	taxonomyService     TaxonomyService
	titleService        TitleService
	reviewService       ReviewService
	commentService      CommentService
	exportService       ExportService
	notificationService NotificationService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if sm.config.CodeIssuer == nil || sm.config.TokenIssuer == nil {
		return fmt.Errorf("auth issuers are required")
	}
	if sm.config.Publisher == nil {
		return fmt.Errorf("event publisher is required")
	}

	sm.notificationService = NewNotificationService(sm.config.Publisher, sm.logger)
	sm.logger.Info("Notification service initialized")

	sm.authService = NewAuthService(sm.repo, sm.config.CodeIssuer, sm.config.TokenIssuer, sm.notificationService, sm.logger, sm.validator)
	sm.logger.Info("Auth service initialized")

	sm.userService = NewUserService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("User service initialized")

	sm.taxonomyService = NewTaxonomyService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Taxonomy service initialized")

	sm.titleService = NewTitleService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Title service initialized")

	sm.reviewService = NewReviewService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Review service initialized")

	sm.commentService = NewCommentService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Comment service initialized")

	sm.exportService = NewExportService(sm.repo, sm.logger)
	sm.logger.Info("Export service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// HealthCheck verifies the manager's dependencies are reachable
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.repo.Ping(ctx)
}

// Shutdown stops the services and releases the publisher
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.notificationService != nil {
		if err := sm.notificationService.Close(); err != nil {
			sm.logger.Error("Failed to close notification service", "error", err)
		}
	}

	sm.shutdown = true
	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Taxonomy() TaxonomyService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.taxonomyService
}

func (sm *serviceManager) Title() TitleService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.titleService
}

func (sm *serviceManager) Review() ReviewService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.reviewService
}

func (sm *serviceManager) Comment() CommentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.commentService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.notificationService
}
