package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	overrideRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/override"
	scheduleRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/schedule"
	companyClient "github.com/m04kA/SMC-DeliverySlots/internal/integrations/companyservice"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

// Service сервис управления расписанием доставки: недельная конфигурация и переопределения на даты
type Service struct {
	weeklyRepo    WeeklyConfigRepository
	overrideRepo  OverrideRepository
	companyClient CompanyServiceClient
	txManager     TxManager
	maxRangeDays  int
	logger        Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	weeklyRepo WeeklyConfigRepository,
	overrideRepo OverrideRepository,
	companyClient CompanyServiceClient,
	txManager TxManager,
	maxRangeDays int,
	logger Logger,
) *Service {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &Service{
		weeklyRepo:    weeklyRepo,
		overrideRepo:  overrideRepo,
		companyClient: companyClient,
		txManager:     txManager,
		maxRangeDays:  maxRangeDays,
		logger:        logger,
	}
}

// GetWeeklyConfig получает недельную конфигурацию компании
// Публичный метод - доступен всем
func (s *Service) GetWeeklyConfig(ctx context.Context, companyID int64) (*models.WeeklyConfigResponse, error) {
	s.logger.Info("GetWeeklyConfig: fetching config for company=%d", companyID)

	cfg, err := s.weeklyRepo.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("GetWeeklyConfig: config for company=%d not found", companyID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetWeeklyConfig: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetWeeklyConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeeklyConfig(cfg), nil
}

// UpsertWeeklyConfig создает или полностью заменяет недельную конфигурацию
// Доступно самой компании и её головной компании
func (s *Service) UpsertWeeklyConfig(ctx context.Context, req *models.UpsertWeeklyConfigRequest) (*models.WeeklyConfigResponse, error) {
	s.logger.Info("UpsertWeeklyConfig: saving config for company=%d by company=%d", req.CompanyID, req.ActorCompanyID)

	// 1. Конвертируем и проверяем инварианты
	cfg, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpsertWeeklyConfig: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("UpsertWeeklyConfig: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем права доступа
	if err := s.checkAccess(ctx, "UpsertWeeklyConfig", req.ActorCompanyID, req.CompanyID); err != nil {
		return nil, err
	}

	// 3. Сохраняем обе таблицы в одной транзакции
	var saved *domain.WeeklyScheduleConfig
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var txErr error
		saved, txErr = s.weeklyRepo.Upsert(ctx, cfg)
		return txErr
	})
	if err != nil {
		s.logger.Error("UpsertWeeklyConfig: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: UpsertWeeklyConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWeeklyConfig: successfully saved config for company=%d", req.CompanyID)
	return models.FromDomainWeeklyConfig(saved), nil
}

// ListOverrides получает переопределения компании за период
func (s *Service) ListOverrides(ctx context.Context, req *models.ListOverridesRequest) (*models.OverrideListResponse, error) {
	s.logger.Info("ListOverrides: fetching overrides for company=%d from %s to %s",
		req.CompanyID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := s.validateRange(req); err != nil {
		s.logger.Warn("ListOverrides: %v", err)
		return nil, err
	}

	if err := s.checkAccess(ctx, "ListOverrides", req.ActorCompanyID, req.CompanyID); err != nil {
		return nil, err
	}

	overrides, err := s.overrideRepo.ListRange(ctx, req.CompanyID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListOverrides: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOverrides: successfully fetched %d overrides for company=%d", len(overrides), req.CompanyID)
	return models.FromDomainOverrideList(overrides), nil
}

// GetOverride получает переопределение на конкретную дату
func (s *Service) GetOverride(ctx context.Context, req *models.GetOverrideRequest) (*models.OverrideResponse, error) {
	date := req.Date.Format(domain.DateFormat)
	s.logger.Info("GetOverride: fetching override for company=%d date=%s", req.CompanyID, date)

	if err := s.checkAccess(ctx, "GetOverride", req.ActorCompanyID, req.CompanyID); err != nil {
		return nil, err
	}

	o, err := s.overrideRepo.GetByDate(ctx, req.CompanyID, req.Date)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("GetOverride: override for company=%d date=%s not found", req.CompanyID, date)
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("GetOverride: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetOverride - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverride(o), nil
}

// CreateOverride создает переопределение на дату
// На одну дату компании допускается только одно переопределение
func (s *Service) CreateOverride(ctx context.Context, req *models.OverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("CreateOverride: creating override for company=%d date=%s by company=%d",
		req.CompanyID, req.Date, req.ActorCompanyID)

	o, err := s.overrideFromRequest("CreateOverride", req)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, "CreateOverride", req.ActorCompanyID, req.CompanyID); err != nil {
		return nil, err
	}

	created, err := s.overrideRepo.Create(ctx, o)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideAlreadyExists) {
			s.logger.Warn("CreateOverride: override for company=%d date=%s already exists", req.CompanyID, req.Date)
			return nil, ErrOverrideAlreadyExists
		}
		s.logger.Error("CreateOverride: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOverride: successfully created override id=%d", created.ID)
	return models.FromDomainOverride(created), nil
}

// UpdateOverride полностью заменяет существующее переопределение на дату
func (s *Service) UpdateOverride(ctx context.Context, req *models.OverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("UpdateOverride: updating override for company=%d date=%s by company=%d",
		req.CompanyID, req.Date, req.ActorCompanyID)

	o, err := s.overrideFromRequest("UpdateOverride", req)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, "UpdateOverride", req.ActorCompanyID, req.CompanyID); err != nil {
		return nil, err
	}

	updated, err := s.overrideRepo.Update(ctx, o)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("UpdateOverride: override for company=%d date=%s not found", req.CompanyID, req.Date)
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("UpdateOverride: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOverride: successfully updated override id=%d", updated.ID)
	return models.FromDomainOverride(updated), nil
}

// DeleteOverride удаляет переопределение; дата снова следует недельному расписанию
func (s *Service) DeleteOverride(ctx context.Context, req *models.DeleteOverrideRequest) error {
	date := req.Date.Format(domain.DateFormat)
	s.logger.Info("DeleteOverride: deleting override for company=%d date=%s by company=%d",
		req.CompanyID, date, req.ActorCompanyID)

	if err := s.checkAccess(ctx, "DeleteOverride", req.ActorCompanyID, req.CompanyID); err != nil {
		return err
	}

	if err := s.overrideRepo.Delete(ctx, req.CompanyID, req.Date); err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override for company=%d date=%s not found", req.CompanyID, date)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error: %v", err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: successfully deleted override for company=%d date=%s", req.CompanyID, date)
	return nil
}

func (s *Service) overrideFromRequest(op string, req *models.OverrideRequest) (*domain.DateOverride, error) {
	o, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("%s: invalid request: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := o.Validate(); err != nil {
		s.logger.Warn("%s: validation failed: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return o, nil
}

func (s *Service) validateRange(req *models.ListOverridesRequest) error {
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}
	if days := domain.DaysInRange(req.From, req.To); days > s.maxRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds limit of %d", ErrInvalidInput, days, s.maxRangeDays)
	}
	return nil
}

// checkAccess проверяет, что actorID может управлять расписанием targetID
func (s *Service) checkAccess(ctx context.Context, op string, actorID, targetID int64) error {
	allowed, err := s.companyClient.CanManage(ctx, actorID, targetID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			s.logger.Warn("%s: company id=%d not found", op, targetID)
			return ErrCompanyNotFound
		}
		s.logger.Error("%s: failed to check access for company=%d: %v", op, targetID, err)
		return fmt.Errorf("%w: failed to check access: %v", ErrInternal, err)
	}

	if !allowed {
		s.logger.Warn("%s: company=%d is not allowed to manage company=%d", op, actorID, targetID)
		return ErrAccessDenied
	}

	return nil
}
