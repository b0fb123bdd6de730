package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	companyClient "github.com/m04kA/SMC-DeliverySlots/internal/integrations/companyservice"
)

// UseCase use case для получения доступных половин дня доставки
// Сначала считается доступность по каждой дате, затем по всей последовательности
// применяется правило минимального опережения
type UseCase struct {
	calculator    AvailabilityCalculator
	settings      AdvanceSettings
	filter        AdvanceFilter
	companyClient CompanyServiceClient
	timeProvider  TimeProvider
	maxRangeDays  int
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calculator AvailabilityCalculator,
	settings AdvanceSettings,
	filter AdvanceFilter,
	companyClient CompanyServiceClient,
	timeProvider TimeProvider,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		calculator:    calculator,
		settings:      settings,
		filter:        filter,
		companyClient: companyClient,
		timeProvider:  timeProvider,
		maxRangeDays:  maxRangeDays,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных половин дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: company=%d, from=%s, to=%s, onlyAvailable=%t",
		req.CompanyID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.OnlyAvailable)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем компанию; при недоступности CompanyService продолжаем без проверки
	exists, err := uc.companyClient.CompanyExists(ctx, req.CompanyID)
	if err != nil {
		if !errors.Is(err, companyClient.ErrServiceDegraded) {
			uc.logger.Error("GetAvailableSlots: failed to check company id=%d: %v", req.CompanyID, err)
			return nil, fmt.Errorf("%w: failed to check company: %v", ErrInternal, err)
		}
		uc.logger.Warn("GetAvailableSlots: company check skipped for id=%d: %v", req.CompanyID, err)
		exists = true
	}
	if !exists {
		uc.logger.Warn("GetAvailableSlots: company id=%d not found", req.CompanyID)
		return nil, ErrCompanyNotFound
	}

	// 3. Доступность по датам без учёта опережения
	days, err := uc.calculator.GetAvailability(ctx, req.CompanyID, req.From, req.To, req.OnlyAvailable)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to calculate availability for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to calculate availability: %v", ErrInternal, err)
	}

	// 4. Правило минимального опережения
	minAdvance, err := uc.settings.MinAdvanceSlots(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get advance settings for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get advance settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	filtered := uc.filter.Apply(days, minAdvance, now)

	uc.logger.Info("GetAvailableSlots: company=%d, %d half-days before advance filter, %d after (minAdvanceSlots=%d)",
		req.CompanyID, domain.CountSlots(days), domain.CountSlots(filtered), minAdvance)

	return &Response{
		CompanyID:       req.CompanyID,
		From:            domain.DateOnly(req.From),
		To:              domain.DateOnly(req.To),
		MinAdvanceSlots: minAdvance,
		Days:            filtered,
	}, nil
}
