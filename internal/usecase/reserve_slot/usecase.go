package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	companyClient "github.com/m04kA/SMC-DeliverySlots/internal/integrations/companyservice"
)

// UseCase use case резервирования половины дня при создании заказа
// Правило минимального опережения здесь не применяется: оно влияет только на список доступных слотов
type UseCase struct {
	reservations  ReservationService
	companyClient CompanyServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationService,
	companyClient CompanyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservations:  reservations,
		companyClient: companyClient,
		logger:        logger,
	}
}

// Execute выполняет use case резервирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: order=%s, company=%d, date=%s, halfDay=%s, actor=%d",
		req.OrderID, req.CompanyID, req.Date.Format(domain.DateFormat), req.HalfDay, req.ActorCompanyID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем компанию; при недоступности CompanyService резервирование не блокируется
	exists, err := uc.companyClient.CompanyExists(ctx, req.CompanyID)
	if err != nil {
		if !errors.Is(err, companyClient.ErrServiceDegraded) {
			uc.logger.Error("ReserveSlot: failed to check company id=%d: %v", req.CompanyID, err)
			return nil, fmt.Errorf("%w: failed to check company: %v", ErrInternal, err)
		}
		uc.logger.Warn("ReserveSlot: company check skipped for id=%d: %v", req.CompanyID, err)
		exists = true
	}
	if !exists {
		uc.logger.Warn("ReserveSlot: company id=%d not found", req.CompanyID)
		return nil, ErrCompanyNotFound
	}

	// 3. Атомарная проверка вместимости и резервирование
	reserved, err := uc.reservations.Reserve(ctx, req.CompanyID, req.Date, req.HalfDay)
	if err != nil {
		uc.logger.Error("ReserveSlot: order=%s: failed to reserve: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: failed to reserve: %v", ErrInternal, err)
	}

	resp := &Response{
		Reserved:  reserved,
		CompanyID: req.CompanyID,
		Date:      domain.DateOnly(req.Date),
		HalfDay:   req.HalfDay,
		OrderID:   req.OrderID,
	}

	// Текущее значение нужно только для ответа, ошибка чтения не отменяет резервирование
	if count, err := uc.reservations.Count(ctx, req.CompanyID, req.Date, req.HalfDay); err != nil {
		uc.logger.Warn("ReserveSlot: order=%s: failed to read counter: %v", req.OrderID, err)
	} else {
		resp.CurrentCount = count
	}

	if !reserved {
		uc.logger.Info("ReserveSlot: order=%s rejected, slot is full or not bookable", req.OrderID)
		return resp, nil
	}

	uc.logger.Info("ReserveSlot: order=%s reserved, current count=%d", req.OrderID, resp.CurrentCount)
	return resp, nil
}
