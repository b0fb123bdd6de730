package release_slot

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/pkg/logger"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type mockReservations struct {
	mock.Mock
}

func (m *mockReservations) Release(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) error {
	return m.Called(ctx, companyID, date, halfDay).Error(0)
}

func (m *mockReservations) Count(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) (int, error) {
	args := m.Called(ctx, companyID, date, halfDay)
	return args.Int(0), args.Error(1)
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	log := logger.NewWithWriter(io.Discard, "error")
	req := &Request{CompanyID: 7, Date: monday.Add(15 * time.Hour), HalfDay: domain.Afternoon, OrderID: "order-9"}

	t.Run("released", func(t *testing.T) {
		r := new(mockReservations)
		r.On("Release", ctx, int64(7), req.Date, domain.Afternoon).Return(nil)
		r.On("Count", ctx, int64(7), req.Date, domain.Afternoon).Return(4, nil)

		resp, err := NewUseCase(r, log).Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, monday, resp.Date)
		assert.Equal(t, 4, resp.CurrentCount)
		r.AssertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		r := new(mockReservations)
		r.On("Release", ctx, int64(7), req.Date, domain.Afternoon).Return(errors.New("db down"))

		_, err := NewUseCase(r, log).Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInternal)
		r.AssertNotCalled(t, "Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid half-day", func(t *testing.T) {
		r := new(mockReservations)
		bad := *req
		bad.HalfDay = "night"

		_, err := NewUseCase(r, log).Execute(ctx, &bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
