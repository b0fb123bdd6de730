package get_available_slots

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-DeliverySlots/pkg/logger"
	"github.com/m04kA/SMC-DeliverySlots/pkg/ptr"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func newRequest(companyID, query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/companies/"+companyID+"/delivery-slots?"+query, nil)
	return mux.SetURLVars(r, map[string]string{"companyId": companyID})
}

func TestHandler_Handle(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "error")
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool {
			return r.CompanyID == 7 && r.OnlyAvailable && r.From.Equal(tuesday) && r.To.Equal(tuesday)
		})).Return(&getAvailableSlots.Response{
			CompanyID:       7,
			From:            tuesday,
			To:              tuesday,
			MinAdvanceSlots: 1,
			Days: []domain.DayAvailability{{
				Date:   tuesday,
				Reason: ptr.Ptr("inventory"),
				Slots: []domain.HalfDayAvailability{{
					HalfDay:     domain.Afternoon,
					Window:      domain.TimeWindow{Start: types.MustTimeString("14:00"), End: types.MustTimeString("18:00")},
					MaxCapacity: 5,
					Remaining:   5,
					IsAvailable: true,
				}},
			}},
		}, nil)

		w := httptest.NewRecorder()
		NewHandler(uc, log).Handle(w, newRequest("7", "from=2025-10-14&to=2025-10-14&onlyAvailable=true"))

		require.Equal(t, http.StatusOK, w.Code)
		var resp AvailableSlotsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Days, 1)
		assert.Equal(t, "inventory", *resp.Days[0].Reason)
		assert.Equal(t, "14:00", resp.Days[0].Slots[0].StartTime)
		assert.Equal(t, "afternoon", resp.Days[0].Slots[0].HalfDay)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
	}{
		{"company not found", getAvailableSlots.ErrCompanyNotFound, http.StatusNotFound},
		{"reversed range", getAvailableSlots.ErrInvalidDateRange, http.StatusBadRequest},
		{"range too large", getAvailableSlots.ErrDateRangeTooLarge, http.StatusBadRequest},
		{"internal", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := httptest.NewRecorder()
			NewHandler(uc, log).Handle(w, newRequest("7", "from=2025-10-14&to=2025-10-20"))
			assert.Equal(t, tc.status, w.Code)
		})
	}

	badQueries := map[string]*http.Request{
		"missing to":     newRequest("7", "from=2025-10-14"),
		"bad date":       newRequest("7", "from=2025-10-14&to=tomorrow"),
		"bad flag":       newRequest("7", "from=2025-10-14&to=2025-10-15&onlyAvailable=maybe"),
		"bad company id": newRequest("0", "from=2025-10-14&to=2025-10-15"),
	}
	for name, r := range badQueries {
		t.Run(name, func(t *testing.T) {
			uc := new(mockUseCase)
			w := httptest.NewRecorder()
			NewHandler(uc, log).Handle(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
