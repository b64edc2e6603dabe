package create_appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/guelfi/barbershop-booking/internal/usecase/create_appointment"
)

type stubUseCase struct {
	resp *createAppointment.Response
	err  error

	gotReq *createAppointment.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *stubUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewBufferString(body))
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{
		resp: &createAppointment.Response{
			ID:               "5d4f8e0a-1b5c-4a2e-9f37-02c9a2b1d6e4",
			ConfirmationCode: "BS171828007KQ",
			ClientName:       "Marcos Silva",
			ClientPhone:      "(11) 98888-7777",
			ServiceCode:      "corte",
			ServiceName:      "Corte Social",
			Date:             time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime:        "10:00",
			DurationMinutes:  30,
			Price:            decimal.NewFromInt(45),
			Status:           "confirmado",
			CreatedAt:        time.Date(2024, 6, 9, 14, 0, 0, 0, time.UTC),
		},
	}

	body := `{"nome":"Marcos Silva","telefone":"(11) 98888-7777","servico":"corte","data":"2024-06-10","horario":"10:00"}`
	rec := doRequest(t, uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "BS171828007KQ", resp.ConfirmationCode)
	assert.Equal(t, "2024-06-10", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)

	// the remote address reached the usecase without the port
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "203.0.113.7", uc.gotReq.ClientIP)
}

func TestHandle_ErrorMapping(t *testing.T) {
	body := `{"nome":"Marcos Silva","telefone":"(11) 98888-7777","servico":"corte","data":"2024-06-10","horario":"10:00"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"slot taken", createAppointment.ErrSlotNotAvailable, http.StatusConflict, "conflito"},
		{"rate limited", createAppointment.ErrRateLimited, http.StatusTooManyRequests, "muitas_tentativas"},
		{"quota exceeded", createAppointment.ErrQuotaExceeded, http.StatusTooManyRequests, "limite_excedido"},
		{"unknown service", createAppointment.ErrUnknownService, http.StatusBadRequest, "dados_invalidos"},
		{"shop closed", createAppointment.ErrShopClosed, http.StatusBadRequest, "dados_invalidos"},
		{"internal", createAppointment.ErrInternal, http.StatusInternalServerError, "erro_interno"},
		{
			// a DB timeout keeps its cause through the usecase wrap and
			// lands on the retryable 503, not the opaque 500
			"storage timeout",
			fmt.Errorf("%w: failed to create appointment: %w",
				createAppointment.ErrInternal, context.DeadlineExceeded),
			http.StatusServiceUnavailable,
			"indisponivel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var envelope map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope["error"])
			assert.NotEmpty(t, envelope["message"])
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{"nome":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadDateAndTime(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		body := `{"nome":"Marcos","telefone":"(11) 98888-7777","servico":"corte","data":"10/06/2024","horario":"10:00"}`
		rec := doRequest(t, &stubUseCase{}, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "formato de data")
	})

	t.Run("bad time", func(t *testing.T) {
		body := `{"nome":"Marcos","telefone":"(11) 98888-7777","servico":"corte","data":"2024-06-10","horario":"10h00"}`
		rec := doRequest(t, &stubUseCase{}, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "formato de horário")
	})
}
