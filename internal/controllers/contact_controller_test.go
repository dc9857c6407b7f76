package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

type fakeContactService struct {
	err   error
	calls int
}

func (f *fakeContactService) Submit(context.Context, dtos.ContactFormRequest) error {
	f.calls++
	return f.err
}

func validContactBody() map[string]interface{} {
	return map[string]interface{}{
		"name":  "P. Iyer",
		"phone": "9876543210",
		"email": "p.iyer@example.com",
	}
}

func TestSubmitContactForm(t *testing.T) {
	svc := &fakeContactService{}
	ctl := NewContactController(svc)

	req := jsonRequest(http.MethodPost, "/contactform", validContactBody())
	rec := httptest.NewRecorder()

	ctl.SubmitContactForm(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, svc.calls)
}

func TestSubmitContactFormMissingFields(t *testing.T) {
	for _, field := range []string{"name", "phone", "email"} {
		t.Run(field, func(t *testing.T) {
			svc := &fakeContactService{}
			ctl := NewContactController(svc)

			body := validContactBody()
			delete(body, field)
			rec := httptest.NewRecorder()

			ctl.SubmitContactForm(rec, jsonRequest(http.MethodPost, "/contactform", body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, utils.ErrCodeValidation, decodeError(t, rec).Code)
			require.Zero(t, svc.calls)
		})
	}
}

func TestSubmitContactFormBadEmail(t *testing.T) {
	svc := &fakeContactService{}
	ctl := NewContactController(svc)

	body := validContactBody()
	body["email"] = "not-an-address"
	rec := httptest.NewRecorder()

	ctl.SubmitContactForm(rec, jsonRequest(http.MethodPost, "/contactform", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, svc.calls)
}

func TestSubmitContactFormDeliveryFailure(t *testing.T) {
	svc := &fakeContactService{err: utils.ErrDelivery}
	ctl := NewContactController(svc)

	rec := httptest.NewRecorder()
	ctl.SubmitContactForm(rec, jsonRequest(http.MethodPost, "/contactform", validContactBody()))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, utils.ErrCodeDeliveryError, decodeError(t, rec).Code)
}
