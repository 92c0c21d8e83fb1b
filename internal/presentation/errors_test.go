package presentation

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/RaikyD/wb-shipping-service/internal/application"
	"github.com/RaikyD/wb-shipping-service/internal/auth"
	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{application.ErrOrderNotFound, http.StatusNotFound},
		{fmt.Errorf("item C1: %w", domain.ErrBalanceExceeded), http.StatusUnprocessableEntity},
		{&domain.ConfirmationRequiredError{From: 1, To: 2}, http.StatusConflict},
		{fmt.Errorf("item C2: %w", &domain.ConfirmationRequiredError{From: 1, To: 2}), http.StatusConflict},
		{domain.ErrOrderFinalized, http.StatusConflict},
		{domain.ErrSeparationIncomplete, http.StatusConflict},
		{domain.ErrItemChanged, http.StatusConflict},
		{auth.ErrSessionExpired, http.StatusUnauthorized},
		{storage.ErrPhotoTooLarge, http.StatusRequestEntityTooLarge},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusFor(c.err), c.err.Error())
	}
}
