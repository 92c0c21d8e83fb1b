package presentation

import (
	"errors"
	"net/http"

	"github.com/RaikyD/wb-shipping-service/internal/application"
	"github.com/RaikyD/wb-shipping-service/internal/auth"
	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/RaikyD/wb-shipping-service/internal/presentation/helpers"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
	"github.com/RaikyD/wb-shipping-service/internal/storage"
)

var statusByErr = []struct {
	err    error
	status int
}{
	{application.ErrOrderNotFound, http.StatusNotFound},
	{application.ErrItemNotFound, http.StatusNotFound},
	{application.ErrVolumeNotFound, http.StatusNotFound},
	{application.ErrClosureNotFound, http.StatusNotFound},

	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrSessionNotFound, http.StatusUnauthorized},
	{auth.ErrSessionExpired, http.StatusUnauthorized},

	{repository.ErrUserExists, http.StatusConflict},
	{domain.ErrOrderFinalized, http.StatusConflict},
	{domain.ErrVolumeNumberTaken, http.StatusConflict},
	{domain.ErrQuantityNotDefined, http.StatusConflict},
	{domain.ErrItemFullySeparated, http.StatusConflict},
	{domain.ErrItemNotFullyPacked, http.StatusConflict},
	{domain.ErrVolumeNotConfirmed, http.StatusConflict},
	{domain.ErrShipmentIncomplete, http.StatusConflict},
	{domain.ErrNoVolumes, http.StatusConflict},
	{domain.ErrSeparationIncomplete, http.StatusConflict},
	{domain.ErrItemChanged, http.StatusConflict},

	{domain.ErrOrderKeyRequired, http.StatusUnprocessableEntity},
	{domain.ErrItemCodeRequired, http.StatusUnprocessableEntity},
	{domain.ErrItemNotInOrder, http.StatusUnprocessableEntity},
	{domain.ErrInvalidQuantity, http.StatusUnprocessableEntity},
	{domain.ErrBalanceExceeded, http.StatusUnprocessableEntity},
	{domain.ErrInvalidVolumeNumber, http.StatusUnprocessableEntity},
	{domain.ErrInvalidVolumeQty, http.StatusUnprocessableEntity},
	{domain.ErrRemainingExceeded, http.StatusUnprocessableEntity},
	{domain.ErrDefinedExceeded, http.StatusUnprocessableEntity},
	{domain.ErrPhotoRequired, http.StatusUnprocessableEntity},
	{domain.ErrTooManyPhotos, http.StatusUnprocessableEntity},
	{domain.ErrDriverRequired, http.StatusUnprocessableEntity},
	{domain.ErrPlateRequired, http.StatusUnprocessableEntity},

	{storage.ErrEmptyPhoto, http.StatusBadRequest},
	{storage.ErrPhotoTooLarge, http.StatusRequestEntityTooLarge},
	{storage.ErrUnsupportedType, http.StatusUnsupportedMediaType},
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	var confirm *domain.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		return http.StatusConflict
	}
	for _, e := range statusByErr {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError reports err with its raw message. A pending confirmation
// also carries the from/to quantities.
func writeError(w http.ResponseWriter, r *http.Request, err error, extra map[string]any) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	body := map[string]any{"error": err.Error()}
	var confirm *domain.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		body["confirm"] = map[string]int{"from": confirm.From, "to": confirm.To}
	}
	for k, v := range extra {
		body[k] = v
	}
	helpers.WriteJSON(w, status, body)
}
