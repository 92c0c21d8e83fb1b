package presentation

import (
	"net/http"

	"github.com/RaikyD/wb-shipping-service/internal/application"
	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
)

type ShippingHandler struct {
	shipping *application.ShippingService
	closure  *application.ClosureService
}

func NewShippingHandler(shipping *application.ShippingService, closure *application.ClosureService) *ShippingHandler {
	return &ShippingHandler{shipping: shipping, closure: closure}
}

func (h *ShippingHandler) Register(r chi.Router) {
	r.Get("/orders/{key}/volumes", h.Board)
	r.Post("/volumes/{volumeID}/confirm", h.Confirm)
	r.Post("/volumes/{volumeID}/ship", h.Ship)
	r.Post("/orders/{key}/closure", h.Finalize)
	r.Get("/orders/{key}/closure", h.GetClosure)
}

func (h *ShippingHandler) Board(w http.ResponseWriter, r *http.Request) {
	b, err := h.shipping.Board(r.Context(), orderKey(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, b)
}

func (h *ShippingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "volumeID")
	if !ok {
		return
	}
	v, err := h.shipping.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, v)
}

func (h *ShippingHandler) Ship(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "volumeID")
	if !ok {
		return
	}
	v, err := h.shipping.Ship(r.Context(), id)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, v)
}

func (h *ShippingHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var in domain.CloseShipmentInput
	if err := helpers.DecodeJSON(r.Body, &in); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	c, err := h.closure.Finalize(r.Context(), orderKey(r), in)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, c)
}

func (h *ShippingHandler) GetClosure(w http.ResponseWriter, r *http.Request) {
	c, err := h.closure.Get(r.Context(), orderKey(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, c)
}
