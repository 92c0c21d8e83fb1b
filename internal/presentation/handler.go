package presentation

import (
	"net/http"
	"strings"

	"github.com/RaikyD/wb-shipping-service/internal/application"
	"github.com/RaikyD/wb-shipping-service/internal/domain"
	"github.com/RaikyD/wb-shipping-service/internal/presentation/helpers"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	orders     *application.OrdersService
	separation *application.SeparationService
}

func NewOrdersHandler(orders *application.OrdersService, separation *application.SeparationService) *OrdersHandler {
	return &OrdersHandler{orders: orders, separation: separation}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/{key}", h.GetOrder)
	r.Put("/orders/{key}/items/{itemID}/quantity", h.DefineQuantity)
	r.Post("/orders/{key}/total-load", h.ApplyTotalLoad)
	r.Delete("/orders/{key}/total-load", h.RevertTotalLoad)
	r.Post("/orders/{key}/items/{itemID}/volumes", h.PackVolume)
}

func orderKey(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "key"))
}

// uuidParam reads a UUID path parameter, answering 400 when malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, name+" is not a valid id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	out, err := h.orders.ListPending(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	d, err := h.orders.GetDetail(r.Context(), orderKey(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}

func (h *OrdersHandler) DefineQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	var in application.DefineQuantityInput
	if err := helpers.DecodeJSON(r.Body, &in); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	it, err := h.separation.DefineQuantity(r.Context(), orderKey(r), itemID, in)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, it)
}

func (h *OrdersHandler) ApplyTotalLoad(w http.ResponseWriter, r *http.Request) {
	h.totalLoad(w, r, false)
}

func (h *OrdersHandler) RevertTotalLoad(w http.ResponseWriter, r *http.Request) {
	h.totalLoad(w, r, true)
}

func (h *OrdersHandler) totalLoad(w http.ResponseWriter, r *http.Request, revert bool) {
	res, err := h.separation.ApplyTotalLoad(r.Context(), orderKey(r), revert)
	if err != nil {
		writeError(w, r, err, map[string]any{"result": res})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func (h *OrdersHandler) PackVolume(w http.ResponseWriter, r *http.Request) {
	itemID, ok := uuidParam(w, r, "itemID")
	if !ok {
		return
	}
	var in domain.PackVolumeInput
	if err := helpers.DecodeJSON(r.Body, &in); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	v, err := h.separation.PackVolume(r.Context(), orderKey(r), itemID, in)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, v)
}
