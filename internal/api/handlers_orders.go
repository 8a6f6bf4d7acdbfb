package api

import (
	"encoding/json"
	"net/http"

	"github.com/jwt-pizza/twin-pizza/internal/twin"
)

// echoedOrderID is the id injected into every order confirmation. Orders
// are transient: nothing is stored, the request is echoed back.
const echoedOrderID int64 = 23

// orderItem is one line of an order request.
type orderItem struct {
	MenuID      int64   `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// orderRequest is the JSON body for POST /api/order.
type orderRequest struct {
	FranchiseID int64       `json:"franchiseId"`
	StoreID     int64       `json:"storeId"`
	Items       []orderItem `json:"items"`
}

// orderRecord is the echoed order with its injected id.
type orderRecord struct {
	orderRequest
	ID int64 `json:"id"`
}

// orderResponse is the body of POST /api/order.
type orderResponse struct {
	Order orderRecord `json:"order"`
	JWT   string      `json:"jwt"`
}

// Menu handles GET /api/order/menu.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	twin.JSON(w, http.StatusOK, h.store.Menu)
}

// CreateOrder handles POST /api/order. The body is echoed back with the
// injected id and a signed order voucher; the simulator validates nothing
// about the order itself.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		twin.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var dinerID string
	if cur, ok := h.store.CurrentUser(); ok {
		dinerID = cur.ID
	}

	voucher, err := h.signer.Sign(echoedOrderID, dinerID)
	if err != nil {
		twin.Error(w, http.StatusInternalServerError, "signing order voucher: "+err.Error())
		return
	}

	twin.JSON(w, http.StatusOK, orderResponse{
		Order: orderRecord{orderRequest: req, ID: echoedOrderID},
		JWT:   voucher,
	})
}
