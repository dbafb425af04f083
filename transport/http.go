package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	fumigationapp "github.com/rsetiawan/agrostock/application/fumigation"
	harvestapp "github.com/rsetiawan/agrostock/application/harvest"
	productapp "github.com/rsetiawan/agrostock/application/product"
	purchaseapp "github.com/rsetiawan/agrostock/application/purchase"
	transferapp "github.com/rsetiawan/agrostock/application/transfer"
	userapp "github.com/rsetiawan/agrostock/application/user"
	warehouseapp "github.com/rsetiawan/agrostock/application/warehouse"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
	"github.com/rsetiawan/agrostock/utils/errors"
	validatorx "github.com/rsetiawan/agrostock/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp       userapp.UserApp
	ProductApp    productapp.ProductApp
	FumigationApp fumigationapp.FumigationApp
	HarvestApp    harvestapp.HarvestApp
	TransferApp   transferapp.TransferApp
	PurchaseApp   purchaseapp.PurchaseApp
	WarehouseApp  warehouseapp.WarehouseApp
}

func NewTransport(rh *RestHandler, internalAPIKey string) http.Handler {
	r := mux.NewRouter()

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	r.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// Products
	r.HandleFunc("/v1/products", rh.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/v1/products", rh.CreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/v1/products/low-stock", rh.ListLowStock).Methods(http.MethodGet)
	r.HandleFunc("/v1/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/v1/products/{id}", rh.UpdateProduct).Methods(http.MethodPut)
	r.HandleFunc("/v1/products/{id}", rh.DeleteProduct).Methods(http.MethodDelete)

	// Warehouses
	r.HandleFunc("/v1/warehouses", rh.ListWarehouses).Methods(http.MethodGet)
	r.HandleFunc("/v1/warehouses", rh.CreateWarehouse).Methods(http.MethodPost)
	r.HandleFunc("/v1/warehouses/{id}", rh.GetWarehouse).Methods(http.MethodGet)
	r.HandleFunc("/v1/warehouses/{id}/deactivate", rh.DeactivateWarehouse).Methods(http.MethodPost)

	// Fumigations
	r.HandleFunc("/v1/fumigations", rh.ListFumigations).Methods(http.MethodGet)
	r.HandleFunc("/v1/fumigations", rh.CreateFumigation).Methods(http.MethodPost)
	r.HandleFunc("/v1/fumigations/{id}", rh.GetFumigation).Methods(http.MethodGet)
	r.HandleFunc("/v1/fumigations/{id}/complete", rh.CompleteFumigation).Methods(http.MethodPost)
	r.HandleFunc("/v1/fumigations/{id}/cancel", rh.CancelFumigation).Methods(http.MethodPost)

	// Harvests
	r.HandleFunc("/v1/harvests", rh.ListHarvests).Methods(http.MethodGet)
	r.HandleFunc("/v1/harvests", rh.CreateHarvest).Methods(http.MethodPost)
	r.HandleFunc("/v1/harvests/{id}", rh.GetHarvest).Methods(http.MethodGet)
	r.HandleFunc("/v1/harvests/{id}/complete", rh.CompleteHarvest).Methods(http.MethodPost)
	r.HandleFunc("/v1/harvests/{id}/cancel", rh.CancelHarvest).Methods(http.MethodPost)

	// Transfers
	r.HandleFunc("/v1/transfers", rh.ListTransfers).Methods(http.MethodGet)
	r.HandleFunc("/v1/transfers", rh.CreateTransfer).Methods(http.MethodPost)
	r.HandleFunc("/v1/transfers/{id}", rh.GetTransfer).Methods(http.MethodGet)
	r.HandleFunc("/v1/transfers/{id}/approve", rh.ApproveTransfer).Methods(http.MethodPost)
	r.HandleFunc("/v1/transfers/{id}/reject", rh.RejectTransfer).Methods(http.MethodPost)
	r.HandleFunc("/v1/transfers/{id}/ship", rh.ShipTransfer).Methods(http.MethodPost)
	r.HandleFunc("/v1/transfers/{id}/receive", rh.ReceiveTransfer).Methods(http.MethodPost)
	r.HandleFunc("/v1/transfers/{id}/cancel", rh.CancelTransfer).Methods(http.MethodPost)

	// Purchases
	r.HandleFunc("/v1/purchases", rh.ListPurchases).Methods(http.MethodGet)
	r.HandleFunc("/v1/purchases", rh.CreatePurchase).Methods(http.MethodPost)
	r.HandleFunc("/v1/purchases/{id}", rh.GetPurchase).Methods(http.MethodGet)
	r.HandleFunc("/v1/purchases/{id}/approve", rh.ApprovePurchase).Methods(http.MethodPost)
	r.HandleFunc("/v1/purchases/{id}/cancel", rh.CancelPurchase).Methods(http.MethodPost)
	r.HandleFunc("/v1/purchases/{id}/deliveries", rh.AddDelivery).Methods(http.MethodPost)
	r.HandleFunc("/v1/purchases/{id}/deliveries/{deliveryId}/complete", rh.CompleteDelivery).Methods(http.MethodPost)
	r.HandleFunc("/v1/purchases/{id}/deliveries/{deliveryId}/cancel", rh.CancelDelivery).Methods(http.MethodPost)

	// Internal routes called by queue consumers, guarded by static API key.
	internal := r.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/v1/transfers/{id}/expire", rh.ExpireTransfer).Methods(http.MethodPost)

	// middleware
	r.Use(LoggingMiddleware())
	r.Use(AuthMiddleware(rh.UserApp))

	return r
}

// Register handler
// @Summary Register user
// @Description Register a new farm user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
