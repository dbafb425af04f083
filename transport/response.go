package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/utils/errors"
)

type response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var stockErr *errors.InsufficientStockError
	if stderrors.As(err, &stockErr) {
		w.WriteHeader(stockErr.ErrorHTTPCode())
		_ = json.NewEncoder(w).Encode(response{
			Code:    stockErr.ErrorCode(),
			Message: stockErr.Error(),
			Data:    stockErr,
		})
		return
	}

	var custom errors.CustomError
	if stderrors.As(err, &custom) {
		w.WriteHeader(custom.ErrorHTTPCode())
		_ = json.NewEncoder(w).Encode(response{
			Code:    custom.ErrorCode(),
			Message: custom.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(response{
		Code:    constant.ErrorTypeCode[constant.ErrInternal],
		Message: constant.ErrorTypeMessage[constant.ErrInternal],
	})
}

// pathID extracts a numeric path variable; ok is false on a missing or
// malformed value.
func pathID(r *http.Request, name string) (uint64, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
