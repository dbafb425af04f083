package errors

import (
	"fmt"

	"github.com/rsetiawan/agrostock/constant"
)

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// InsufficientStockError identifies the first line item whose requested
// quantity exceeds the stock read inside the transaction. The enumeration
// order is the request order; nothing from the failed attempt is persisted.
type InsufficientStockError struct {
	ProductID uint64  `json:"product_id"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: required %v, available %v", e.ProductID, e.Required, e.Available)
}

func (e *InsufficientStockError) ErrorCode() string {
	return constant.ErrorTypeCode[constant.ErrInsufficientStock]
}

func (e *InsufficientStockError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[constant.ErrInsufficientStock]
}

func NewInsufficientStock(productID uint64, required, available float64) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Required:  required,
		Available: available,
	}
}
