package contract

import "errors"

var (
	ErrItemNotFound       = errors.New("item not found in inventory")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrUnclassifiedIntent = errors.New("request matched no intent")
	ErrPersistence        = errors.New("store operation failed")
	ErrValidation         = errors.New("validation failed")
	ErrModelInvoke        = errors.New("model invoke failed")
)
