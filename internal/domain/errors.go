package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user is inactive")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerInUse         = errors.New("customer is referenced by existing documents")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrDuplicateReference    = errors.New("reference number already exists")
	ErrDuplicateMobile       = errors.New("mobile number already registered")
	ErrNoLineItems           = errors.New("document requires at least one line item")
	ErrInvalidLineItem       = errors.New("line item has an invalid quantity, price, or tax rate")
	ErrInvalidStatus         = errors.New("status is not in the allowed vocabulary")
	ErrRenderFailed          = errors.New("pdf rendering failed")
)
