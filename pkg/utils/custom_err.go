package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrPaymentNotFound    = errors.New("payment record not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrGateway            = errors.New("payment gateway error")
	ErrDatabaseError      = errors.New("database error")
)
