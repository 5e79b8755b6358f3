package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWalletTaken        = errors.New("wallet address already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrSoldOut            = errors.New("event sold out")
	ErrMissingWallet      = errors.New("user has no wallet address")
	ErrMintEventMissing   = errors.New("mint transfer event not found in receipt")
	ErrChainUnavailable   = errors.New("chain node unavailable")
	ErrChainTimeout       = errors.New("timed out waiting for transaction confirmation")
	ErrChainReverted      = errors.New("transaction reverted")

	ErrInternalServerError = errors.New("internal server error")
)
