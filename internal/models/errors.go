package models

import "errors"

var (
	ErrNoJob              = errors.New("requested job does not exist")
	ErrIdentityUnresolved = errors.New("user identity is not resolved")
	ErrInvalidForm        = errors.New("form is incomplete or invalid")

	ErrActionNotPermitted = errors.New("action not permitted")
	ErrPriceOutOfRange    = errors.New("price must be between min & max price")
	ErrDeadlineCrossed    = errors.New("deadline crossed, bidding forbidden")

	ErrNotInserted    = errors.New("server did not report an inserted record")
	ErrNotModified    = errors.New("server did not report a modified record")
	ErrBidNotAccepted = errors.New("server did not accept the bid")
)
