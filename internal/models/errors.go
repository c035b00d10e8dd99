package models

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNoMarket = errors.New("no market found")
	ErrNoToken  = errors.New("no token id found")
)
