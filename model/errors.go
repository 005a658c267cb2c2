package model

import "github.com/pkg/errors"

var (
	// ErrParse marks malformed pattern content or placement strings
	ErrParse = errors.New("parse error")
	// ErrOutOfBounds marks a stamp whose live cells fall outside the grid
	ErrOutOfBounds = errors.New("out of bounds")
)
