package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrEmptyInput          = errors.New("no matches to train or test on")
	ErrDegenerateWindow    = errors.New("degenerate training window")
	ErrInsufficientSeasons = errors.New("not enough seasons to walk forward")
	ErrInvalidExpectation  = errors.New("expected goals must be finite and non-negative")
	ErrNotFound            = errors.New("record not found")
)

// Degenerate window causes. Both satisfy errors.Is(err, ErrDegenerateWindow).
var (
	ErrNoCommonTeams = fmt.Errorf("%w: no team played both home and away", ErrDegenerateWindow)
	ErrZeroScoring   = fmt.Errorf("%w: league average goals is zero", ErrDegenerateWindow)
)
