/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import "errors"

var (
	ErrNullArgument            = errors.New("null argument")
	ErrInvalidID               = errors.New("invalid id")
	ErrInvalidLocation         = errors.New("invalid location")
	ErrInvalidMaxGames         = errors.New("invalid max games")
	ErrInvalidOutcome          = errors.New("invalid outcome")
	ErrTournamentAlreadyExists = errors.New("tournament already exists")
	ErrTournamentNotExist      = errors.New("tournament does not exist")
	ErrTournamentEnded         = errors.New("tournament ended")
	ErrGameAlreadyExists       = errors.New("game already exists")
	ErrInvalidPlayTime         = errors.New("invalid play time")
	ErrExceededGames           = errors.New("exceeded games")
	ErrPlayerNotExist          = errors.New("player does not exist")
	ErrNoGames                 = errors.New("no games")
	ErrNoTournamentsEnded      = errors.New("no tournaments ended")
	ErrOutOfMemory             = errors.New("out of memory")
	ErrSaveFailure             = errors.New("save failure")
)
