/* errors.go
 * Sentinel errors returned by the external package
 */

package external

import "errors"

var (
	ErrUnexpectedStatus  = errors.New("unexpected http status")
	ErrGameNotFound      = errors.New("game not found in entry page")
	ErrNoBracketIds      = errors.New("no bracket ids found")
	ErrInvalidMatchData  = errors.New("invalid match data")
	ErrIncompleteBracket = errors.New("incomplete results bracket")
)
