/* errors.go
 * Sentinel errors returned by the scenario engine
 */

package scenario

import "errors"

var (
	ErrDepthTooLarge = errors.New("scenario depth exceeds engine limit")
	ErrInvalidPath   = errors.New("invalid scenario path")
	ErrNoPredictions = errors.New("no predictions to compare")
)
