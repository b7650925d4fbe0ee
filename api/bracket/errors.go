/* errors.go
 * Sentinel errors returned by the bracket package. Callers should match them with errors.Is as
 * they are always wrapped with context about the offending value
 */

package bracket

import "errors"

var (
	ErrInvalidArgument   = errors.New("invalid matchup argument")
	ErrInvalidType       = errors.New("invalid mapping value type")
	ErrMalformedDocument = errors.New("malformed bracket document")
	ErrDepthOutOfRange   = errors.New("depth out of range")
)
