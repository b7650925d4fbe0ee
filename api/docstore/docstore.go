/* docstore.go
 * Contains the document store: named bracket documents kept in the XML bracket format, either on local disk or
 * in an S3 bucket
 */

package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"bracket-bot/api/bracket"
)

const extension = ".xml"

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidName = errors.New("invalid document name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// Interface is implemented by every document store
type Interface interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Load(ctx context.Context, name string) (*bracket.MatchupTree, error)
	Save(ctx context.Context, name string, tree *bracket.MatchupTree) error
	List(ctx context.Context) ([]string, error)
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
