/* document.go
 * Contains conversion between a MatchupTree and the structured XML bracket document:
 *
 *	<BracketTree>
 *		<depth_0 winner="true">
 *			<depth_1 winner="true">a</depth_1>
 *			<depth_1>c</depth_1>
 *		</depth_0>
 *		<depth_0>
 *			<depth_1 winner="true">b</depth_1>
 *			<depth_1>d</depth_1>
 *		</depth_0>
 *	</BracketTree>
 *
 * A results document may mark a game that has not been played yet with open="true" on the element holding that
 * game: the root for the final, or the depth_N element whose children are the two sides.
 */

package bracket

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	rootTag      = "BracketTree"
	winnerAttr   = "winner"
	winnerMarker = "true"
	openAttr     = "open"
)

// Element is a generic node of the bracket document
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Element  `xml:",any"`
}

// IsWinner reports whether the element carries the winner marker
func (e Element) IsWinner() bool {
	return e.flag(winnerAttr)
}

// IsOpen reports whether the game held by the element is marked as not played yet
func (e Element) IsOpen() bool {
	return e.flag(openAttr)
}

func (e Element) flag(name string) bool {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value == winnerMarker
		}
	}
	return false
}

// ToElement returns the <BracketTree> root element for this bracket
func (t *MatchupTree) ToElement() Element {
	children := t.toElements(0)
	return Element{
		XMLName:  xml.Name{Local: rootTag},
		Children: children[:],
	}
}

// toElements returns the winner and loser elements of this game at the given nesting level, ready to be
// spliced into the parent element
func (t *MatchupTree) toElements(level int) [2]Element {
	tag := xml.Name{Local: fmt.Sprintf("depth_%d", level)}
	win := Element{
		XMLName: tag,
		Attrs:   []xml.Attr{{Name: xml.Name{Local: winnerAttr}, Value: winnerMarker}},
	}
	lose := Element{XMLName: tag}

	fillElement(&win, t.winner, level)
	fillElement(&lose, t.loser, level)
	return [2]Element{win, lose}
}

func fillElement(e *Element, s Side, level int) {
	switch v := s.(type) {
	case Team:
		e.Text = string(v)
	case *MatchupTree:
		children := v.toElements(level + 1)
		e.Children = children[:]
	}
}

// ToDocument renders the bracket as a tab indented XML document
func (t *MatchupTree) ToDocument() ([]byte, error) {
	out, err := xml.MarshalIndent(t.ToElement(), "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bracket document: %w", err)
	}
	return out, nil
}

// FromDocument parses an XML bracket document
// Preconditions: Receives the bytes of a document produced by ToDocument or an equivalent file
// Postconditions: Returns the tree, or ErrMalformedDocument if the XML is invalid or a level does not hold
// exactly two children
func FromDocument(data []byte) (*MatchupTree, error) {
	tree, _, err := ParseDocument(data)
	return tree, err
}

// ParseDocument is FromDocument that also returns the games marked open. The marks are indexed like
// EveryTree(Depth()) and are nil when the document marks no game.
func ParseDocument(data []byte) (*MatchupTree, []bool, error) {
	var root Element
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("%v: %w", err, ErrMalformedDocument)
	}

	open := make(map[*MatchupTree]bool)
	tree, err := fromElement(root, open)
	if err != nil {
		return nil, nil, err
	}
	if len(open) == 0 {
		return tree, nil, nil
	}

	games, err := tree.EveryTree(tree.Depth())
	if err != nil {
		return nil, nil, fmt.Errorf("open games need a complete bracket: %w", ErrMalformedDocument)
	}
	marks := make([]bool, len(games))
	for i, game := range games {
		marks[i] = open[game]
	}
	return tree, marks, nil
}

// FromElement builds a tree from an element with exactly two children. The child flagged as winner wins the
// game; if no child is flagged the first child is taken as the winner. A child with non blank text is a
// terminal team, anything else is a nested game.
func FromElement(e Element) (*MatchupTree, error) {
	return fromElement(e, nil)
}

// fromElement builds the tree and records every game marked open in open when it is not nil
func fromElement(e Element, open map[*MatchupTree]bool) (*MatchupTree, error) {
	if len(e.Children) != 2 {
		return nil, fmt.Errorf("<%s> has %d children, expected 2: %w", e.XMLName.Local, len(e.Children), ErrMalformedDocument)
	}

	first, second := e.Children[0], e.Children[1]
	var win, lose Element
	switch {
	case first.IsWinner() && second.IsWinner():
		return nil, fmt.Errorf("<%s> has two winners: %w", e.XMLName.Local, ErrMalformedDocument)
	case second.IsWinner():
		win, lose = second, first
	default:
		win, lose = first, second
	}

	winner, err := sideFromElement(win, open)
	if err != nil {
		return nil, err
	}
	loser, err := sideFromElement(lose, open)
	if err != nil {
		return nil, err
	}
	tree, err := New(winner, loser)
	if err != nil {
		return nil, err
	}
	if open != nil && e.IsOpen() {
		open[tree] = true
	}
	return tree, nil
}

func sideFromElement(e Element, open map[*MatchupTree]bool) (Side, error) {
	if name := strings.TrimSpace(e.Text); name != "" {
		return Team(name), nil
	}
	return fromElement(e, open)
}
