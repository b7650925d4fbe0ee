/* utils.go
 * Utility functions used by main.go
 */

package main

import (
	"fmt"
	"path/filepath"
	"strings"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string %q", str)
}

// documentSource splits the -results argument into a directory and a document name. A bare name is looked up in
// the configured document store and returns an empty directory; a path such as data/sweet_sixteen.xml names a
// file on disk.
func documentSource(arg string) (dir string, name string) {
	arg = strings.TrimSpace(arg)
	if !strings.ContainsRune(arg, filepath.Separator) && !strings.ContainsRune(arg, '/') && !strings.HasSuffix(arg, ".xml") {
		return "", arg
	}
	return filepath.Dir(arg), strings.TrimSuffix(filepath.Base(arg), ".xml")
}
