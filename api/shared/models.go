/* models.go
 * This file contains the structs shared between sub packages
 */

package shared

// User identifies the Discord user an entry belongs to
type User struct {
	UserId   string
	Username string
}
