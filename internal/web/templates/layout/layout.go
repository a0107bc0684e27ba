// Package layout holds data shared by every rendered page.
package layout

import "github.com/mcoot/lateguess/internal/model"

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, error or info
	Message string
}

// PageData is embedded in the data of every page
type PageData struct {
	Title string
	User  *model.User
	Flash *FlashMessage
	// Error is shown above a form that failed validation
	Error string
}

// LoggedIn reports whether a user is attached to the page
func (p PageData) LoggedIn() bool {
	return p.User != nil
}
