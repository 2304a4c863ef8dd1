// Package views provides the default page components for folio. Pages are
// templ components that write escaped HTML into a buffer and flush it once.
package views

import (
	"github.com/eringen/folio"
)

// Default returns a complete set of page components.
func Default() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:    Home,
		About:   About,
		Works:   Works,
		Work:    Work,
		Blog:    Blog,
		Post:    Post,
		Contact: Contact,

		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		AdminPosts:     AdminPosts,
		AdminPostForm:  AdminPostForm,
		AdminWorks:     AdminWorks,
		AdminWorkForm:  AdminWorkForm,
		AdminContacts:  AdminContacts,
		AdminSettings:  AdminSettings,

		NotFound:    NotFound,
		ServerError: ServerError,
	}
}
