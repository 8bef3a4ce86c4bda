package flows

// Deps groups flow dependency sets. The root engine builds this once and
// delegates session-lifecycle methods to the matching flow.
type Deps struct {
	Login        LoginDeps
	Logout       LogoutDeps
	Permissions  PermissionDeps
	Unauthorized UnauthorizedDeps
}
