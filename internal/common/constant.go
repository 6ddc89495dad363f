// Package common contains shared constants and sentinel errors used across
// application components.
package common

// AuthTokenHeaderName is the HTTP header used to carry the session token on
// requests to protected endpoints.
const AuthTokenHeaderName = "x-auth-token"

// AdminUsername is the fixed identity allowed to call administrative
// endpoints. The role model is deliberately a single superuser name.
const AdminUsername = "admin"
