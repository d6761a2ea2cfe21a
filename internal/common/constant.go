package common

// AuthorizationHeader is the HTTP header carrying the access token on
// outbound requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix is prepended to the access token in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-Id"
