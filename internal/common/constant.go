package common

// DefaultTokenHeaderName is the HTTP header carrying the session token
// unless overridden in configuration. Clients may also pass the token in
// the "token" query parameter.
const DefaultTokenHeaderName = "x-token"

// TokenQueryParamName is the query-string fallback for the session token.
const TokenQueryParamName = "token"
