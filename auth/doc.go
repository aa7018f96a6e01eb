// Package auth implements Cartify's access-control core: credential
// verification backed by bcrypt, cookie-carried sessions, a shared-secret
// remember-me token, an ordered first-match rule matcher, and the
// success/denied/logout outcome handlers that decide post-auth navigation.
//
// Everything outside this package talks to it through two contracts: a
// PrincipalStore that can look up a principal by email, and the Subject it
// installs on the request context for downstream handlers.
package auth
