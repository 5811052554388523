// Package csrf implements double-submit CSRF protection with a per-client
// secret.
//
// Each client receives a random secret in a signed HttpOnly cookie. Tokens
// handed out by Protector.Token are HMAC-signed with that secret and carry a
// random salt plus their issue time, so a token is only valid together with
// the cookie it was minted for and only until it expires. Unsafe requests
// (anything except GET, HEAD, OPTIONS and TRACE) must echo a token in one of
// the X-CSRF-Token, CSRF-Token or X-XSRF-Token headers.
//
//	p, err := csrf.New(csrf.Config{Secret: cfg.CSRFSecret, Secure: prod})
//	if err != nil { ... }
//
//	r.Get("/csrf", func(w http.ResponseWriter, r *http.Request) {
//		tok, _ := p.Token(w, r)
//		...
//	})
//	r.With(csrf.Middleware(p)).Post("/api/submissions", create)
package csrf
