// Package jwt issues and verifies compact HS256 tokens that carry a subject,
// an issuance time, an expiry and a purpose.
//
// Tokens are stateless: validity is a function of the signature and the
// expiry only. The purpose claim keeps tokens minted for one flow from being
// accepted by another, so a password reset token can never be presented as a
// session token and vice versa.
//
// # Usage
//
//	codec, err := jwt.New(jwt.Config{Secret: os.Getenv("JWT_SECRET")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tok, err := codec.Issue(userID, jwt.PurposeSession, codec.SessionTTL())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	claims, err := codec.Verify(tok.Value, jwt.PurposeSession)
//	switch {
//	case errors.Is(err, jwt.ErrExpiredToken):
//		// ask the user to log in again
//	case err != nil:
//		// reject
//	}
//	_ = claims.Subject
//
// Extractors pull a raw token out of an HTTP request:
//
//	tok, ok := jwt.FirstOf(jwt.BearerTokenExtractor, jwt.CookieTokenExtractor("token"))(r)
package jwt
