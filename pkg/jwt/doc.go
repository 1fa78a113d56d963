// Package jwt signs and validates the bearer tokens that identify API callers.
//
// Tokens are RS256 with PEM key files, or HS256 when a shared secret is
// configured. The caller identity is the user_id claim, falling back to sub.
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    Issuer:         "goals-api",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{UserID: "user-123"})
//	claims, err := service.Validate(token)
//	userID := claims.Identity()
package jwt
