// Package auth is the authentication and authorization core.
//
// It hashes and verifies passwords (bcrypt), issues and verifies signed
// access tokens (JWT, HMAC family), resolves bearer tokens to users, and
// answers the two visibility questions the API asks: do two users share an
// organisation, and is a user a member of an organisation.
//
// # Configuration
//
//	SECRET_KEY=<random string>        # HMAC key; generated per process if empty
//	ALGORITHM=HS256                   # HS256, HS384 or HS512
//	ACCESS_TOKEN_EXPIRE_MINUTES=30    # token lifetime
//	AUTH_TOKEN_ISSUER=orgauth         # "iss" claim
//	AUTH_BCRYPT_COST=12               # bcrypt cost factor
//
// # Usage
//
//	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
//	tokens, err := auth.NewTokenService(cfg.Auth)
//	service := auth.NewService(identity.NewStore(db.DB), hasher, tokens)
//	middleware := auth.NewMiddleware(service, nil)
//	api.Use(middleware.RequireAuth())
//
// Extract the user in handlers:
//
//	user, ok := auth.CurrentUser(c)
package auth
