// Package helpers provides test utilities for the goals API.
//
// JWTHelper mints HS256 tokens for arbitrary user ids:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	req.Header.Set("Authorization", jwtHelper.Bearer("user-a"))
//
// StringPtr and BoolPtr build the optional fields of update requests.
package helpers
