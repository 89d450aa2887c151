package api

import (
	"context"
	"errors"
)

type keyType string

const usernameKey keyType = "username"

// ctxWithUsername adds the authenticated principal to the context
func ctxWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// ctxGetUsername retrieves the authenticated principal from the context
func ctxGetUsername(ctx context.Context) (string, error) {
	ctxValue := ctx.Value(usernameKey)
	if ctxValue == nil {
		return "", errors.New("username not found in context")
	}
	username, ok := ctxValue.(string)
	if !ok {
		return "", errors.New("username is not of type `string`")
	}
	return username, nil
}
