package http

import (
	"context"

	"github.com/example/basic-scheduler/internal/application"
)

type contextKey string

const (
	principalContextKey     contextKey = "principal"
	appointmentIDContextKey contextKey = "appointment_id"
	customerIDContextKey    contextKey = "customer_id"
	contactIDContextKey     contextKey = "contact_id"
	userIDContextKey        contextKey = "user_id"
	sessionTokenContextKey  contextKey = "session_token"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithAppointmentID injects the raw appointment identifier resolved
// from the request path. Handlers parse and validate it.
func ContextWithAppointmentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, appointmentIDContextKey, id)
}

// AppointmentIDFromContext extracts an appointment identifier previously associated with the context.
func AppointmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(appointmentIDContextKey).(string)
	return id, ok
}

// ContextWithCustomerID injects the raw customer identifier resolved from the request path.
func ContextWithCustomerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, customerIDContextKey, id)
}

// CustomerIDFromContext extracts a customer identifier previously associated with the context.
func CustomerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerIDContextKey).(string)
	return id, ok
}

// ContextWithContactID injects the raw contact identifier resolved from the request path.
func ContextWithContactID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contactIDContextKey, id)
}

// ContactIDFromContext extracts a contact identifier previously associated with the context.
func ContactIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contactIDContextKey).(string)
	return id, ok
}

// ContextWithUserID injects the raw user identifier resolved from the request path.
func ContextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDContextKey, id)
}

// UserIDFromContext extracts a user identifier previously associated with the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok
}

// ContextWithSessionToken injects a session token resolved from the request path.
func ContextWithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenContextKey, token)
}

// SessionTokenFromContext extracts a session token previously associated with the context.
func SessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionTokenContextKey).(string)
	return token, ok
}
