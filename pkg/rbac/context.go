package rbac

import "context"

// Principal is the authenticated subject a policy is evaluated against.
type Principal struct {
	ID   string
	Role Role
}

type principalCtxKey struct{}

func SetPrincipalToContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
