package flows

import "context"

// PermissionDeps captures permission refresh dependencies.
type PermissionDeps struct {
	Fetch func(ctx context.Context) ([]string, error)
	Apply func(ctx context.Context, keys []string) error

	OnSuccess func(count int)
	OnFailure func(err error)
}

// RunPermissionRefresh fetches the effective permission set and applies it
// to the session. Subscribers of the session store observe the new set
// before this function returns.
func RunPermissionRefresh(ctx context.Context, deps PermissionDeps) error {
	keys, err := deps.Fetch(ctx)
	if err != nil {
		if deps.OnFailure != nil {
			deps.OnFailure(err)
		}
		return err
	}

	if err := deps.Apply(ctx, keys); err != nil {
		if deps.OnFailure != nil {
			deps.OnFailure(err)
		}
		return err
	}

	if deps.OnSuccess != nil {
		deps.OnSuccess(len(keys))
	}
	return nil
}
