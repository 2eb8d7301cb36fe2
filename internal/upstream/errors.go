package upstream

// errNoActiveModels signals that the swap service is reachable but reports
// zero loaded models, so there is nothing to run a test against.
type errNoActiveModels struct{}

func (errNoActiveModels) Error() string { return "no active models available" }

// IsNoActiveModels reports whether err indicates an empty active model list.
func IsNoActiveModels(err error) bool {
	_, ok := err.(errNoActiveModels)
	return ok
}

// errUnavailable signals that the swap service could not be reached or
// answered with a non-success status.
type errUnavailable struct{ msg string }

func (e errUnavailable) Error() string { return e.msg }

// IsUnavailable reports whether err indicates an unreachable swap service.
func IsUnavailable(err error) bool {
	_, ok := err.(errUnavailable)
	return ok
}
