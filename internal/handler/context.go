package handler

type ContextKey string

var (
	RoleCtxKey         ContextKey = "role"
	SubCtxKey          ContextKey = "sub"
	OrganizationCtxKey ContextKey = "organization"
	GuardCtxKey        ContextKey = "guard"
	PostCtxKey         ContextKey = "post"
	InstallationCtxKey ContextKey = "installation"
)
