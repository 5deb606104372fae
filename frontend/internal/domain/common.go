package frontend_domain

import "github.com/unforum-dev/unforum/shared/identity"

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error         string
	Success       string
	User          *identity.User
	IsAdmin       bool
	LocalOverride bool
	CSRFToken     string
	Validation    ValidationData
}

// ValidationData holds the limits the forms enforce client-side. The
// backend checks them again.
type ValidationData struct {
	ThreadTitleMaxLen int
	TagsMax           int
	TagMaxLen         int
}

var DefaultValidation = ValidationData{
	ThreadTitleMaxLen: 300,
	TagsMax:           10,
	TagMaxLen:         40,
}
