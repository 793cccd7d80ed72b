package signup

import (
	"io/fs"

	"github.com/goliatone/go-signup/pkg/feedback"
	"github.com/goliatone/go-signup/pkg/page"
)

// Templates exposes the built-in feedback templates (message.tpl and
// loading.tpl) so callers can copy or extend them and pass the result to
// feedback.WithTemplates.
func Templates() fs.FS {
	return feedback.TemplatesFS()
}

// PageTemplates exposes the built-in signup page template.
func PageTemplates() fs.FS {
	return page.TemplatesFS()
}
