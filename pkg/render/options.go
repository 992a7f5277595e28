package render

// ViewOption customises a View while it is being built.
type ViewOption func(*View)

// WithNotice attaches a blocking notice, such as the missing fields message.
func WithNotice(message string) ViewOption {
	return func(v *View) {
		v.Notice = message
	}
}

// WithAction sets the URL the form submits to.
func WithAction(action string) ViewOption {
	return func(v *View) {
		if action != "" {
			v.Action = action
		}
	}
}

// WithFieldEndpoint sets the URL prefix that receives per-field updates. An
// empty prefix disables live binding.
func WithFieldEndpoint(prefix string) ViewOption {
	return func(v *View) {
		v.FieldEndpoint = prefix
	}
}

// WithTitle overrides the heading and subtitle.
func WithTitle(title, subtitle string) ViewOption {
	return func(v *View) {
		if title != "" {
			v.Title = title
		}
		if subtitle != "" {
			v.Subtitle = subtitle
		}
	}
}

// WithHiddenFields adds hidden inputs (session or CSRF tokens) to the form.
func WithHiddenFields(fields ...HiddenField) ViewOption {
	return func(v *View) {
		for _, field := range fields {
			if field.Name == "" {
				continue
			}
			v.Hidden = append(v.Hidden, field)
		}
	}
}
