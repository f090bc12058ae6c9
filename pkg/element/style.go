package element

// applyStyles hands styles to the host's isolated scope, if it has one.
func applyStyles(host Host, styles []Style) {
	sh, ok := host.(StyleHost)
	if !ok || len(styles) == 0 {
		return
	}
	sh.AdoptStyles(styles)
}
