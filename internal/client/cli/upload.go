package cli

import (
	"fmt"
)

// editDraft prompts for every draft field. An empty answer keeps the
// current value.
func (a *App) editDraft() error {
	d := a.form.Draft()

	current := ""
	if d.File != nil {
		current = d.File.Name
	}
	path, err := GetSimpleText(a.reader, withCurrent("File path", current), a.out)
	if err != nil {
		return err
	}
	if path != "" {
		if err := a.form.SelectPath(path); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}

	fields := []struct {
		prompt  string
		current string
		set     func(string)
	}{
		{"Category", d.Category, a.form.SetCategory},
		{"Company from", d.CompanyFrom, a.form.SetCompanyFrom},
		{"Company to", d.CompanyTo, a.form.SetCompanyTo},
		{"File name", a.form.Draft().CustomFileName, a.form.SetCustomFileName},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, withCurrent(f.prompt, f.current), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			f.set(v)
		}
	}

	text, err := GetMultiline(a.reader, "Document text (optional)", a.out)
	if err != nil {
		return err
	}
	if text != "" {
		a.form.SetInlineText(text)
	}
	return nil
}

func withCurrent(prompt, current string) string {
	if current == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, current)
}
