package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var formFields = map[string]string{
	"name":      "Name",
	"email":     "Email",
	"phone":     "Phone",
	"resume":    "Resume text",
	"titles":    "Titles (comma separated)",
	"locations": "Locations (comma separated)",
	"remote":    "Remote (true/false)",
	"include":   "Include keywords (comma separated)",
	"exclude":   "Exclude keywords (comma separated)",
}

// FormFields returns the editable profile fields with their descriptions,
// sorted by name.
func FormFields() [][2]string {
	names := make([]string, 0, len(formFields))
	for name := range formFields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([][2]string, 0, len(names))
	for _, name := range names {
		out = append(out, [2]string{name, formFields[name]})
	}
	return out
}

// SetField updates one field of the profile form being edited.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := &c.form
	switch strings.ToLower(field) {
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "resume":
		f.ResumeText = value
	case "titles":
		f.Titles = value
	case "locations":
		f.Locations = value
	case "remote":
		remote, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("remote must be true or false, got %q", value)
		}
		f.Remote = remote
	case "include":
		f.IncludeKeywords = value
	case "exclude":
		f.ExcludeKeywords = value
	default:
		return fmt.Errorf("unknown profile field %q", field)
	}
	return nil
}
