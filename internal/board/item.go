// Package board fetches project items from the GitHub Projects V2 GraphQL
// API and decodes them into a typed intermediate representation. Raw
// response structs never leave this package.
package board

// Item is one project item: optional issue content plus board field values.
// Items whose content is not an issue (draft cards, pull requests) carry a
// nil Issue and are skipped by normalization, not treated as errors.
type Item struct {
	Issue  *Issue
	Fields []FieldValue
}

// Issue holds the issue content of a project item.
type Issue struct {
	Number     int
	Title      string
	State      string
	Body       string
	URL        string
	Repository string // "owner/name", empty when the repository is unknown
	Labels     []string
	Assignees  []Assignee
}

// Assignee is one platform-assigned user, order preserved from the API.
type Assignee struct {
	Login string
	Name  string
}

// FieldKind tags the variant carried by a FieldValue.
type FieldKind int

const (
	// FieldDate is a date field value, raw YYYY-MM-DD text.
	FieldDate FieldKind = iota
	// FieldSingleSelect is a single-select option value.
	FieldSingleSelect
)

// FieldValue is one decoded board field value. Exactly one of Date and
// Option is meaningful, selected by Kind. Unrecognized field-value kinds
// are dropped during decoding.
type FieldValue struct {
	Kind   FieldKind
	Name   string
	Date   string
	Option string
}

// decodeItem converts a raw GraphQL item node into the intermediate
// representation. This is the single boundary where stringly-typed
// response access happens.
func decodeItem(n itemNode) Item {
	item := Item{}

	if n.Content.Issue.Number != 0 {
		raw := n.Content.Issue
		issue := &Issue{
			Number: int(raw.Number),
			Title:  string(raw.Title),
			State:  string(raw.State),
			Body:   string(raw.Body),
			URL:    string(raw.URL),
		}
		if raw.Repository.Name != "" {
			issue.Repository = string(raw.Repository.Owner.Login) + "/" + string(raw.Repository.Name)
		}
		for _, l := range raw.Labels.Nodes {
			issue.Labels = append(issue.Labels, string(l.Name))
		}
		for _, a := range raw.Assignees.Nodes {
			issue.Assignees = append(issue.Assignees, Assignee{Login: string(a.Login), Name: string(a.Name)})
		}
		item.Issue = issue
	}

	// A field name shared by both fragments fills both, so the variant is
	// picked by its value field, not by the field name.
	for _, fv := range n.FieldValues.Nodes {
		switch {
		case fv.DateValue.Date != "":
			item.Fields = append(item.Fields, FieldValue{
				Kind: FieldDate,
				Name: string(fv.DateValue.Field.Common.Name),
				Date: string(fv.DateValue.Date),
			})
		case fv.SingleSelectValue.Name != "":
			item.Fields = append(item.Fields, FieldValue{
				Kind:   FieldSingleSelect,
				Name:   string(fv.SingleSelectValue.Field.Common.Name),
				Option: string(fv.SingleSelectValue.Name),
			})
		}
	}

	return item
}
