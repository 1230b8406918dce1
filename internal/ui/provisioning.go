package ui

import (
	"fmt"

	"transitcoop/internal/provisioning"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ProvisioningPanel is the trigger button plus, after a run, the outcome.
func ProvisioningPanel(out *provisioning.Outcome) Node {
	return Section(
		ID("provisioning"),
		Class("provisioning"),
		H2(Text("Test users")),
		P(Class("muted"), Text("Create or complete one demo account per role.")),
		Form(
			Method("post"),
			Action("/dashboard/provisioning"),
			Attr("data-disable-on-submit", ""),
			Button(Type("submit"), Class("btn btn-primary"),
				icon("user-plus"),
				Span(Text("Create test users")),
			),
		),
		Iff(out != nil, func() Node { return Group(provisioningOutcome(out)) }),
	)
}

func provisioningOutcome(out *provisioning.Outcome) []Node {
	nodes := []Node{Toast(out.Notification)}
	if out.Response == nil {
		return nodes
	}

	c := out.Counts
	nodes = append(nodes, P(Class("provisioning-counts"),
		Text(fmt.Sprintf("%d total, %d created, %d updated, %d existing, %d errors",
			c.Total, c.Created, c.Updated, c.Existing, c.Errors)),
	))

	items := make([]Node, 0, len(out.Response.Results))
	for _, r := range out.Response.Results {
		items = append(items, resultItem(r))
	}
	return append(nodes, Ul(Class("provisioning-results"), Group(items)))
}

func resultItem(r provisioning.Result) Node {
	return Li(
		Class("result"),
		Span(Class("result-email"), Text(r.Email)),
		StatusBadge(r.Status),
		Span(Class("muted"), Text(r.Message)),
		Iff(r.Credentials != nil, func() Node { return credentials(r.Credentials) }),
	)
}

func credentials(c *provisioning.Credentials) Node {
	return Div(Class("credentials"),
		Span(Text("Role: "+c.Role)),
		Span(Text("Password: "), Code(Text(c.Password))),
	)
}

// StatusBadge maps a provisioning status to a badge variant.
func StatusBadge(s provisioning.Status) Node {
	variant := "outline"
	label := string(s)
	switch s {
	case provisioning.StatusCreated:
		variant, label = "default", "created"
	case provisioning.StatusUpdated:
		variant = "secondary"
	case provisioning.StatusError:
		variant = "destructive"
	}
	return Span(Class("badge badge-"+variant), Attr("data-status", string(s)), Text(label))
}

// Toast renders a notification in its tone.
func Toast(n provisioning.Notification) Node {
	return Div(
		Class("toast toast-"+string(n.Tone)),
		Attr("role", "status"),
		Strong(Text(n.Title)),
		P(Text(n.Message)),
	)
}
