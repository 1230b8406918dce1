package ui

import (
	"transitcoop/internal/roles"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func icon(name string) Node {
	return I(Class("icon"), Attr("data-lucide", name), Attr("aria-hidden", "true"))
}

// RoleBadge shows a role with its icon in the role's badge variant.
func RoleBadge(d roles.Descriptor) Node {
	return Span(
		Class("badge badge-"+string(d.Badge)),
		Attr("data-role", string(d.Role)),
		icon(d.Icon),
		Span(Text(d.Name)),
	)
}

// RoleSelector renders a plain badge for a single role and a menu of
// switch forms otherwise.
func RoleSelector(v roles.View) Node {
	if !v.Switchable {
		return Div(Class("role-selector"), RoleBadge(v.Active))
	}

	items := make([]Node, 0, len(v.Assigned))
	for _, d := range v.Assigned {
		items = append(items, Li(roleOption(d, d.Role == v.Active.Role)))
	}

	return Div(Class("role-selector"),
		Details(Class("role-menu"),
			Summary(RoleBadge(v.Active), icon("chevron-down")),
			Ul(Class("role-menu-items"), Group(items)),
		),
	)
}

func roleOption(d roles.Descriptor, active bool) Node {
	className := "role-option"
	if active {
		className += " active"
	}

	return Form(
		Method("post"),
		Action("/dashboard/active-role"),
		Input(Type("hidden"), Name("role"), Value(string(d.Role))),
		Button(
			Type("submit"),
			Class(className),
			If(active, Disabled()),
			icon(d.Icon),
			Span(Text(d.Name)),
			If(active, icon("check")),
		),
	)
}
