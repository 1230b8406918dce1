package ui

import (
	"transitcoop/internal/fleet"
	"transitcoop/internal/provisioning"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type DashboardData struct {
	Header       HeaderData
	Fleet        fleet.Summary
	CanProvision bool
	Provisioning *provisioning.Outcome
	Flash        string
}

// DashboardPage renders the home dashboard. A zero Fleet renders the
// skeleton and the page script swaps in the fragment.
func DashboardPage(d DashboardData) Node {
	return page("Dashboard",
		header(d.Header),
		Main(Class("layout"),
			If(d.Flash != "", P(Class("flash"), Attr("role", "alert"), Text(d.Flash))),
			H1(Class("page-title"), Text("Welcome, "+d.Header.Roles.Active.Name)),
			FleetSection(d.Fleet),
			If(d.CanProvision, ProvisioningPanel(d.Provisioning)),
		),
	)
}

func LoginPage(errMsg string) Node {
	return page("Sign in",
		Main(Class("login-wrap"),
			H1(Text(CooperativeName)),
			P(Class("muted"), Text("Sign in to the cooperative dashboard.")),
			If(errMsg != "", P(Class("flash"), Attr("role", "alert"), Text(errMsg))),
			Form(
				Method("post"),
				Action("/dashboard/login"),
				Class("login-form"),
				Attr("data-disable-on-submit", ""),
				Label(For("email"), Text("Email")),
				Input(ID("email"), Type("email"), Name("email"), AutoComplete("username"), Required()),
				Label(For("password"), Text("Password")),
				Input(ID("password"), Type("password"), Name("password"), AutoComplete("current-password"), Required()),
				Button(Type("submit"), Class("btn btn-primary"), Text("Sign in")),
			),
		),
	)
}
