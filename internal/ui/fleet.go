package ui

import (
	"transitcoop/internal/fleet"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	FleetFragmentPath = "/dashboard/fleet"

	// fleetLoadError is shown when the fragment itself cannot be fetched.
	fleetLoadError = "Could not load buses in service."
)

// FleetSection renders whichever of the four fleet states the summary is in.
func FleetSection(s fleet.Summary) Node {
	var body Node
	switch s.StateOrLoading() {
	case fleet.StateLoading:
		return fleetSkeleton()
	case fleet.StateFailed:
		body = Div(Class("fleet-failed"), Attr("role", "alert"),
			icon("triangle-alert"),
			P(Text(s.Error)),
		)
	default:
		if s.Empty() {
			body = Div(Class("fleet-empty"),
				icon("bus"),
				P(Text("No buses in service right now.")),
			)
		} else {
			cards := make([]Node, 0, len(s.Cards))
			for _, c := range s.Cards {
				cards = append(cards, busCard(c))
			}
			body = Div(Class("fleet-grid"), Group(cards))
		}
	}

	return Section(
		ID("fleet"),
		Class("fleet"),
		Attr("data-state", string(s.StateOrLoading())),
		H2(Text("Buses in service")),
		body,
	)
}

func fleetSkeleton() Node {
	placeholders := make([]Node, 0, fleet.MaxCards)
	for i := 0; i < fleet.MaxCards; i++ {
		placeholders = append(placeholders, Div(Class("card skeleton"),
			Div(Class("skeleton-media")),
			Div(Class("skeleton-line")),
			Div(Class("skeleton-line short")),
		))
	}

	return Section(
		ID("fleet"),
		Class("fleet"),
		Attr("data-state", string(fleet.StateLoading)),
		Attr("data-src", FleetFragmentPath),
		Attr("data-error", fleetLoadError),
		Attr("aria-busy", "true"),
		H2(Text("Buses in service")),
		Div(Class("fleet-grid"), Group(placeholders)),
	)
}

func busCard(c fleet.Card) Node {
	var media Node
	if c.ImageURL != "" {
		media = Img(Class("card-media"), Src(c.ImageURL), Alt(c.Title), Attr("loading", "lazy"))
	} else {
		media = Div(Class("card-media initials"), Text(c.Initials))
	}

	ownerClass := "card-line"
	if !c.HasOwner {
		ownerClass += " muted"
	}

	return Article(
		Class("card"),
		Attr("data-bus-id", c.ID),
		media,
		H3(Class("card-title"), Text(c.Title)),
		If(c.Title != c.Plate, P(Class("card-line muted"), Text(c.Plate))),
		P(Class(ownerClass), icon("user"), Text(c.Owner)),
		If(c.Driver != "", P(Class("card-line"), icon("steering-wheel"), Text(c.Driver))),
		If(c.Official != "", P(Class("card-line"), icon("clipboard-check"), Text(c.Official))),
	)
}
