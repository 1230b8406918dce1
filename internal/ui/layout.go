package ui

import (
	"time"

	"transitcoop/internal/roles"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	CooperativeName = "Transit Cooperative"
	clockLayout     = "Monday, January 2, 2006 15:04:05"
)

// HeaderData feeds the top bar: cooperative name, role selector and clock.
type HeaderData struct {
	Roles    roles.View
	Now      time.Time
	Location *time.Location
}

func page(title string, body ...Node) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | "+CooperativeName)),
			Link(Rel("icon"), Href("data:,")),
			StyleEl(Raw(stylesheet)),
			Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
		),
		Body(
			Group(body),
			Script(Raw(pageScript)),
		),
	)
}

func header(h HeaderData) Node {
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}

	return Header(
		Class("app-header"),
		Div(Class("brand"),
			I(Attr("data-lucide", "bus"), Attr("aria-hidden", "true")),
			Span(Text(CooperativeName)),
		),
		Div(Class("header-right"),
			RoleSelector(h.Roles),
			Clock(h.Now, loc),
		),
	)
}

// Clock renders the server time; the page script keeps it ticking every
// second in the same zone.
func Clock(now time.Time, loc *time.Location) Node {
	return Time(
		ID("clock"),
		Class("clock"),
		Attr("data-tz", loc.String()),
		Attr("datetime", now.In(loc).Format(time.RFC3339)),
		Text(now.In(loc).Format(clockLayout)),
	)
}

// ErrorPage is a minimal standalone page for dashboard failures.
func ErrorPage(title, message string) Node {
	return page(title,
		Main(
			Class("layout"),
			H1(Class("page-title"), Text(title)),
			P(Text(message)),
			P(A(Href("/dashboard"), Text("Back to dashboard"))),
		),
	)
}

const pageScript = `
(function () {
  if (window.lucide) { window.lucide.createIcons(); }

  var clock = document.getElementById("clock");
  if (clock) {
    var fmt = new Intl.DateTimeFormat("en-US", {
      timeZone: clock.dataset.tz || "UTC",
      weekday: "long", year: "numeric", month: "long", day: "numeric",
      hour: "2-digit", minute: "2-digit", second: "2-digit", hour12: false
    });
    setInterval(function () { clock.textContent = fmt.format(new Date()); }, 1000);
  }

  var fleet = document.getElementById("fleet");
  if (fleet && fleet.dataset.src) {
    var fleetFailed = function () {
      var alert = document.createElement("div");
      alert.className = "fleet-failed";
      alert.setAttribute("role", "alert");
      alert.textContent = fleet.dataset.error || "Could not load buses.";
      var grid = fleet.querySelector(".fleet-grid");
      if (grid) { grid.replaceWith(alert); } else { fleet.appendChild(alert); }
      fleet.dataset.state = "failed";
      fleet.removeAttribute("aria-busy");
      fleet.removeAttribute("data-src");
    };
    fetch(fleet.dataset.src, {
      credentials: "same-origin",
      redirect: "manual",
      headers: { "X-Fragment": "fleet" }
    })
      .then(function (r) {
        if (!r.ok || r.redirected || r.type === "opaqueredirect") {
          throw new Error("fleet fragment: " + r.status);
        }
        return r.text();
      })
      .then(function (html) {
        fleet.outerHTML = html;
        if (window.lucide) { window.lucide.createIcons(); }
      })
      .catch(fleetFailed);
  }

  document.querySelectorAll("form[data-disable-on-submit]").forEach(function (f) {
    f.addEventListener("submit", function () {
      f.querySelectorAll("button").forEach(function (b) { b.disabled = true; });
    });
  });
})();
`
