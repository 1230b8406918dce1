package roles

import "strings"

type Role string

const (
	RoleAdministrator Role = "administrator"
	RolePresident     Role = "president"
	RoleManager       Role = "manager"
	RoleEmployee      Role = "employee"
	RolePartner       Role = "partner"
	RoleDriver        Role = "driver"
	RoleOfficial      Role = "official"
	RoleClient        Role = "client"
)

// DefaultRole is what a principal acts as when nothing else is assigned.
const DefaultRole = RoleClient

type Badge string

const (
	BadgeDefault     Badge = "default"
	BadgeSecondary   Badge = "secondary"
	BadgeDestructive Badge = "destructive"
	BadgeOutline     Badge = "outline"
)

// Descriptor is how a role is displayed. Icon is a Lucide icon name.
type Descriptor struct {
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Badge Badge  `json:"badge"`
}

const fallbackIcon = "user"

var directory = []Descriptor{
	{Role: RoleAdministrator, Name: "Administrator", Icon: "shield", Badge: BadgeDestructive},
	{Role: RolePresident, Name: "President", Icon: "crown", Badge: BadgeDefault},
	{Role: RoleManager, Name: "Manager", Icon: "briefcase", Badge: BadgeDefault},
	{Role: RoleEmployee, Name: "Employee", Icon: "user-check", Badge: BadgeSecondary},
	{Role: RolePartner, Name: "Partner", Icon: "handshake", Badge: BadgeSecondary},
	{Role: RoleDriver, Name: "Driver", Icon: "bus", Badge: BadgeSecondary},
	{Role: RoleOfficial, Name: "Official", Icon: "clipboard-check", Badge: BadgeSecondary},
	{Role: RoleClient, Name: "Client", Icon: "user", Badge: BadgeOutline},
}

var byRole = func() map[Role]Descriptor {
	m := make(map[Role]Descriptor, len(directory))
	for _, d := range directory {
		m[d.Role] = d
	}
	return m
}()

// Lookup returns the display descriptor for a role identifier. Identifiers
// outside the directory get a generic descriptor labelled with the raw value.
func Lookup(role string) Descriptor {
	if d, ok := byRole[Role(role)]; ok {
		return d
	}
	return Descriptor{
		Role:  Role(role),
		Name:  role,
		Icon:  fallbackIcon,
		Badge: BadgeOutline,
	}
}

// All returns the directory in display order.
func All() []Descriptor {
	out := make([]Descriptor, len(directory))
	copy(out, directory)
	return out
}

func (r Role) Valid() bool {
	_, ok := byRole[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Parse normalizes s and reports whether it names a known role.
func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}
