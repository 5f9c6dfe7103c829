package catalog

// Service maps a service name to the phone number the server hands out.
type Service struct {
	Name   string
	Number string
}

// Catalog is an ordered, read-only list of services. It is built once and
// never mutated, so it can be shared without locking.
type Catalog struct {
	services []Service
}

var defaultServices = []Service{
	{Name: "Police Station Number", Number: "911"},
	{Name: "Ambulance Number", Number: "912"},
	{Name: "Fire Station Number", Number: "913"},
	{Name: "Vehicle Repair Number", Number: "914"},
	{Name: "Food Delivery Number", Number: "915"},
	{Name: "Blood Bank Number", Number: "916"},
}

// New copies services into a new catalog, keeping their order.
func New(services ...Service) *Catalog {
	c := &Catalog{services: make([]Service, len(services))}
	copy(c.services, services)
	return c
}

// Default returns the fixed emergency directory.
func Default() *Catalog {
	return New(defaultServices...)
}

// Lookup scans the catalog for an exact, case-sensitive match of name.
// The first match wins.
func (c *Catalog) Lookup(name string) (Service, bool) {
	for _, s := range c.services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// Services returns a copy of the catalog in order.
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Len returns the number of services.
func (c *Catalog) Len() int {
	return len(c.services)
}
