package domain

// Listing is one vehicle record from the dataset. JSON names follow the
// published cars.json resource.
type Listing struct {
	ID          int      `json:"id" db:"id"`
	Make        string   `json:"make" db:"make"`
	Model       string   `json:"model" db:"model"`
	Year        int      `json:"year" db:"year"`
	Km          int      `json:"km" db:"km"`
	Fuel        string   `json:"fuel" db:"fuel"`
	Gearbox     string   `json:"gearbox" db:"gearbox"` // transmission
	Price       float64  `json:"price" db:"price"`
	Location    string   `json:"location" db:"location"`
	Images      []string `json:"images,omitempty" db:"-"`
	Description string   `json:"description,omitempty" db:"description"`
	Garage      *Garage  `json:"garage,omitempty" db:"-"`
}

// Garage is the optional seller contact attached to a listing.
type Garage struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Title is "<make> <model>".
func (l Listing) Title() string {
	return l.Make + " " + l.Model
}

// Facets holds the option lists of the search form.
type Facets struct {
	Makes     []string `json:"makes"`
	Fuels     []string `json:"fuels"`
	Gearboxes []string `json:"gearboxes"`
}
