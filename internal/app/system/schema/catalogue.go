// internal/app/system/schema/catalogue.go
package schema

import "regexp"

// Schema names accepted by Validate.
const (
	Location        = "Location"
	ProfileRegister = "ProfileRegister"
	ProfileUpdate   = "ProfileUpdate"
	FilterResource  = "FilterResource"
	AddResource     = "AddResource"
	UpdateResource  = "UpdateResource"
	UserRegister    = "UserRegister"
	UserUpdate      = "UserUpdate"
	SubjectCreate   = "SubjectCreate"
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}$`)
	cityPattern     = regexp.MustCompile(`^[A-Za-z]{3,20} ?([A-Za-z]{3,20})?$`)
	postcodePattern = regexp.MustCompile(`^[1-9][0-9]{3}$`)
)

func f(v float64) *float64 { return &v }

var catalogue = map[string]*Schema{}

func register(s *Schema) { catalogue[s.Name] = s }

func init() {
	register(&Schema{
		Name: Location,
		Properties: []Property{
			{Name: "lat", Type: "number", Required: true, Min: f(-90), Max: f(90)},
			{Name: "lon", Type: "number", Required: true, Min: f(-180), Max: f(180)},
		},
	})

	register(&Schema{
		Name: ProfileRegister,
		Properties: []Property{
			{Name: "email", Type: "string", Required: true, Pattern: emailPattern},
			{Name: "password", Type: "string", Required: true},
			{Name: "firstName", Type: "string", Required: true},
			{Name: "lastName", Type: "string", Required: true},
			{Name: "address", Type: "string", Required: true},
			{Name: "city", Type: "string", Required: true, Pattern: cityPattern},
			{Name: "postcode", Type: "string", Required: true, Pattern: postcodePattern},
			{Name: "location", Ref: Location, Required: true},
		},
	})

	register(&Schema{
		Name: ProfileUpdate,
		Properties: []Property{
			{Name: "password", Type: "string"},
			{Name: "firstName", Type: "string"},
			{Name: "lastName", Type: "string"},
			{Name: "address", Type: "string"},
			{Name: "city", Type: "string", Pattern: cityPattern},
			{Name: "postcode", Type: "string", Pattern: postcodePattern},
			{Name: "location", Ref: Location},
		},
	})

	register(&Schema{
		Name: FilterResource,
		Properties: []Property{
			{Name: "lat", Type: "number", Required: true, Min: f(-90), Max: f(90)},
			{Name: "lon", Type: "number", Required: true, Min: f(-180), Max: f(180)},
			{Name: "radius", Type: "number", Required: true, Min: f(0)},
			{Name: "filter", Type: "array", Items: "string"},
			{Name: "searchterm", Type: "string"},
		},
	})

	register(&Schema{
		Name: AddResource,
		Properties: []Property{
			{Name: "location", Ref: Location, Required: true},
			{Name: "type", Type: "string", Required: true},
			{Name: "title", Type: "string", Required: true},
			{Name: "description", Type: "string", Required: true},
			{Name: "points", Type: "number", Required: true, Min: f(1), Max: f(5)},
		},
	})

	register(&Schema{
		Name: UpdateResource,
		Properties: []Property{
			{Name: "location", Ref: Location},
			{Name: "type", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "points", Type: "number", Min: f(1), Max: f(5)},
		},
	})

	// Schemas bound by the user and subject endpoints.
	register(&Schema{
		Name: UserRegister,
		Properties: []Property{
			{Name: "name", Type: "string", Required: true},
			{Name: "email", Type: "string", Required: true, Pattern: emailPattern},
			{Name: "password", Type: "string", Required: true},
		},
	})

	register(&Schema{
		Name: UserUpdate,
		Properties: []Property{
			{Name: "name", Type: "string"},
			{Name: "email", Type: "string", Pattern: emailPattern},
			{Name: "password", Type: "string"},
			{Name: "subjectId", Type: "string"},
		},
	})

	register(&Schema{
		Name: SubjectCreate,
		Properties: []Property{
			{Name: "name", Type: "string", Required: true},
			{Name: "state", Type: "object"},
		},
	})
}
