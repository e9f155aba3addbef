// Package catalog holds the static service list. The catalog lives in source
// configuration, is loaded once at process start, and is never persisted.
package catalog

type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	DurationMin int    `json:"duration"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var services = []Service{
	{ID: "haircut", Name: "شعر", Price: 120, DurationMin: 30, Description: "Professional haircut with modern styling", Icon: "💇"},
	{ID: "trimming", Name: "تدريج", Price: 100, DurationMin: 15, Description: "Hair trimming", Icon: "🧔"},
	{ID: "trimming_beard", Name: "تدريج + دقن", Price: 120, DurationMin: 20, Description: "Traditional straight razor shave", Icon: "✨"},
	{ID: "beard", Name: "دقن", Price: 50, DurationMin: 10, Description: "Beard complete grooming", Icon: "✨"},
	{ID: "styling", Name: "استشوار", Price: 50, DurationMin: 15, Description: "modern styling", Icon: "✨"},
	{ID: "combo", Name: "حلاقه + دقن + استشوار", Price: 150, DurationMin: 40, Description: "Haircut + modern styling + Beard complete grooming", Icon: "✨"},
}

// All returns a copy so callers cannot mutate the catalog.
func All() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

func ByID(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

func Exists(id string) bool {
	_, ok := ByID(id)
	return ok
}
