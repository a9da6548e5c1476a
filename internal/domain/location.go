package domain

// LocationPoint is one marker on the map: a visited city and the places
// featured there.
type LocationPoint struct {
	Longitude     float64 `json:"longitude"`
	Latitude      float64 `json:"latitude"`
	Location      string  `json:"location"`
	PlacesVisited string  `json:"place(s) visited"`
}
