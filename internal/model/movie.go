package model

// Movie is a dataset record. Only Cast takes part in the actor graph, Title and Year are
// carried along for display.
type Movie struct {
	Title string   `json:"title,omitempty" bson:"title"`
	Year  int      `json:"year,omitempty" bson:"year,omitempty"`
	Cast  []string `json:"cast" bson:"cast"`
}

