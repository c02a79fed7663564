package models

// TMDBCastMember represents a cast member in credits
type TMDBCastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// TMDBCrewMember represents a crew member in credits
type TMDBCrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

// TMDBCredits represents the /movie/{id}/credits record
type TMDBCredits struct {
	ID   int              `json:"id"`
	Cast []TMDBCastMember `json:"cast"`
	Crew []TMDBCrewMember `json:"crew"`
}

// Director returns the first crew member with the Director job.
func (c *TMDBCredits) Director() (string, bool) {
	for _, member := range c.Crew {
		if member.Job == "Director" {
			return member.Name, true
		}
	}
	return "", false
}
