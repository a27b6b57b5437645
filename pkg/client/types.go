package client

type Health struct {
	Status string `json:"status"`
	TS     string `json:"ts"`
}

type Skill struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type WorkEntry struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type Project struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Skills      []string          `json:"skills"`
	Links       map[string]string `json:"links"`
}

type Profile struct {
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Education string            `json:"education"`
	Links     map[string]string `json:"links"`
	Skills    []Skill           `json:"skills"`
	Work      []WorkEntry       `json:"work"`
	Projects  []Project         `json:"projects"`
}

type ProjectList struct {
	Count    int       `json:"count"`
	Projects []Project `json:"projects"`
}

type SearchResults struct {
	Projects []Project   `json:"projects"`
	Skills   []Skill     `json:"skills"`
	Work     []WorkEntry `json:"work"`
}
