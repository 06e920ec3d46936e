package domain

// RoadmapCourse is an external course the assistant recommends for a stage.
type RoadmapCourse struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// RoadmapPostRef links a saved post into a roadmap stage.
type RoadmapPostRef struct {
	PostID  string `json:"post_id"`
	URL     string `json:"url,omitempty"`
	Author  string `json:"author,omitempty"`
	Summary string `json:"summary,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// RoadmapStage is one step of a learning roadmap.
type RoadmapStage struct {
	// ID identifies the stage for completion tracking.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Skills the stage teaches.
	Skills []string `json:"skills,omitempty"`

	// Projects to build during the stage.
	Projects []string `json:"projects,omitempty"`

	// Posts are saved posts relevant to the stage.
	Posts []RoadmapPostRef `json:"posts,omitempty"`

	// Courses are external resources for the stage.
	Courses []RoadmapCourse `json:"courses,omitempty"`
}

// Roadmap is an assistant-generated learning plan built from the user's
// goal and their saved posts.
type Roadmap struct {
	// Goal is the user prompt the plan was generated from.
	Goal string `json:"goal"`

	// Stages are the ordered steps of the plan.
	Stages []RoadmapStage `json:"stages"`
}

// Progress reports how many stages of the roadmap are marked complete.
func (r *Roadmap) Progress(completed map[string]bool) (done, total int) {
	total = len(r.Stages)
	for _, stage := range r.Stages {
		if completed[stage.ID] {
			done++
		}
	}
	return done, total
}
