package schemas

type OptionsRequest struct {
	Count  int               `json:"count" validate:"required,min=1,max=10"`
	Labels map[string]string `json:"labels"`
}

type CriterionRequest struct {
	Name string `json:"name" validate:"required"`
}

type WeightRequest struct {
	Criterion string  `json:"criterion" validate:"required"`
	Weight    float64 `json:"weight" validate:"gte=0,lte=5"`
}

type RatingRequest struct {
	Reviewer  string `json:"reviewer" validate:"required"`
	Option    string `json:"option" validate:"required"`
	Criterion string `json:"criterion" validate:"required"`
	Score     int    `json:"score" validate:"required,min=1,max=5"`
}

type CommentRequest struct {
	Criterion string `json:"criterion" validate:"required"`
	Option    string `json:"option" validate:"required"`
	Comment   string `json:"comment"`
}

type OptionOut struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

type CriterionOut struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type RatingOut struct {
	Reviewer  string `json:"reviewer"`
	Option    string `json:"option"`
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
}

type CommentOut struct {
	Criterion string `json:"criterion"`
	Option    string `json:"option"`
	Comment   string `json:"comment"`
}

type RankedOut struct {
	Option     string  `json:"option"`
	Label      string  `json:"label"`
	TotalScore float64 `json:"total_score"`
}

type StateOut struct {
	Reviewers []string       `json:"reviewers"`
	Options   []OptionOut    `json:"options"`
	Criteria  []CriterionOut `json:"criteria"`
	Ratings   []RatingOut    `json:"ratings,omitempty"`
	Comments  []CommentOut   `json:"comments,omitempty"`
	Ranking   []RankedOut    `json:"ranking"`
	Warnings  []string       `json:"warnings,omitempty"`
}

type UploadResultOut struct {
	Filename string `json:"filename"`
	Status   string `json:"status"` // uploaded | skipped | error
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}
