package stylist

// Stage names a step of the linear recommendation pipeline.
type Stage string

const (
	StageInit                Stage = "INIT"
	StageWeatherResolved     Stage = "WEATHER_RESOLVED"
	StageWardrobeLoaded      Stage = "WARDROBE_LOADED"
	StageCandidatesGenerated Stage = "CANDIDATES_GENERATED"
	StageCandidatesFiltered  Stage = "CANDIDATES_FILTERED"
	StageScored              Stage = "SCORED"
	StageWinnerSelected      Stage = "WINNER_SELECTED"
	StageDetailsResolved     Stage = "DETAILS_RESOLVED"
	StageAdvisoryComputed    Stage = "ADVISORY_COMPUTED"
	StageCommentaryGenerated Stage = "COMMENTARY_GENERATED"
	StageDone                Stage = "DONE"
)
