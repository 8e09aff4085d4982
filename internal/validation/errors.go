package validation

// Kind classifies why a location payload was rejected.
type Kind string

const (
	MissingField          Kind = "MissingField"
	InvalidCoordinates    Kind = "InvalidCoordinates"
	InvalidBloomingPeriod Kind = "InvalidBloomingPeriod"
	InvalidDateOrder      Kind = "InvalidDateOrder"
	InvalidSpeciesID      Kind = "InvalidSpeciesId"
)

const (
	msgMissingField          = "Missing required fields: speciesId, locationName, coordinates, bloomingPeriod"
	msgInvalidCoordinates    = "Coordinates must be an array of [longitude, latitude]"
	msgInvalidBloomingPeriod = "Blooming period must include start, peak, and end dates"
	msgInvalidDateOrder      = "Invalid blooming period: dates must be in chronological order (start <= peak <= end)"
	msgInvalidSpeciesID      = "speciesId must be a positive integer"
)

// Error is a rejected payload. Message is meant to be shown to the user verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}
