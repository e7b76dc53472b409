package models

// QIC is the leader of a workout.
type QIC struct {
	Name   string  `json:"name"`
	F3Name *string `json:"f3_name"`
}

// PAX is a participant of a workout. Duplicates are kept as returned by the store.
type PAX struct {
	Name   string  `json:"name"`
	F3Name *string `json:"f3_name"`
}

// AOS is a named segment of the workout's exercise content.
type AOS struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Workout is the assembled session header plus its participants and segments.
// PAX and AOS keep store result order and are never nil.
type Workout struct {
	WorkoutDate Date   `json:"workout_date"`
	QIC         QIC    `json:"qic"`
	PAX         []PAX  `json:"pax"`
	AOS         []AOS  `json:"aos"`
	URLSlug     string `json:"url_slug"`
}

// WorkoutRequest is the POST /workouts/search payload.
// Field ranges are enforced by gin binding before the handler runs.
type WorkoutRequest struct {
	Year    int    `json:"year" binding:"required,min=2000,max=9999"`
	Month   int    `json:"month" binding:"required,min=1,max=12"`
	Day     int    `json:"day" binding:"required,min=1,max=31"`
	URLSlug string `json:"url_slug" binding:"required"`
}

// WorkoutResponse is the envelope returned by the workout endpoints.
// Success implies Data != nil; !Success implies Data == nil and a message.
type WorkoutResponse struct {
	Success bool     `json:"success"`
	Message *string  `json:"message"`
	Data    *Workout `json:"data"`
}

// FoundResponse wraps a retrieved workout.
func FoundResponse(w Workout) WorkoutResponse {
	msg := "Workout data retrieved successfully"
	return WorkoutResponse{Success: true, Message: &msg, Data: &w}
}

// NotFoundResponse reports a well-formed lookup with no matching workout.
func NotFoundResponse(date Date, slug string) WorkoutResponse {
	msg := "No workout found for " + date.String() + " with slug '" + slug + "'"
	return WorkoutResponse{Success: false, Message: &msg}
}
