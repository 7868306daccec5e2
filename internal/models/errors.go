package models

import "errors"

// Error taxonomy shared across the service layer. Handlers translate
// these into HTTP statuses; everything here is recoverable and ends
// up as a user-visible notice, never a crash.
var (
	// ErrDuplicateUsername is returned when registering a username
	// that already resolves through the unique index.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned on login when no user matches
	// or the password comparison fails.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrImageDecode is returned when an upload cannot be decoded as
	// an image.
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrAnalysisFailed is returned when garment classification yields
	// no usable text or text that fails the strict structured parse.
	ErrAnalysisFailed = errors.New("garment analysis failed")

	// ErrSuggestionFailed is returned when the outfit reasoning call
	// yields an empty or unparseable response.
	ErrSuggestionFailed = errors.New("outfit suggestion failed")

	// ErrRenderFailed is returned when the image generation response
	// contains no inline image payload.
	ErrRenderFailed = errors.New("outfit rendering failed")

	// ErrStorage wraps any underlying storage fault.
	ErrStorage = errors.New("storage fault")

	// ErrNotFound is returned when a record does not exist or is not
	// owned by the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrPrecondition is returned when an operation's guard rejects it,
	// e.g. a wardrobe too small to style or a swap with no candidates.
	ErrPrecondition = errors.New("precondition not met")

	// ErrBusy is returned when a generate or regenerate is requested
	// while another run is already in flight for the same session.
	ErrBusy = errors.New("a styling run is already in progress")

	// ErrSuperseded is returned when an in-flight run completes after
	// its session was reset or replaced; the result is discarded.
	ErrSuperseded = errors.New("styling run superseded")
)
