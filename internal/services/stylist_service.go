package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/ai"
	"github.com/aurastyle/wardrobe-be/internal/imaging"
	"github.com/aurastyle/wardrobe-be/internal/models"
)

// Workflow steps. A session is in exactly one; swap is a modal
// interaction inside StepResult and does not change the step.
const (
	StepInput      = "input"
	StepProcessing = "processing"
	StepResult     = "result"
)

// StylistProvider is the slice of the AI gateway the workflow needs.
type StylistProvider interface {
	SuggestOutfit(ctx context.Context, wardrobe []models.ClothingItem, req models.OutfitRequest) (models.OutfitSuggestion, error)
	RenderOutfitImage(ctx context.Context, visualPrompt, userPhoto string) (string, error)
}

// StylistState is the client-visible snapshot of one session.
type StylistState struct {
	Step            string                   `json:"step"`
	Regenerating    bool                     `json:"regenerating"`
	Request         models.OutfitRequest     `json:"request"`
	Suggestion      *models.OutfitSuggestion `json:"suggestion,omitempty"`
	SelectedItemIDs []string                 `json:"selectedItemIds"`
	Image           string                   `json:"generatedImageBase64,omitempty"`
	OutfitID        string                   `json:"outfitId,omitempty"`
	Dirty           bool                     `json:"dirty"`
}

// session is the in-memory working state of one user's styling run.
type session struct {
	step         string
	regenerating bool

	// runSeq invalidates in-flight completions: Reset and expiry bump
	// it, and a run only applies its result if the sequence it
	// captured at start is still current.
	runSeq uint64

	request   models.OutfitRequest
	userPhoto string

	suggestion  *models.OutfitSuggestion
	selectedIDs []string
	// baselineIDs is the selection baked into the displayed image;
	// dirty means selectedIDs no longer equals it as a set.
	baselineIDs []string
	image       string
	outfitID    string

	lastActive time.Time
}

// StylistService drives the outfit workflow: one session per user,
// one run in flight at a time, results persisted only when both
// provider calls succeed.
type StylistService struct {
	mu       sync.Mutex
	sessions map[string]*session
	seq      uint64 // global run sequence, never reused across sessions

	wardrobe WardrobeServiceProvider
	outfits  OutfitServiceProvider
	provider StylistProvider
	events   EventServiceProvider
	notifier Notifier
}

// NewStylistService creates a new StylistService.
func NewStylistService(wardrobe WardrobeServiceProvider, outfits OutfitServiceProvider, provider StylistProvider, events EventServiceProvider, notifier Notifier) *StylistService {
	return &StylistService{
		sessions: make(map[string]*session),
		wardrobe: wardrobe,
		outfits:  outfits,
		provider: provider,
		events:   events,
		notifier: notifier,
	}
}

// State returns the current snapshot of the user's session.
func (s *StylistService) State(userID string) StylistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.ensureLocked(userID))
}

// Generate runs the full workflow: reasoning, then rendering, then a
// single persisted record under a freshly minted ID. The wardrobe
// must hold at least two items and no other run may be in flight.
// userPhoto, if non-empty, is the raw try-on photo upload.
func (s *StylistService) Generate(ctx context.Context, userID string, req models.OutfitRequest, userPhoto []byte) (StylistState, error) {
	wardrobe, err := s.wardrobe.ListWardrobe(userID)
	if err != nil {
		return StylistState{}, err
	}
	if len(wardrobe) < 2 {
		return StylistState{}, fmt.Errorf("%w: add at least two wardrobe items first", models.ErrPrecondition)
	}

	var photo string
	if len(userPhoto) > 0 {
		photo, err = imaging.Normalize(userPhoto, UserPhotoMaxDimension, UserPhotoQuality)
		if err != nil {
			return StylistState{}, err
		}
	}

	s.mu.Lock()
	sess := s.ensureLocked(userID)
	if sess.step == StepProcessing || sess.regenerating {
		s.mu.Unlock()
		return StylistState{}, models.ErrBusy
	}
	s.seq++
	seq := s.seq
	sess.runSeq = seq
	sess.step = StepProcessing
	sess.request = req
	sess.userPhoto = photo
	sess.lastActive = time.Now()
	s.mu.Unlock()

	s.notify(userID, "stylist.processing", map[string]string{"phase": "reasoning"})

	suggestion, err := s.provider.SuggestOutfit(ctx, wardrobe, req)
	if err != nil {
		return StylistState{}, s.failRun(userID, sess, seq, err)
	}

	phase := "rendering"
	if photo != "" {
		phase = "tryon"
	}
	s.notify(userID, "stylist.processing", map[string]string{"phase": phase})

	image, err := s.provider.RenderOutfitImage(ctx, suggestion.VisualPrompt, photo)
	if err != nil {
		return StylistState{}, s.failRun(userID, sess, seq, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(userID, sess, seq) {
		return StylistState{}, models.ErrSuperseded
	}

	outfit := models.SavedOutfit{
		ID:         uuid.New().String(),
		UserID:     userID,
		Items:      selectByID(wardrobe, suggestion.SelectedItemIDs),
		Suggestion: suggestion,
		Image:      image,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.outfits.SaveOutfit(outfit); err != nil {
		sess.step = StepInput
		return StylistState{}, err
	}

	sess.step = StepResult
	sess.suggestion = &suggestion
	sess.selectedIDs = append([]string(nil), suggestion.SelectedItemIDs...)
	sess.baselineIDs = append([]string(nil), suggestion.SelectedItemIDs...)
	sess.image = image
	sess.outfitID = outfit.ID
	sess.lastActive = time.Now()

	s.recordEvent(userID, "outfit.generated", fmt.Sprintf("Generated look %q", suggestion.StyleName))
	state := s.snapshotLocked(sess)
	s.notify(userID, "stylist.result", state)
	return state, nil
}

// SwapCandidates lists the wardrobe items that could replace the
// given selected item: same category, itself excluded. An empty
// candidate set is a rejection, not an empty picker.
func (s *StylistService) SwapCandidates(userID, itemID string) ([]models.ClothingItem, error) {
	s.mu.Lock()
	sess := s.ensureLocked(userID)
	if sess.step != StepResult {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no styling result to edit", models.ErrPrecondition)
	}
	if !contains(sess.selectedIDs, itemID) {
		s.mu.Unlock()
		return nil, models.ErrNotFound
	}
	sess.lastActive = time.Now()
	s.mu.Unlock()

	wardrobe, err := s.wardrobe.ListWardrobe(userID)
	if err != nil {
		return nil, err
	}

	var target *models.ClothingItem
	for i := range wardrobe {
		if wardrobe[i].ID == itemID {
			target = &wardrobe[i]
			break
		}
	}
	if target == nil {
		return nil, models.ErrNotFound
	}

	var candidates []models.ClothingItem
	for _, item := range wardrobe {
		if item.Category == target.Category && item.ID != target.ID {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no other %s in the wardrobe", models.ErrPrecondition, target.Category)
	}
	return candidates, nil
}

// ConfirmSwap replaces one selected item with another of the same
// category. Only the in-memory selection changes; the persisted
// record and the displayed image are untouched, which is exactly what
// makes the session dirty.
func (s *StylistService) ConfirmSwap(userID, targetID, newID string) (StylistState, error) {
	wardrobe, err := s.wardrobe.ListWardrobe(userID)
	if err != nil {
		return StylistState{}, err
	}

	var target, replacement *models.ClothingItem
	for i := range wardrobe {
		switch wardrobe[i].ID {
		case targetID:
			target = &wardrobe[i]
		case newID:
			replacement = &wardrobe[i]
		}
	}
	if target == nil || replacement == nil {
		return StylistState{}, models.ErrNotFound
	}
	if replacement.Category != target.Category {
		return StylistState{}, fmt.Errorf("%w: replacement must be a %s", models.ErrPrecondition, target.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.ensureLocked(userID)
	if sess.step != StepResult {
		return StylistState{}, fmt.Errorf("%w: no styling result to edit", models.ErrPrecondition)
	}
	if !contains(sess.selectedIDs, targetID) {
		return StylistState{}, models.ErrNotFound
	}

	for i, id := range sess.selectedIDs {
		if id == targetID {
			sess.selectedIDs[i] = newID
		}
	}
	sess.lastActive = time.Now()
	return s.snapshotLocked(sess), nil
}

// Regenerate re-renders the image for the current selection and
// overwrites the saved record in place under the same ID. The prompt
// is rebuilt deterministically from the selected items; the stored
// suggestion's original prompt is not reused. On failure the previous
// image and record are left untouched.
func (s *StylistService) Regenerate(ctx context.Context, userID string) (StylistState, error) {
	s.mu.Lock()
	sess := s.ensureLocked(userID)
	if sess.step != StepResult || sess.suggestion == nil || sess.outfitID == "" {
		s.mu.Unlock()
		return StylistState{}, fmt.Errorf("%w: no styling result to regenerate", models.ErrPrecondition)
	}
	if sess.regenerating {
		s.mu.Unlock()
		return StylistState{}, models.ErrBusy
	}
	sess.regenerating = true
	sess.lastActive = time.Now()
	seq := sess.runSeq
	selection := append([]string(nil), sess.selectedIDs...)
	req := sess.request
	photo := sess.userPhoto
	outfitID := sess.outfitID
	suggestion := *sess.suggestion
	s.mu.Unlock()

	s.notify(userID, "stylist.processing", map[string]string{"phase": "regenerating"})

	wardrobe, err := s.wardrobe.ListWardrobe(userID)
	if err != nil {
		return StylistState{}, s.failRegen(userID, sess, seq, err)
	}
	selectedItems := selectByID(wardrobe, selection)

	prompt := ai.RegenerationPrompt(selectedItems, req)
	image, err := s.provider.RenderOutfitImage(ctx, prompt, photo)
	if err != nil {
		return StylistState{}, s.failRegen(userID, sess, seq, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(userID, sess, seq) {
		return StylistState{}, models.ErrSuperseded
	}

	suggestion.SelectedItemIDs = append([]string(nil), selection...)
	outfit := models.SavedOutfit{
		ID:         outfitID, // reuse the ID to overwrite
		UserID:     userID,
		Items:      selectedItems,
		Suggestion: suggestion,
		Image:      image,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.outfits.SaveOutfit(outfit); err != nil {
		sess.regenerating = false
		return StylistState{}, err
	}

	sess.regenerating = false
	sess.suggestion = &suggestion
	sess.baselineIDs = append([]string(nil), selection...)
	sess.image = image
	sess.lastActive = time.Now()

	s.recordEvent(userID, "outfit.regenerated", fmt.Sprintf("Re-rendered look %q", suggestion.StyleName))
	state := s.snapshotLocked(sess)
	s.notify(userID, "stylist.result", state)
	return state, nil
}

// Reset discards all in-memory workflow state and returns the session
// to the input step. The previously saved record stays in history.
// Any run still in flight becomes stale and its result is discarded
// on completion.
func (s *StylistService) Reset(userID string) StylistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	sess := &session{step: StepInput, runSeq: s.seq, lastActive: time.Now()}
	s.sessions[userID] = sess
	return s.snapshotLocked(sess)
}

// ExpireIdle drops sessions that have been inactive longer than
// maxIdle. Called by the maintenance scheduler. An expired session's
// in-flight run, if any, is invalidated the same way Reset does it.
func (s *StylistService) ExpireIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	expired := 0
	for userID, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, userID)
			expired++
		}
	}
	return expired
}

// failRun rolls a failed generate back to the input step, unless the
// session moved on while the run was in flight.
func (s *StylistService) failRun(userID string, sess *session, seq uint64, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(userID, sess, seq) {
		return models.ErrSuperseded
	}
	sess.step = StepInput
	return cause
}

// failRegen clears the regenerating flag after a failed re-render,
// leaving the existing image and record untouched.
func (s *StylistService) failRegen(userID string, sess *session, seq uint64, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(userID, sess, seq) {
		return models.ErrSuperseded
	}
	sess.regenerating = false
	return cause
}

// currentLocked reports whether the given session and run sequence
// are still the live ones for this user. Pointer identity catches a
// session replaced by Reset or expiry; the sequence catches
// in-place supersession.
func (s *StylistService) currentLocked(userID string, sess *session, seq uint64) bool {
	current, ok := s.sessions[userID]
	return ok && current == sess && current.runSeq == seq
}

func (s *StylistService) ensureLocked(userID string) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		s.seq++
		sess = &session{step: StepInput, runSeq: s.seq, lastActive: time.Now()}
		s.sessions[userID] = sess
	}
	return sess
}

func (s *StylistService) snapshotLocked(sess *session) StylistState {
	return StylistState{
		Step:            sess.step,
		Regenerating:    sess.regenerating,
		Request:         sess.request,
		Suggestion:      sess.suggestion,
		SelectedItemIDs: append([]string(nil), sess.selectedIDs...),
		Image:           sess.image,
		OutfitID:        sess.outfitID,
		Dirty:           !sameIDSet(sess.selectedIDs, sess.baselineIDs),
	}
}

func (s *StylistService) notify(userID, action string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.NotifyUser(userID, action, payload)
	}
}

func (s *StylistService) recordEvent(userID, eventType, message string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, "info", message, &userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to record stylist event")
	}
}

// selectByID returns the wardrobe subset whose IDs appear in ids,
// preserving wardrobe order.
func selectByID(wardrobe []models.ClothingItem, ids []string) []models.ClothingItem {
	selected := make([]models.ClothingItem, 0, len(ids))
	for _, item := range wardrobe {
		if contains(ids, item.ID) {
			selected = append(selected, item)
		}
	}
	return selected
}

// sameIDSet compares two ID lists as sets: order never matters for
// the dirty check.
func sameIDSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, id := range b {
		other[id] = struct{}{}
	}
	if len(set) != len(other) {
		return false
	}
	for id := range set {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
