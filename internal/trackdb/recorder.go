package trackdb

import (
	"fmt"

	"github.com/banshee-data/pointtrack/internal/track"
)

// Recorder archives one tracking session frame by frame. It derives
// identity birth and retirement events by diffing the live identity set
// between successive snapshots, so callers only hand it the tracker
// output.
type Recorder struct {
	db        *DB
	sessionID string
	liveIDs   map[int]bool
	frames    int
	born      int
	retired   int
}

// NewRecorder creates a session row for the given source and returns a
// recorder bound to it.
func NewRecorder(db *DB, source string) (*Recorder, error) {
	sessionID, err := db.CreateSession(source)
	if err != nil {
		return nil, fmt.Errorf("create recorder session: %w", err)
	}
	return &Recorder{
		db:        db,
		sessionID: sessionID,
		liveIDs:   make(map[int]bool),
	}, nil
}

// SessionID returns the archive session this recorder writes to.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// RecordFrame archives one frame's tracker snapshot and the identity
// events implied by the change from the previous frame.
func (r *Recorder) RecordFrame(frame int, points []track.TrackedPoint[float64]) error {
	obs := make([]Observation, 0, len(points))
	next := make(map[int]bool, len(points))
	var events []IDEvent

	for _, p := range points {
		next[p.ID] = true
		obs = append(obs, Observation{
			SessionID: r.sessionID,
			Frame:     frame,
			PointID:   p.ID,
			X:         p.X,
			Y:         p.Y,
			Freshness: p.Fresh,
		})
		if !r.liveIDs[p.ID] {
			events = append(events, IDEvent{
				SessionID: r.sessionID,
				Frame:     frame,
				PointID:   p.ID,
				Event:     EventBorn,
			})
		}
	}
	for id := range r.liveIDs {
		if !next[id] {
			events = append(events, IDEvent{
				SessionID: r.sessionID,
				Frame:     frame,
				PointID:   id,
				Event:     EventRetired,
			})
		}
	}

	if err := r.db.InsertObservations(obs); err != nil {
		return fmt.Errorf("record frame %d: %w", frame, err)
	}
	if err := r.db.InsertIDEvents(events); err != nil {
		return fmt.Errorf("record frame %d events: %w", frame, err)
	}

	r.liveIDs = next
	r.frames++
	for _, e := range events {
		switch e.Event {
		case EventBorn:
			r.born++
		case EventRetired:
			r.retired++
		}
	}
	return nil
}

// Stats returns the frames recorded and the identity births and
// retirements seen so far.
func (r *Recorder) Stats() (frames, born, retired int) {
	return r.frames, r.born, r.retired
}
