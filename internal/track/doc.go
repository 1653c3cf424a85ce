// Package track implements frame-to-frame association of unordered 2D
// point batches. A PositionTracker assigns a persistent integer identity
// to every point it is fed, frame after frame, by extrapolating each
// tracked point's motion from a three-frame history and solving an
// optimal bipartite assignment between predictions and the new batch.
// Points may appear and disappear between frames; identities are minted
// and retired accordingly.
//
// A tracker is not safe for concurrent use. PushData is a single
// synchronous, CPU-bound transformation of the tracker's state; callers
// that share a tracker across goroutines must serialise access
// themselves.
package track
