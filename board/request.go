package board

import "github.com/castawaylabs/status-board/feeds"

// Request tracks one dispatched fetch.
type Request struct {
	ID       string
	Seq      uint64
	Category feeds.Category
	Term     string
	Search   bool

	done    chan struct{}
	err     error
	applied bool
}

// Done is closed once the fetch has finished, successfully or not.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Err is the fetch/parse failure, if any. Only valid after Done is closed.
func (r *Request) Err() error {
	<-r.done
	return r.err
}

// Applied reports whether the response replaced the display. A successful
// response is dropped when a newer request was issued before it arrived.
func (r *Request) Applied() bool {
	<-r.done
	return r.applied
}
