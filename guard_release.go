//go:build !flstrdebug

package flstring

// accessTracker is a zero-size no-op without the flstrdebug build tag. The
// begin/end calls compile away entirely.
type accessTracker struct{}

func (accessTracker) beginRead()  {}
func (accessTracker) endRead()    {}
func (accessTracker) beginWrite() {}
func (accessTracker) endWrite()   {}
