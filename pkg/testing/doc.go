// Package testing provides helpers for testing code built on the carousel
// package.
//
// # Quick Start
//
// Start a carousel on a fake clock and drive it:
//
//	func TestBanner(t *testing.T) {
//	    h := carouseltest.NewHarness(t, []string{"A", "B", "C"})
//	    h.Appear()
//
//	    h.Tick()
//	    h.WaitIndex(2)
//
//	    if got := h.View.Last(); !got.Animated {
//	        t.Error("expected an animated advance")
//	    }
//	}
//
// # Time
//
// The harness owns a clockz.FakeClock. Tick advances it by one autoplay
// interval and Settle by one settle delay; both wait for the fake clock's
// pending timers to be delivered. Use the WaitFor helpers to observe the
// resulting state, since events are processed on the carousel's own
// goroutine.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import carouseltest "github.com/go-drift/carousel/pkg/testing"
package testing
