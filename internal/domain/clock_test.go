package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNowMillis_UsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	assert.Equal(t, fixed.UnixMilli(), NowMillis())
	assert.Equal(t, testNow, NowMillis())
}

func TestClock_FollowsSetClock(t *testing.T) {
	fake := clockwork.NewFakeClock()
	SetClock(fake)
	t.Cleanup(func() { SetClock(nil) })

	assert.Same(t, fake, Clock())
}
