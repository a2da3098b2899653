package eventbus

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPublishDeliversInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)

	var mu sync.Mutex
	var pages []int
	b.Subscribe(EventPageLoaded, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		pages = append(pages, e.(PageLoadedEvent).Page)
	})

	for i := 1; i <= 5; i++ {
		b.Publish(PageLoadedEvent{Page: i})
	}
	b.Close()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, pages)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)

	var got []error
	unsubscribe := b.Subscribe(EventFetchFailed, func(e DomainEvent) {
		got = append(got, e.(FetchFailedEvent).Err)
	})
	other := 0
	b.Subscribe(EventFetchFailed, func(DomainEvent) { other++ })

	unsubscribe()
	b.Publish(FetchFailedEvent{Err: errors.New("boom")})
	b.Close()

	assert.Empty(t, got)
	assert.Equal(t, 1, other)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)

	delivered := false
	b.Subscribe(EventDetailsToggled, func(DomainEvent) { panic("handler bug") })
	b.Subscribe(EventDetailsToggled, func(DomainEvent) { delivered = true })

	b.Publish(DetailsToggledEvent{Visible: true})
	b.Close()

	require.True(t, delivered)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	b.Close()

	require.NotPanics(t, func() {
		b.Publish(ConfigSavedEvent{Path: "x"})
	})
}
