package main

import (
	"github.com/sirupsen/logrus"

	"launchscroll/internal/eventbus"
)

// subscribeTelemetry writes domain events to log. The returned function
// removes every subscription.
func subscribeTelemetry(bus eventbus.EventBus, log logrus.FieldLogger) func() {
	log = log.WithField("component", "telemetry")

	unsubs := []func(){
		bus.Subscribe(eventbus.EventQueryIssued, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.QueryIssuedEvent); ok {
				log.WithFields(logrus.Fields{
					"token":  event.Token,
					"search": event.Search,
					"page":   event.Page,
				}).Debug("query issued")
			}
		}),
		bus.Subscribe(eventbus.EventPageLoaded, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.PageLoadedEvent); ok {
				log.WithFields(logrus.Fields{
					"token":    event.Token,
					"search":   event.Search,
					"page":     event.Page,
					"count":    event.Count,
					"total":    event.Total,
					"matching": event.Matching,
					"has_more": event.HasMore,
					"duration": event.Duration,
				}).Info("page loaded")
			}
		}),
		bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.FetchFailedEvent); ok {
				log.WithFields(logrus.Fields{
					"token":  event.Token,
					"search": event.Search,
					"page":   event.Page,
				}).WithError(event.Err).Error("fetch failed")
			}
		}),
		bus.Subscribe(eventbus.EventDetailsToggled, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.DetailsToggledEvent); ok {
				log.WithField("visible", event.Visible).Debug("details toggled")
			}
		}),
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
				log.WithFields(logrus.Fields{
					"path":     event.Path,
					"endpoint": event.Endpoint,
				}).Info("configuration loaded")
			}
		}),
		bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ConfigSavedEvent); ok {
				log.WithField("path", event.Path).Info("configuration saved")
			}
		}),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
