package subscriber

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/reportdesk/backend/internal/eventbus"
)

// ReportEventSubscriber writes an audit trail for lifecycle events.
type ReportEventSubscriber struct{}

func NewReportEventSubscriber() *ReportEventSubscriber {
	return &ReportEventSubscriber{}
}

func (s *ReportEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.ReportEventPublished, s.handlePublished)
	bus.Subscribe(eventbus.ReportEventElementStatusChanged, s.handleElementStatusChanged)
}

func (s *ReportEventSubscriber) handlePublished(ctx context.Context, event eventbus.ReportEvent) error {
	klog.Infof("report published: reportID=%d", event.ReportID)
	return nil
}

func (s *ReportEventSubscriber) handleElementStatusChanged(ctx context.Context, event eventbus.ReportEvent) error {
	klog.V(6).Infof("element status changed: sectionID=%d, elementID=%d, status=%s",
		event.SectionID, event.ElementID, event.Status)
	return nil
}
