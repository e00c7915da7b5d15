package eventbus

import "context"

type ReportEventType string

const (
	ReportEventPublished            ReportEventType = "ReportPublished"
	ReportEventElementStatusChanged ReportEventType = "ElementStatusChanged"
)

type ReportEvent struct {
	Type      ReportEventType
	ReportID  uint
	SectionID uint
	ElementID uint
	Status    string
}

type ReportEventHandler func(ctx context.Context, event ReportEvent) error
