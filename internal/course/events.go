package course

// EventKind enumerates controller notifications.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventSectionChanged
	EventScrollTop
	EventWatchedChanged
	EventCommentChanged
	EventSidebarChanged
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventSectionChanged:
		return "section_changed"
	case EventScrollTop:
		return "scroll_top"
	case EventWatchedChanged:
		return "watched_changed"
	case EventCommentChanged:
		return "comment_changed"
	case EventSidebarChanged:
		return "sidebar_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after a state change. VideoID is set for watched and comment events;
// Key is set for section events.
type Event struct {
	Kind    EventKind
	Key     string
	VideoID string
}

// Listener receives controller events synchronously.
type Listener func(Event)
