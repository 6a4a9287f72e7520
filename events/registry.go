package events

import "sync"

var (
	registryOnce sync.Once
	nameToType   = make(map[string]EventType)
	typeToName   = make(map[EventType]string)
)

// RegisterType maps a string name to an EventType
func RegisterType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	InitRegistry()
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "EventUnknown"
}

// InitRegistry populates the registry with all game events
func InitRegistry() {
	registryOnce.Do(func() {
		RegisterType("EventCloneSpawned", EventCloneSpawned)
		RegisterType("EventCloneInteraction", EventCloneInteraction)
		RegisterType("EventCloneFinished", EventCloneFinished)
		RegisterType("EventClonesCleaned", EventClonesCleaned)
		RegisterType("EventPlayerInteract", EventPlayerInteract)
		RegisterType("EventTimerWarning", EventTimerWarning)
		RegisterType("EventTimeUp", EventTimeUp)
		RegisterType("EventDangerLevelChange", EventDangerLevelChange)
		RegisterType("EventExitChanged", EventExitChanged)
		RegisterType("EventSpawnChange", EventSpawnChange)
		RegisterType("EventGameReset", EventGameReset)
	})
}
