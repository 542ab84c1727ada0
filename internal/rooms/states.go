package rooms

import (
	"fmt"
	"strings"
)

// Status is a room's operational state. The enumeration is closed: every
// status stored or requested must resolve through the registry below.
type Status string

const (
	StatusAvailable        Status = "available"
	StatusOccupied         Status = "occupied"
	StatusCheckout         Status = "checkout"
	StatusInHouse          Status = "in_house"
	StatusNeedCleaning     Status = "need_cleaning"
	StatusCleaningOccupied Status = "cleaning_occupied"
	StatusCleanOccupied    Status = "clean_occupied"
	StatusCleaningCheckout Status = "cleaning_checkout"
	StatusCleaningTouch    Status = "cleaning_touch"
	StatusInspection       Status = "inspection"
	StatusDoNotDisturb     Status = "do_not_disturb"
	StatusMaintenance      Status = "maintenance"
)

// StatusGroup scopes states for permission and display purposes.
type StatusGroup string

const (
	GroupReception   StatusGroup = "reception"
	GroupCleaning    StatusGroup = "cleaning"
	GroupMaintenance StatusGroup = "maintenance"
)

// StateDefinition is the static metadata attached to a status. Logic keys off
// the Status value itself; the definition carries display and side-effect
// hints so presentation and behavior cannot drift apart.
type StateDefinition struct {
	Key                Status      `json:"key"`
	Label              string      `json:"label"`
	Group              StatusGroup `json:"group"`
	RequiresInspection bool        `json:"requires_inspection"`
	AutoTransition     Status      `json:"auto_transition,omitempty"`
	NotifyGroup        Role        `json:"notify_group,omitempty"`
}

var stateRegistry = map[Status]StateDefinition{
	StatusAvailable: {Key: StatusAvailable, Label: "Available", Group: GroupReception},
	StatusOccupied:  {Key: StatusOccupied, Label: "Occupied", Group: GroupReception},
	StatusCheckout: {
		Key: StatusCheckout, Label: "Checkout", Group: GroupReception,
		AutoTransition: StatusNeedCleaning, NotifyGroup: RoleHousekeeper,
	},
	StatusInHouse: {Key: StatusInHouse, Label: "In House", Group: GroupReception},
	StatusNeedCleaning: {
		Key: StatusNeedCleaning, Label: "Needs Cleaning", Group: GroupCleaning,
		NotifyGroup: RoleHousekeeper,
	},
	StatusCleaningOccupied: {Key: StatusCleaningOccupied, Label: "Cleaning (Occupied)", Group: GroupCleaning},
	StatusCleanOccupied:    {Key: StatusCleanOccupied, Label: "Clean (Occupied)", Group: GroupCleaning},
	StatusCleaningCheckout: {
		Key: StatusCleaningCheckout, Label: "Cleaning (Checkout)", Group: GroupCleaning,
		RequiresInspection: true,
	},
	StatusCleaningTouch: {
		Key: StatusCleaningTouch, Label: "Touch-up Cleaning", Group: GroupCleaning,
		RequiresInspection: true,
	},
	StatusInspection: {
		Key: StatusInspection, Label: "Inspection", Group: GroupCleaning,
		NotifyGroup: RoleSupervisor,
	},
	StatusDoNotDisturb: {Key: StatusDoNotDisturb, Label: "Do Not Disturb", Group: GroupReception},
	StatusMaintenance: {
		Key: StatusMaintenance, Label: "Maintenance", Group: GroupMaintenance,
		NotifyGroup: RoleMaintenance,
	},
}

// statusOrder keeps listings deterministic.
var statusOrder = []Status{
	StatusAvailable,
	StatusOccupied,
	StatusCheckout,
	StatusInHouse,
	StatusNeedCleaning,
	StatusCleaningOccupied,
	StatusCleanOccupied,
	StatusCleaningCheckout,
	StatusCleaningTouch,
	StatusInspection,
	StatusDoNotDisturb,
	StatusMaintenance,
}

// AllStatuses returns every registered status in registry order.
func AllStatuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// StateFor looks up the static definition for a status.
func StateFor(s Status) (StateDefinition, bool) {
	def, ok := stateRegistry[s]
	return def, ok
}

// ParseStatus validates a raw string against the registry.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := stateRegistry[s]; !ok {
		return "", fmt.Errorf("unknown room status %q", raw)
	}
	return s, nil
}

// Valid reports whether the status is a registry member.
func (s Status) Valid() bool {
	_, ok := stateRegistry[s]
	return ok
}

// IsCleaning reports whether the status is an active cleaning state. Rooms in
// these states must always carry an assignee.
func (s Status) IsCleaning() bool {
	return strings.HasPrefix(string(s), "cleaning_")
}

// Label returns the display label, falling back to the raw value for
// unregistered statuses so logs stay readable.
func (s Status) Label() string {
	if def, ok := stateRegistry[s]; ok {
		return def.Label
	}
	return string(s)
}
