package rooms

import (
	"fmt"
	"strings"
)

// Role identifies a staff role for permission checks.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleReception   Role = "reception"
	RoleHousekeeper Role = "housekeeper"
	RoleSupervisor  Role = "supervisor"
	RoleMaintenance Role = "maintenance"
)

// RolePermissions holds the static capability set for a role.
type RolePermissions struct {
	CanView             []Status
	CanModify           []Status
	CanChangeRoomStatus bool
}

var rolePermissions = map[Role]RolePermissions{
	RoleAdmin: {
		CanView:             AllStatuses(),
		CanModify:           AllStatuses(),
		CanChangeRoomStatus: true,
	},
	RoleReception: {
		CanView: AllStatuses(),
		CanModify: []Status{
			StatusAvailable, StatusOccupied, StatusCheckout,
			StatusInHouse, StatusDoNotDisturb, StatusNeedCleaning,
		},
		CanChangeRoomStatus: true,
	},
	RoleHousekeeper: {
		CanView: []Status{
			StatusCheckout, StatusNeedCleaning, StatusCleaningOccupied,
			StatusCleanOccupied, StatusCleaningCheckout, StatusCleaningTouch,
			StatusInspection, StatusOccupied, StatusDoNotDisturb,
		},
		CanModify: []Status{
			StatusCleaningOccupied, StatusCleanOccupied,
			StatusCleaningCheckout, StatusCleaningTouch, StatusInspection,
		},
		CanChangeRoomStatus: true,
	},
	RoleSupervisor: {
		CanView: AllStatuses(),
		CanModify: []Status{
			StatusAvailable, StatusNeedCleaning, StatusCleaningOccupied,
			StatusCleanOccupied, StatusCleaningCheckout, StatusCleaningTouch,
			StatusInspection,
		},
		CanChangeRoomStatus: true,
	},
	RoleMaintenance: {
		CanView:             []Status{StatusMaintenance, StatusAvailable, StatusNeedCleaning},
		CanModify:           []Status{StatusMaintenance, StatusAvailable, StatusNeedCleaning},
		CanChangeRoomStatus: true,
	},
}

// roleStateFlows maps, per role, a current status to the statuses that role
// may move the room into. Transitions absent from a role's map are rejected;
// the maintenance override in the transition service is the only exception
// and is deliberately kept out of this table.
var roleStateFlows = map[Role]map[Status][]Status{
	RoleReception: {
		StatusAvailable:    {StatusOccupied, StatusInHouse},
		StatusOccupied:     {StatusCheckout, StatusDoNotDisturb},
		StatusInHouse:      {StatusOccupied, StatusCheckout},
		StatusDoNotDisturb: {StatusOccupied},
		StatusCheckout:     {StatusNeedCleaning},
	},
	RoleHousekeeper: {
		StatusCheckout:         {StatusCleaningCheckout},
		StatusNeedCleaning:     {StatusCleaningCheckout, StatusCleaningTouch},
		StatusOccupied:         {StatusCleaningOccupied},
		StatusCleaningOccupied: {StatusCleanOccupied},
		StatusCleanOccupied:    {StatusOccupied},
		StatusCleaningCheckout: {StatusInspection},
		StatusCleaningTouch:    {StatusInspection},
	},
	RoleSupervisor: {
		StatusCheckout:         {StatusCleaningCheckout},
		StatusNeedCleaning:     {StatusCleaningCheckout, StatusCleaningTouch},
		StatusOccupied:         {StatusCleaningOccupied},
		StatusCleaningOccupied: {StatusCleanOccupied},
		StatusCleanOccupied:    {StatusOccupied},
		StatusCleaningCheckout: {StatusInspection},
		StatusCleaningTouch:    {StatusInspection},
		StatusInspection:       {StatusAvailable, StatusNeedCleaning},
	},
	RoleMaintenance: {
		StatusMaintenance: {StatusAvailable, StatusNeedCleaning},
	},
}

func init() {
	// Admin may move any room between any two distinct registered states.
	admin := make(map[Status][]Status, len(statusOrder))
	for _, from := range statusOrder {
		targets := make([]Status, 0, len(statusOrder)-1)
		for _, to := range statusOrder {
			if to != from {
				targets = append(targets, to)
			}
		}
		admin[from] = targets
	}
	roleStateFlows[RoleAdmin] = admin
}

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := rolePermissions[r]; !ok {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}

// PermissionsFor returns the static permission set for a role.
func PermissionsFor(role Role) (RolePermissions, bool) {
	p, ok := rolePermissions[role]
	return p, ok
}

// AllowedTransitions returns the statuses a role may move a room into from
// the given status, per the flow table. The maintenance override is not
// reflected here.
func AllowedTransitions(role Role, from Status) []Status {
	flows, ok := roleStateFlows[role]
	if !ok {
		return nil
	}
	targets := flows[from]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// canFlow reports whether the flow table contains the from→to edge for the
// role.
func canFlow(role Role, from, to Status) bool {
	flows, ok := roleStateFlows[role]
	if !ok {
		return false
	}
	for _, t := range flows[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CanViewStatus reports whether a role's dashboard may show rooms in the
// given status.
func CanViewStatus(role Role, s Status) bool {
	p, ok := rolePermissions[role]
	if !ok {
		return false
	}
	for _, v := range p.CanView {
		if v == s {
			return true
		}
	}
	return false
}
