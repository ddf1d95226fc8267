package auth

import "github.com/mabat-platform/support-service/internal/domain"

// Capability names a discrete action a role may perform. Permission
// checks consult the static table below instead of branching on the
// role at each call site.
type Capability string

const (
	CapCreateTicket      Capability = "ticket:create"
	CapViewAllTickets    Capability = "ticket:view_all"
	CapViewHotelTickets  Capability = "ticket:view_hotel"
	CapRespond           Capability = "ticket:respond"
	CapUpdateStatus      Capability = "ticket:update_status"
	CapReopenClosed      Capability = "ticket:reopen_closed"
	CapAssign            Capability = "ticket:assign"
	CapViewInternalNotes Capability = "ticket:view_internal_notes"
	CapRateTicket        Capability = "ticket:rate"
	CapManageHotels      Capability = "admin:manage_hotels"
	CapManageUsers       Capability = "admin:manage_users"
	CapViewDashboard     Capability = "admin:view_dashboard"
)

type capabilitySet map[Capability]struct{}

func caps(list ...Capability) capabilitySet {
	set := make(capabilitySet, len(list))
	for _, c := range list {
		set[c] = struct{}{}
	}
	return set
}

var roleCapabilities = map[domain.UserType]capabilitySet{
	domain.UserTypeEndUser: caps(
		CapCreateTicket,
		CapRespond,
		CapRateTicket,
	),
	domain.UserTypeHotelOwner: caps(
		CapViewHotelTickets,
		CapRespond,
	),
	domain.UserTypeHotelSupport: caps(
		CapViewHotelTickets,
		CapRespond,
		CapUpdateStatus,
		CapAssign,
		CapViewInternalNotes,
	),
	domain.UserTypeMabatSupport: caps(
		CapViewAllTickets,
		CapRespond,
		CapUpdateStatus,
		CapAssign,
		CapViewInternalNotes,
		CapViewDashboard,
	),
	domain.UserTypeAdmin: caps(
		CapViewAllTickets,
		CapRespond,
		CapUpdateStatus,
		CapReopenClosed,
		CapAssign,
		CapViewInternalNotes,
		CapManageHotels,
		CapManageUsers,
		CapViewDashboard,
	),
}

// Can reports whether the role holds the capability.
func Can(role domain.UserType, capability Capability) bool {
	set, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = set[capability]
	return ok
}
