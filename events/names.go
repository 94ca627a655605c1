package events

const (
	FamilyUpdated       = "family.updated"
	FamilyMemberJoined  = "family.member.joined"
	FamilyMemberUpdated = "family.member.updated"
	FamilyMemberRemoved = "family.member.removed"
	FamilyMemberLeft    = "family.member.left"

	ChildCreated = "child.created"
	ChildUpdated = "child.updated"

	TrackableCreated = "trackable.created"
	TrackableUpdated = "trackable.updated"
	TrackableDeleted = "trackable.deleted"

	EventCreated          = "event.created"
	EventUpdated          = "event.updated"
	EventDeleted          = "event.deleted"
	EventMilestoneCreated = "event.milestone.created"
	EventMilestoneDeleted = "event.milestone.deleted"

	NotificationCreated = "notification.created"
)

// FamilyScoped lists every event delivered to a family room.
var FamilyScoped = []string{
	FamilyUpdated,
	FamilyMemberJoined,
	FamilyMemberUpdated,
	FamilyMemberRemoved,
	FamilyMemberLeft,
	ChildCreated,
	ChildUpdated,
	TrackableCreated,
	TrackableUpdated,
	TrackableDeleted,
	EventCreated,
	EventUpdated,
	EventDeleted,
	EventMilestoneCreated,
	EventMilestoneDeleted,
}
