// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Health       = "/up"
	StaticPrefix = "/static/"
	About        = "/about"
	Activities   = "/activities"
	Events       = "/events"
	Education    = "/education"
	Contact      = "/contact"
	AuthPrefix   = "/auth/"
	AuthLogin    = "/auth/login"
	AuthSignUp   = "/auth/signup"
	AuthSignOut  = "/auth/signout"
	AuthConfirm  = "/auth/confirm"

	Profile       = "/profile"
	ProfilePrefix = "/profile/"
	ProfileUpdate = "/profile/update"

	MembersMenu              = "/members"
	MembersPrefix            = "/members/"
	MembersDocuments         = "/members/documents"
	MembersAgenda            = "/members/agenda"
	MembersMessages          = "/members/messages"
	MembersMessagesSend      = "/members/messages/send"
	MembersStudy             = "/members/study"
	MembersStudyUpload       = "/members/study/upload"
	MembersStudyDownload     = "/members/study/download"
	MembersWorshipfulMasters = "/members/worshipful-masters"

	CommissionMenu             = "/commission"
	CommissionPrefix           = "/commission/"
	CommissionEvents           = "/commission/events"
	CommissionEventsCreate     = "/commission/events/create"
	CommissionEventUpdate      = "/commission/events/{eventID}/update"
	CommissionEventDelete      = "/commission/events/{eventID}/delete"
	CommissionActivities       = "/commission/activities"
	CommissionActivitiesCreate = "/commission/activities/create"
	CommissionActivityUpdate   = "/commission/activities/{activityID}/update"
	CommissionActivityDelete   = "/commission/activities/{activityID}/delete"
	CommissionSecretary        = "/commission/secretary"
	CommissionSecretaryRead    = "/commission/secretary/{messageID}/read"
	CommissionFinance          = "/commission/finance"
)

// CommissionEventUpdatePath returns the update route for one event.
func CommissionEventUpdatePath(eventID string) string {
	return CommissionEvents + "/" + escapeSegment(eventID) + "/update"
}

// CommissionEventDeletePath returns the delete route for one event.
func CommissionEventDeletePath(eventID string) string {
	return CommissionEvents + "/" + escapeSegment(eventID) + "/delete"
}

// CommissionActivityUpdatePath returns the update route for one activity.
func CommissionActivityUpdatePath(activityID string) string {
	return CommissionActivities + "/" + escapeSegment(activityID) + "/update"
}

// CommissionActivityDeletePath returns the delete route for one activity.
func CommissionActivityDeletePath(activityID string) string {
	return CommissionActivities + "/" + escapeSegment(activityID) + "/delete"
}

// CommissionSecretaryReadPath returns the mark-read route for one message.
func CommissionSecretaryReadPath(messageID string) string {
	return CommissionSecretary + "/" + escapeSegment(messageID) + "/read"
}

// MembersStudyDownloadPath returns the signed download route for a token.
func MembersStudyDownloadPath(token string) string {
	return MembersStudyDownload + "?token=" + url.QueryEscape(token)
}

func escapeSegment(segment string) string {
	return url.PathEscape(strings.TrimSpace(segment))
}
