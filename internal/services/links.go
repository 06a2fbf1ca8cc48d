package services

import "strings"

// GeneralLink returns the shareable link for the whole invitation:
// origin/invitationToken. Pure string concatenation; callers own clipboard
// and window actions.
func GeneralLink(origin, invitationToken string) string {
	return strings.TrimSuffix(origin, "/") + "/" + invitationToken
}

// GuestLink returns the personalized link for one recipient:
// origin/invitationToken-guestToken. The hyphen separator is kept for wire
// compatibility with already-issued links; both tokens are server-assigned,
// so no escaping is applied.
func GuestLink(origin, invitationToken, guestToken string) string {
	return GeneralLink(origin, invitationToken) + "-" + guestToken
}

// SplitGuestPath splits a combined path segment into invitation and guest
// tokens on the LAST hyphen. An invitation token may itself contain hyphens;
// a guest token may not, which is what makes the split unambiguous. A segment
// with no hyphen is an invitation token alone.
func SplitGuestPath(segment string) (invitationToken, guestToken string) {
	i := strings.LastIndex(segment, "-")
	if i < 0 {
		return segment, ""
	}
	return segment[:i], segment[i+1:]
}
