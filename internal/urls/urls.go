package urls

// ProfileLinkBase prefixes a shareable account link; the account handle
// ("username.discriminator") is appended.
const ProfileLinkBase = "https://tablekit.link/u/"

// ProfileLinkDisplayBase is ProfileLinkBase without the scheme, for display.
const ProfileLinkDisplayBase = "tablekit.link/u/"

// Repository is the project source.
const Repository = "https://github.com/muurk/tablekit"

// AvailabilityGuide explains how to run and discover the username
// availability service.
const AvailabilityGuide = "https://github.com/muurk/tablekit#availability-service"

// Profile returns the shareable link for an account handle.
func Profile(handle string) string {
	return ProfileLinkBase + handle
}

// ProfileDisplay returns the link for an account handle without the scheme.
func ProfileDisplay(handle string) string {
	return ProfileLinkDisplayBase + handle
}
